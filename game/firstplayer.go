package game

import (
	"math/rand"
)

// FirstPlayerPolicy decides which role takes the first turn of a cycle.
type FirstPlayerPolicy string

const (
	PolicyRandom    FirstPlayerPolicy = "random"
	PolicyWinFirst  FirstPlayerPolicy = "win"
	PolicyLoseFirst FirstPlayerPolicy = "lose"
	PolicyHost      FirstPlayerPolicy = "host"
	PolicyGuest     FirstPlayerPolicy = "guest"
)

func (p FirstPlayerPolicy) Valid() bool {
	switch p {
	case PolicyRandom, PolicyWinFirst, PolicyLoseFirst, PolicyHost, PolicyGuest:
		return true
	}
	return false
}

// PickFirst selects the role that opens the next cycle. lastWinners is the
// room's completed-game history, most recent last; the win/lose policies fall
// back to a coin flip when the history is empty. host/guest are deterministic.
func PickFirst(policy FirstPlayerPolicy, lastWinners []Role, rng *rand.Rand) Role {
	switch policy {
	case PolicyWinFirst:
		if len(lastWinners) > 0 {
			return lastWinners[len(lastWinners)-1]
		}
		return coinFlip(rng)
	case PolicyLoseFirst:
		if len(lastWinners) > 0 {
			return lastWinners[len(lastWinners)-1].Opponent()
		}
		return coinFlip(rng)
	case PolicyHost:
		return RoleHost
	case PolicyGuest:
		return RoleGuest
	default:
		return coinFlip(rng)
	}
}

func coinFlip(rng *rand.Rand) Role {
	if rng.Intn(2) == 0 {
		return RoleHost
	}
	return RoleGuest
}
