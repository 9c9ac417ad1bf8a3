package game

// Reveal is the outcome of uncovering one cell.
type Reveal struct {
	GameOver    bool
	Winner      Role
	Loser       Role
	PoisonOwner Role
	SelfPoison  bool
	NextTurn    Role
}

// ResolveReveal resolves player revealer uncovering pos, given both secret
// poison positions. Whoever reveals a poison loses, no matter whose poison it
// is; revealing a clean cell passes the turn to the opponent. Bounds and
// duplicate checks are the caller's job.
func ResolveReveal(revealer Role, pos Position, poisons map[Role]Position) Reveal {
	if own, ok := poisons[revealer]; ok && own == pos {
		return Reveal{
			GameOver:    true,
			Winner:      revealer.Opponent(),
			Loser:       revealer,
			PoisonOwner: revealer,
			SelfPoison:  true,
		}
	}

	opponent := revealer.Opponent()
	if theirs, ok := poisons[opponent]; ok && theirs == pos {
		return Reveal{
			GameOver:    true,
			Winner:      opponent,
			Loser:       revealer,
			PoisonOwner: opponent,
		}
	}

	return Reveal{NextTurn: revealer.Opponent()}
}
