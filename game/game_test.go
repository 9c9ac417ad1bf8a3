package game

import (
	"math/rand"
	"testing"
)

func TestRole_Opponent(t *testing.T) {
	if RoleHost.Opponent() != RoleGuest {
		t.Error("Expected host's opponent to be guest")
	}
	if RoleGuest.Opponent() != RoleHost {
		t.Error("Expected guest's opponent to be host")
	}
}

func TestPosition_InBounds(t *testing.T) {
	cases := []struct {
		pos  Position
		size int
		want bool
	}{
		{Position{0, 0}, 3, true},
		{Position{2, 2}, 3, true},
		{Position{3, 0}, 3, false},
		{Position{0, 3}, 3, false},
		{Position{-1, 0}, 3, false},
		{Position{0, -1}, 3, false},
		{Position{7, 7}, 8, true},
	}
	for _, c := range cases {
		if got := c.pos.InBounds(c.size); got != c.want {
			t.Errorf("InBounds(%v, size %d) = %v, want %v", c.pos, c.size, got, c.want)
		}
	}
}

func TestFirstPlayerPolicy_Valid(t *testing.T) {
	for _, p := range []FirstPlayerPolicy{PolicyRandom, PolicyWinFirst, PolicyLoseFirst, PolicyHost, PolicyGuest} {
		if !p.Valid() {
			t.Errorf("Expected policy %q to be valid", p)
		}
	}
	if FirstPlayerPolicy("first").Valid() {
		t.Error("Unknown policy should not be valid")
	}
	if FirstPlayerPolicy("").Valid() {
		t.Error("Empty policy should not be valid")
	}
}

func TestPickFirst_WinFirst(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	got := PickFirst(PolicyWinFirst, []Role{RoleGuest, RoleHost}, rng)
	if got != RoleHost {
		t.Errorf("win policy should pick the most recent winner, got %s", got)
	}

	got = PickFirst(PolicyWinFirst, []Role{RoleHost, RoleGuest}, rng)
	if got != RoleGuest {
		t.Errorf("win policy should pick the most recent winner, got %s", got)
	}
}

func TestPickFirst_LoseFirst(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	got := PickFirst(PolicyLoseFirst, []Role{RoleHost}, rng)
	if got != RoleGuest {
		t.Errorf("lose policy should pick the most recent loser, got %s", got)
	}
}

// An explicit seat choice must never fall back to a random pick.
func TestPickFirst_FixedSeats(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		if got := PickFirst(PolicyHost, []Role{RoleGuest}, rng); got != RoleHost {
			t.Fatalf("host policy must always pick host, got %s", got)
		}
		if got := PickFirst(PolicyGuest, []Role{RoleHost}, rng); got != RoleGuest {
			t.Fatalf("guest policy must always pick guest, got %s", got)
		}
	}
}

func TestPickFirst_EmptyHistoryFallsBackToRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	seen := map[Role]bool{}
	for i := 0; i < 100; i++ {
		seen[PickFirst(PolicyWinFirst, nil, rng)] = true
		seen[PickFirst(PolicyLoseFirst, nil, rng)] = true
		seen[PickFirst(PolicyRandom, nil, rng)] = true
	}
	if !seen[RoleHost] || !seen[RoleGuest] {
		t.Errorf("random fallback should produce both roles over many draws, got %v", seen)
	}
}

func TestResolveReveal_OwnPoison(t *testing.T) {
	poisons := map[Role]Position{
		RoleHost:  {0, 0},
		RoleGuest: {2, 2},
	}

	r := ResolveReveal(RoleHost, Position{0, 0}, poisons)

	if !r.GameOver {
		t.Fatal("Revealing own poison should end the game")
	}
	if r.Loser != RoleHost || r.Winner != RoleGuest {
		t.Errorf("The revealer always loses: winner=%s loser=%s", r.Winner, r.Loser)
	}
	if r.PoisonOwner != RoleHost || !r.SelfPoison {
		t.Errorf("Expected self poison owned by host, got owner=%s self=%v", r.PoisonOwner, r.SelfPoison)
	}
}

func TestResolveReveal_OpponentPoison(t *testing.T) {
	poisons := map[Role]Position{
		RoleHost:  {0, 0},
		RoleGuest: {2, 2},
	}

	r := ResolveReveal(RoleHost, Position{2, 2}, poisons)

	if !r.GameOver {
		t.Fatal("Revealing the opponent's poison should end the game")
	}
	if r.Loser != RoleHost || r.Winner != RoleGuest {
		t.Errorf("The revealer always loses: winner=%s loser=%s", r.Winner, r.Loser)
	}
	if r.PoisonOwner != RoleGuest || r.SelfPoison {
		t.Errorf("Expected guest-owned poison, got owner=%s self=%v", r.PoisonOwner, r.SelfPoison)
	}
}

func TestResolveReveal_CleanCellFlipsTurn(t *testing.T) {
	poisons := map[Role]Position{
		RoleHost:  {0, 0},
		RoleGuest: {2, 2},
	}

	r := ResolveReveal(RoleGuest, Position{1, 1}, poisons)

	if r.GameOver {
		t.Fatal("A clean cell must not end the game")
	}
	if r.NextTurn != RoleHost {
		t.Errorf("Expected turn to flip to host, got %s", r.NextTurn)
	}
}
