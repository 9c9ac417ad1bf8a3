package game

// Role identifies one of the two seats in a room. The host created the room,
// the guest joined it; both are stable for the whole membership.
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Opponent returns the other seat.
func (r Role) Opponent() Role {
	if r == RoleHost {
		return RoleGuest
	}
	return RoleHost
}

func (r Role) Valid() bool {
	return r == RoleHost || r == RoleGuest
}

// Grid size limits for a cake grid.
const (
	MinGridSize = 3
	MaxGridSize = 8
)

// Position is a [row, col] cell coordinate. It marshals to the two-element
// JSON array the wire protocol uses.
type Position [2]int

func (p Position) Row() int { return p[0] }
func (p Position) Col() int { return p[1] }

// InBounds reports whether the position lies inside a size×size grid.
func (p Position) InBounds(size int) bool {
	return p[0] >= 0 && p[0] < size && p[1] >= 0 && p[1] < size
}
