package game

// Role is one of the three fixed seats in a room. RoleNone means no seat is
// available (or, as a winner value, that no game has been decided).
type Role uint8

const (
	RoleNone Role = iota
	Seat1
	Seat2
	Seat3
)

// seats in assignment order: the lowest free one wins.
var seats = [...]Role{Seat1, Seat2, Seat3}

func (r Role) String() string {
	switch r {
	case Seat1:
		return "seat-1"
	case Seat2:
		return "seat-2"
	case Seat3:
		return "seat-3"
	default:
		return "none"
	}
}

// AssignSeat returns the lowest seat not currently held by any player in the
// state, or RoleNone when all three are taken.
func (s *State) AssignSeat() Role {
	for _, seat := range seats {
		taken := false
		for _, p := range s.Players {
			if p.Role == seat {
				taken = true
				break
			}
		}
		if !taken {
			return seat
		}
	}
	return RoleNone
}
