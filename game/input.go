package game

import "github.com/go-gl/mathgl/mgl64"

// Input is a player's latest movement/action intent. The four direction
// flags come straight off the client's controls; the server interprets them.
type Input struct {
	Up     bool
	Down   bool
	Left   bool
	Right  bool
	Acting bool
}

// ApplyInput stores the velocity and acting state derived from in on the
// given player, and resolves the dominant flag across the room right away
// rather than at the next step. Unknown ids are ignored.
func ApplyInput(s *State, id string, in Input) {
	p, ok := s.Players[id]
	if !ok {
		return
	}

	var dir mgl64.Vec2
	if in.Right {
		dir[0]++
	}
	if in.Left {
		dir[0]--
	}
	if in.Down {
		dir[1]++
	}
	if in.Up {
		dir[1]--
	}
	mag := dir.Len()
	if mag == 0 {
		mag = 1 // zero intent stays a zero velocity
	}
	p.Vel = dir.Mul(MoveSpeedPerTick / mag)
	p.Acting = in.Acting

	// At most one player per room holds the dominant flag.
	if in.Acting {
		for _, q := range s.Players {
			q.Dominant = q == p
		}
	} else {
		p.Dominant = false
	}
}
