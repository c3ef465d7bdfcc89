package game

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Internal truth authoritative game state

type State struct {
	Tick    int
	Players map[string]*Player
	Winner  Role
}

type Player struct {
	ID     string
	Role   Role
	Avatar string

	Pos mgl64.Vec2
	Vel mgl64.Vec2

	Acting   bool
	Dominant bool

	// PinTimer is the dominance accumulator in seconds, kept within
	// [0, Arena.WinSeconds].
	PinTimer float64
}

// Arena is the fixed per-room playfield configuration.
type Arena struct {
	Width      float64
	Height     float64
	Radius     float64
	WinSeconds float64
}

func DefaultArena() Arena {
	return Arena{
		Width:      DefaultArenaWidth,
		Height:     DefaultArenaHeight,
		Radius:     DefaultTokenRadius,
		WinSeconds: DefaultWinSeconds,
	}
}

// SpawnPos is the deterministic spawn for a seat: spread across the
// horizontal midline.
func SpawnPos(role Role, a Arena) mgl64.Vec2 {
	y := 0.5 * a.Height
	switch role {
	case Seat1:
		return mgl64.Vec2{0.2 * a.Width, y}
	case Seat2:
		return mgl64.Vec2{0.5 * a.Width, y}
	default:
		return mgl64.Vec2{0.8 * a.Width, y}
	}
}

// Ordered returns the players sorted by seat. Map iteration order is random;
// pair resolution and the win tie-break need a stable order.
func (s *State) Ordered() []*Player {
	out := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out
}
