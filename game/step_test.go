package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(players ...*Player) *State {
	s := &State{Players: make(map[string]*Player)}
	for _, p := range players {
		s.Players[p.ID] = p
	}
	return s
}

func TestApplyInputVelocity(t *testing.T) {
	p := &Player{ID: "a", Role: Seat1}
	s := newState(p)

	ApplyInput(s, "a", Input{Right: true})
	assert.InDelta(t, MoveSpeedPerTick, p.Vel.X(), 1e-9)
	assert.InDelta(t, 0, p.Vel.Y(), 1e-9)

	// Diagonals are normalized to the same speed.
	ApplyInput(s, "a", Input{Up: true, Left: true})
	assert.InDelta(t, MoveSpeedPerTick, p.Vel.Len(), 1e-9)
	assert.InDelta(t, -MoveSpeedPerTick/math.Sqrt2, p.Vel.X(), 1e-9)
	assert.InDelta(t, -MoveSpeedPerTick/math.Sqrt2, p.Vel.Y(), 1e-9)

	// No intent, and cancelling intents, are a zero velocity, not a NaN.
	ApplyInput(s, "a", Input{})
	assert.Equal(t, mgl64.Vec2{}, p.Vel)
	ApplyInput(s, "a", Input{Left: true, Right: true, Up: true, Down: true})
	assert.Equal(t, mgl64.Vec2{}, p.Vel)
}

func TestApplyInputIgnoresUnknownPlayer(t *testing.T) {
	s := newState(&Player{ID: "a", Role: Seat1})
	ApplyInput(s, "ghost", Input{Right: true}) // must not panic or mutate
	assert.Equal(t, mgl64.Vec2{}, s.Players["a"].Vel)
}

func TestApplyInputDominanceIsExclusive(t *testing.T) {
	p1 := &Player{ID: "a", Role: Seat1}
	p2 := &Player{ID: "b", Role: Seat2}
	s := newState(p1, p2)

	ApplyInput(s, "a", Input{Acting: true})
	assert.True(t, p1.Dominant)
	assert.False(t, p2.Dominant)

	// Dominance transfers immediately, not at the next step.
	ApplyInput(s, "b", Input{Acting: true})
	assert.False(t, p1.Dominant)
	assert.True(t, p2.Dominant)

	// Releasing clears only your own flag.
	ApplyInput(s, "b", Input{})
	assert.False(t, p1.Dominant)
	assert.False(t, p2.Dominant)
}

func TestStepClampsToArena(t *testing.T) {
	a := Arena{Width: 100, Height: 100, Radius: 10, WinSeconds: 2}
	p := &Player{ID: "a", Role: Seat1, Pos: mgl64.Vec2{15, 50}, Vel: mgl64.Vec2{-30, 0}}
	s := newState(p)

	Step(s, a)
	assert.Equal(t, 1, s.Tick)
	assert.Equal(t, 10.0, p.Pos.X(), "overshoot must pin exactly at the bound")
	assert.Equal(t, 50.0, p.Pos.Y())

	p.Pos = mgl64.Vec2{80, 50}
	p.Vel = mgl64.Vec2{30, 100}
	Step(s, a)
	assert.Equal(t, 90.0, p.Pos.X())
	assert.Equal(t, 90.0, p.Pos.Y())
}

func TestPairContactGainAndDecay(t *testing.T) {
	a := DefaultArena()
	p1 := &Player{ID: "a", Role: Seat1, Pos: mgl64.Vec2{100, 100}, Acting: true, Dominant: true}
	p2 := &Player{ID: "b", Role: Seat2, Pos: mgl64.Vec2{120, 100}, PinTimer: 1.0}
	s := newState(p1, p2)

	require.Less(t, p1.Pos.Sub(p2.Pos).Len(), a.Radius*ContactFactor)
	Step(s, a)
	assert.InDelta(t, Dt, p1.PinTimer, 1e-9, "dominant-and-acting gains Dt")
	assert.InDelta(t, 1.0-Dt*DecayFactor, p2.PinTimer, 1e-9, "pinned opponent decays")
}

func TestOutOfContactBothDecay(t *testing.T) {
	a := DefaultArena()
	p1 := &Player{ID: "a", Role: Seat1, Pos: mgl64.Vec2{100, 100}, Acting: true, Dominant: true, PinTimer: 1.0}
	p2 := &Player{ID: "b", Role: Seat2, Pos: mgl64.Vec2{300, 100}, PinTimer: 1.0}
	s := newState(p1, p2)

	Step(s, a)
	assert.InDelta(t, 1.0-Dt*DecayFactor, p1.PinTimer, 1e-9, "dominance does not help out of contact")
	assert.InDelta(t, 1.0-Dt*DecayFactor, p2.PinTimer, 1e-9)
}

func TestPinTimerFlooredAtZero(t *testing.T) {
	a := DefaultArena()
	p1 := &Player{ID: "a", Role: Seat1, Pos: mgl64.Vec2{100, 100}}
	p2 := &Player{ID: "b", Role: Seat2, Pos: mgl64.Vec2{300, 100}, PinTimer: Dt * DecayFactor / 2}
	s := newState(p1, p2)

	for i := 0; i < 5; i++ {
		Step(s, a)
	}
	assert.Equal(t, 0.0, p1.PinTimer)
	assert.Equal(t, 0.0, p2.PinTimer)
}

func TestPinTimerClampedAtThreshold(t *testing.T) {
	a := DefaultArena()
	p1 := &Player{ID: "a", Role: Seat1, Pos: mgl64.Vec2{100, 100}, Acting: true, Dominant: true, PinTimer: a.WinSeconds}
	p2 := &Player{ID: "b", Role: Seat2, Pos: mgl64.Vec2{110, 100}}
	s := newState(p1, p2)

	Step(s, a)
	assert.Equal(t, a.WinSeconds, p1.PinTimer, "accumulator never exceeds the threshold")
	assert.Equal(t, Seat1, s.Winner)
}

func TestThreePlayerPairCompounding(t *testing.T) {
	a := DefaultArena()
	p1 := &Player{ID: "a", Role: Seat1, Pos: mgl64.Vec2{100, 100}, Acting: true, Dominant: true}
	p2 := &Player{ID: "b", Role: Seat2, Pos: mgl64.Vec2{110, 100}, PinTimer: 1.0}
	p3 := &Player{ID: "c", Role: Seat3, Pos: mgl64.Vec2{105, 110}, PinTimer: 1.0}
	s := newState(p1, p2, p3)

	Step(s, a)
	// Seat-1 is resolved against both opponents, so it gains twice in one
	// step. Seat-2 and seat-3 decay against seat-1 and against each other.
	assert.InDelta(t, 2*Dt, p1.PinTimer, 1e-9)
	assert.InDelta(t, 1.0-2*Dt*DecayFactor, p2.PinTimer, 1e-9)
	assert.InDelta(t, 1.0-2*Dt*DecayFactor, p3.PinTimer, 1e-9)
}

func TestWinTieBreakBySeatOrder(t *testing.T) {
	a := DefaultArena()
	// Both already past the threshold: the lower seat must win.
	p2 := &Player{ID: "b", Role: Seat2, Pos: mgl64.Vec2{100, 100}, PinTimer: a.WinSeconds + Dt}
	p3 := &Player{ID: "c", Role: Seat3, Pos: mgl64.Vec2{300, 100}, PinTimer: a.WinSeconds + Dt}
	s := newState(p2, p3)

	Step(s, a)
	assert.Equal(t, Seat2, s.Winner)
}

func TestWinnerNeverOverwritten(t *testing.T) {
	a := DefaultArena()
	p1 := &Player{ID: "a", Role: Seat1, Pos: mgl64.Vec2{100, 100}, Acting: true, Dominant: true, PinTimer: a.WinSeconds}
	p2 := &Player{ID: "b", Role: Seat2, Pos: mgl64.Vec2{110, 100}}
	s := newState(p1, p2)
	s.Winner = Seat2

	Step(s, a)
	assert.Equal(t, Seat2, s.Winner)
}

func TestAssignSeatLowestFree(t *testing.T) {
	s := newState()
	assert.Equal(t, Seat1, s.AssignSeat())

	s = newState(&Player{ID: "a", Role: Seat1}, &Player{ID: "c", Role: Seat3})
	assert.Equal(t, Seat2, s.AssignSeat())

	s = newState(
		&Player{ID: "a", Role: Seat1},
		&Player{ID: "b", Role: Seat2},
		&Player{ID: "c", Role: Seat3},
	)
	assert.Equal(t, RoleNone, s.AssignSeat())
}

func TestSpawnPositions(t *testing.T) {
	a := Arena{Width: 800, Height: 500, Radius: 30, WinSeconds: 2}
	assert.Equal(t, mgl64.Vec2{160, 250}, SpawnPos(Seat1, a))
	assert.Equal(t, mgl64.Vec2{400, 250}, SpawnPos(Seat2, a))
	assert.Equal(t, mgl64.Vec2{640, 250}, SpawnPos(Seat3, a))
}

// Full pin scenario with the deployment defaults: seat-1 drives into the idle
// seat-2, pins, and wins after roughly two seconds of held contact.
func TestPinToWinScenario(t *testing.T) {
	a := Arena{Width: 800, Height: 500, Radius: 30, WinSeconds: 2}
	p1 := &Player{ID: "a", Role: Seat1, Pos: SpawnPos(Seat1, a)}
	p2 := &Player{ID: "b", Role: Seat2, Pos: SpawnPos(Seat2, a)}
	s := newState(p1, p2)

	ApplyInput(s, "a", Input{Right: true, Acting: true})

	contact := a.Radius * ContactFactor
	steps := 0
	for s.Winner == RoleNone {
		steps++
		require.Less(t, steps, 1000, "scenario did not converge")
		// Once in contact the driver stops and just holds the pin.
		if p1.Pos.Sub(p2.Pos).Len() < contact {
			ApplyInput(s, "a", Input{Acting: true})
		}
		Step(s, a)
	}

	assert.Equal(t, Seat1, s.Winner)
	assert.InDelta(t, a.WinSeconds, p1.PinTimer, 2*Dt)
	assert.Equal(t, 0.0, p2.PinTimer)
	// ~50 steps to close the gap, then ~120 steps of held contact.
	assert.Greater(t, steps, 160)
	assert.Less(t, steps, 190)
}
