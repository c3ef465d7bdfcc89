package game

const (
	DefaultArenaWidth  = 800.0
	DefaultArenaHeight = 500.0
	DefaultTokenRadius = 30.0
	DefaultWinSeconds  = 2.0

	TickRate = 60          // simulation steps per second
	Dt       = 1.0 / 60.0  // seconds per step

	MoveSpeedPerTick = 4.0 // token speed, px per step
	ContactFactor    = 1.4 // contact iff distance < radius × this
	DecayFactor      = 0.5 // pin timer decay, fraction of Dt per step

	MinPlayers = 2 // below this the room idles (and any winner is void)
	MaxPlayers = 3
)
