package protocol

// Joined is the synchronous reply to a successful join: the assigned seat and
// the arena the client should render.
type Joined struct {
	Role       int     `json:"role"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Radius     float64 `json:"radius"`
	WinSeconds float64 `json:"winSeconds"`
	TickHz     int     `json:"tickHz"`
}

type Error struct {
	Message string `json:"message"`
}

// Lobby is sent to every member on each join/leave.
type Lobby struct {
	Players int `json:"players"`
}

type State struct {
	Tick    int              `json:"tick"`
	Players []PlayerSnapshot `json:"players"`
	Winner  int              `json:"winner,omitempty"`
}

type PlayerSnapshot struct {
	Role     int     `json:"role"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Acting   bool    `json:"acting,omitempty"`
	Pin      float64 `json:"pin"`
	Avatar   string  `json:"avatar,omitempty"`
	Dominant bool    `json:"dominant,omitempty"`
}

// End is emitted exactly once per game, when the winner is first recorded.
type End struct {
	Winner int `json:"winner"`
}
