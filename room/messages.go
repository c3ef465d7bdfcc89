package room

import "pindown/game"

type Conn interface {
	Send([]byte) error
	Close() error
}

// Join: issued once after the join envelope is parsed and the code validated.
type Join struct {
	Conn   Conn
	Avatar string
	Reply  chan<- JoinResult
}

type JoinResult struct {
	PlayerID string
	Role     game.Role
	Err      error
}

// Input: latest intent for a player
type Input struct {
	PlayerID string
	Input    game.Input
}

// Leave: issued on disconnect
type Leave struct {
	PlayerID string
}
