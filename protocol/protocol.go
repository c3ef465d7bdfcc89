package protocol

import (
	"encoding/json"
)

const (
	MsgJoin   = "join"
	MsgInput  = "input"
	MsgJoined = "joined"
	MsgError  = "error"
	MsgLobby  = "lobby"
	MsgState  = "state"
	MsgEnd    = "end"
)

const (
	SimTickHz = 60
	// Snapshots go out every step so the winning step's broadcast already
	// carries the winner.
	BroadcastHz = 60
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
