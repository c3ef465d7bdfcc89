package protocol

// Messages coming in from the client.

// Join must be the first envelope on a fresh connection. The avatar reference
// is opaque to the server; it is stored and echoed back in snapshots.
type Join struct {
	Room   string `json:"room"`
	Avatar string `json:"avatar,omitempty"`
}

// Input carries the latest movement/action intent. It replaces, not queues:
// only the most recent one matters.
type Input struct {
	Up     bool `json:"up,omitempty"`
	Down   bool `json:"down,omitempty"`
	Left   bool `json:"left,omitempty"`
	Right  bool `json:"right,omitempty"`
	Acting bool `json:"acting,omitempty"`
}
