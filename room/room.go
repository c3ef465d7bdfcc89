package room

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pindown/game"
	"pindown/protocol"
)

// ErrRoomFull is returned in the join reply when all three seats are held.
var ErrRoomFull = errors.New("room is full")

// Config is everything a new room needs: the arena and the step rate.
type Config struct {
	Arena  game.Arena
	TickHz int
}

// Room owns one session. All mutable state is touched only by the Run
// goroutine, fed through Inbox; that loop is the serialization point for
// joins, leaves, inputs and steps.
type Room struct {
	Inbox          chan any
	cfg            Config
	broadcastEvery int
	state          game.State
	clients        map[string]Conn
	nplayers       atomic.Int32 // mirror of len(clients) for readers outside Run
	ticker         *time.Ticker
	tickC          <-chan time.Time // nil while idle or ended
	quit           chan struct{}
	log            *zap.Logger

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when last player leaves
}

func New(cfg Config, log *zap.Logger) *Room {
	if cfg.TickHz <= 0 {
		cfg.TickHz = protocol.SimTickHz
	}
	broadcastEvery := cfg.TickHz / protocol.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Room{
		Inbox:          make(chan any, 256),
		cfg:            cfg,
		broadcastEvery: broadcastEvery,
		state: game.State{
			Players: make(map[string]*game.Player),
		},
		clients: make(map[string]Conn),
		quit:    make(chan struct{}),
		log:     log,
	}
}

func (r *Room) Stop() {
	close(r.quit)
}

// NumPlayers returns the current number of connected clients.
func (r *Room) NumPlayers() int {
	return int(r.nplayers.Load())
}

func (r *Room) Run() {
	defer r.stopTicking()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-r.tickC:
			r.step()
		}
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		role := r.state.AssignSeat()
		if role == game.RoleNone {
			c.Reply <- JoinResult{Err: ErrRoomFull}
			return
		}
		playerID := uuid.NewString()
		r.clients[playerID] = c.Conn
		r.nplayers.Store(int32(len(r.clients)))
		r.state.Players[playerID] = &game.Player{
			ID:     playerID,
			Role:   role,
			Avatar: c.Avatar,
			Pos:    game.SpawnPos(role, r.cfg.Arena),
		}
		c.Reply <- JoinResult{PlayerID: playerID, Role: role}
		r.sendJoined(c.Conn, role)
		r.broadcastLobby()
		if len(r.clients) >= game.MinPlayers && r.state.Winner == game.RoleNone {
			r.startTicking()
		}
	case Input:
		if _, ok := r.clients[c.PlayerID]; !ok {
			return
		}
		if r.state.Winner != game.RoleNone {
			return // frozen until the ended game is torn down
		}
		game.ApplyInput(&r.state, c.PlayerID, c.Input)
	case Leave:
		r.handleLeave(c.PlayerID)
	}
}

func (r *Room) handleLeave(playerID string) {
	c, ok := r.clients[playerID]
	if _, known := r.state.Players[playerID]; !ok && !known {
		return // already gone: eviction and the disconnect path can both fire
	}
	delete(r.state.Players, playerID)
	if ok {
		_ = c.Close()
		delete(r.clients, playerID)
	}
	r.nplayers.Store(int32(len(r.clients)))
	r.broadcastLobby()
	if len(r.clients) < game.MinPlayers {
		// Back to idle: a voided game is replayable once someone returns.
		r.stopTicking()
		r.state.Winner = game.RoleNone
	}
	if len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

// startTicking is idempotent: at most one ticker per room. Pin timers are
// reset here so a fresh game never inherits leftovers from a voided one.
func (r *Room) startTicking() {
	if r.tickC != nil {
		return
	}
	for _, p := range r.state.Players {
		p.PinTimer = 0
	}
	r.ticker = time.NewTicker(time.Second / time.Duration(r.cfg.TickHz))
	r.tickC = r.ticker.C
	r.log.Info("game started", zap.String("room", r.Code), zap.Int("players", len(r.clients)))
}

func (r *Room) stopTicking() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	r.ticker = nil
	r.tickC = nil
}

func (r *Room) step() {
	game.Step(&r.state, r.cfg.Arena)
	won := r.state.Winner != game.RoleNone
	if won || r.state.Tick%r.broadcastEvery == 0 {
		r.broadcastState()
	}
	if won {
		r.broadcastEnd()
		r.stopTicking()
		r.log.Info("game over", zap.String("room", r.Code), zap.Stringer("winner", r.state.Winner))
	}
}

func (r *Room) broadcastState() {
	b, err := protocol.Encode(protocol.MsgState, r.buildSnapshot())
	if err != nil {
		return
	}

	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	// A dead conn is a disconnect in all but name.
	for _, id := range failed {
		r.handleLeave(id)
	}
}

// sendJoined is the synchronous join acknowledgment: the assigned seat plus
// the arena the client should render. It must hit the wire before the lobby
// broadcast that follows the join.
func (r *Room) sendJoined(c Conn, role game.Role) {
	b, err := protocol.Encode(protocol.MsgJoined, protocol.Joined{
		Role:       int(role),
		Width:      r.cfg.Arena.Width,
		Height:     r.cfg.Arena.Height,
		Radius:     r.cfg.Arena.Radius,
		WinSeconds: r.cfg.Arena.WinSeconds,
		TickHz:     r.cfg.TickHz,
	})
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (r *Room) broadcastLobby() {
	b, err := protocol.Encode(protocol.MsgLobby, protocol.Lobby{Players: len(r.clients)})
	if err != nil {
		return
	}
	for _, c := range r.clients {
		_ = c.Send(b)
	}
}

func (r *Room) broadcastEnd() {
	b, err := protocol.Encode(protocol.MsgEnd, protocol.End{Winner: int(r.state.Winner)})
	if err != nil {
		return
	}
	for _, c := range r.clients {
		_ = c.Send(b)
	}
}

func (r *Room) buildSnapshot() protocol.State {
	snapshot := protocol.State{
		Tick:    r.state.Tick,
		Players: make([]protocol.PlayerSnapshot, 0, len(r.state.Players)),
		Winner:  int(r.state.Winner),
	}
	for _, p := range r.state.Ordered() {
		snapshot.Players = append(snapshot.Players, protocol.PlayerSnapshot{
			Role:     int(p.Role),
			X:        p.Pos.X(),
			Y:        p.Pos.Y(),
			Acting:   p.Acting,
			Pin:      p.PinTimer,
			Avatar:   p.Avatar,
			Dominant: p.Dominant,
		})
	}
	return snapshot
}
