package network

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pindown/game"
	"pindown/protocol"
	"pindown/room"
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server ties websocket sessions to the room manager.
type Server struct {
	manager *room.Manager
	log     *zap.Logger
}

func NewServer(m *room.Manager, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{manager: m, log: log}
}

// HandleWS runs one connection: upgrade, join handshake, then the input loop
// until the socket dies. Leave is issued on any exit path past the join.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	c := newClient(conn)
	defer c.Close()

	rm, res, ok := s.handshake(c)
	if !ok {
		return
	}
	// The pump starts after the handshake; anything the room queued for us in
	// the meantime (joined, lobby, first snapshots) drains in order now.
	go c.writePump()
	defer func() {
		rm.Inbox <- room.Leave{PlayerID: res.PlayerID}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil || env.T != protocol.MsgInput {
			continue // stray messages are dropped, not errors
		}
		in, err := protocol.DecodePayload[protocol.Input](env)
		if err != nil {
			continue
		}
		rm.Inbox <- room.Input{
			PlayerID: res.PlayerID,
			Input:    toGameInput(in),
		}
	}
}

// handshake reads the join envelope, validates the room code, registers the
// player and replies with joined/error. Validation and capacity failures are
// the only errors a client ever hears about.
func (s *Server) handshake(c *client) (*room.Room, room.JoinResult, bool) {
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, room.JoinResult{}, false
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil || env.T != protocol.MsgJoin {
		return nil, room.JoinResult{}, false
	}
	j, err := protocol.DecodePayload[protocol.Join](env)
	if err != nil {
		return nil, room.JoinResult{}, false
	}

	code, err := room.NormalizeCode(j.Room)
	if err != nil {
		s.sendError(c, err.Error())
		return nil, room.JoinResult{}, false
	}

	rm := s.manager.GetOrCreateRoom(code)
	reply := make(chan room.JoinResult, 1)
	rm.Inbox <- room.Join{Conn: c, Avatar: j.Avatar, Reply: reply}
	res := <-reply
	if res.Err != nil {
		s.sendError(c, res.Err.Error())
		return nil, room.JoinResult{}, false
	}

	s.log.Info("player joined",
		zap.String("room", code),
		zap.Stringer("role", res.Role),
		zap.String("player", res.PlayerID))
	return rm, res, true
}

// sendError writes directly: it only runs before the write pump starts, and
// the socket is about to be closed.
func (s *Server) sendError(c *client, msg string) {
	b, err := protocol.Encode(protocol.MsgError, protocol.Error{Message: msg})
	if err != nil {
		return
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.TextMessage, b)
}

// HandleRooms serves the room list (GET) and code generation (POST).
func (s *Server) HandleRooms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(s.manager.ListRooms())
	case http.MethodPost:
		code := s.manager.CreateRoom()
		_ = json.NewEncoder(w).Encode(room.RoomInfo{Code: code})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func toGameInput(in protocol.Input) game.Input {
	return game.Input{
		Up:     in.Up,
		Down:   in.Down,
		Left:   in.Left,
		Right:  in.Right,
		Acting: in.Acting,
	}
}
