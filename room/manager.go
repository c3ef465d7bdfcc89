package room

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// MaxCodeLen bounds a normalized room code.
const MaxCodeLen = 12

// ErrInvalidCode is returned for codes that normalize to empty or too long.
var ErrInvalidCode = errors.New("invalid room id")

// NormalizeCode trims and upper-cases a player-supplied room code and
// validates its length. Rooms are only ever keyed by normalized codes.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" || len(code) > MaxCodeLen {
		return "", ErrInvalidCode
	}
	return code, nil
}

// RoomInfo is returned by the API for the room list.
type RoomInfo struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
}

// Manager holds multiple rooms by code. Rooms are created on first join or via
// CreateRoom, and removed when the last player leaves.
type Manager struct {
	mu    sync.RWMutex
	cfg   Config
	log   *zap.Logger
	rooms map[string]*Room
}

func NewManager(cfg Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cfg:   cfg,
		log:   log,
		rooms: make(map[string]*Room),
	}
}

// GetOrCreateRoom returns the room for the given normalized code, creating it
// if needed.
func (m *Manager) GetOrCreateRoom(code string) *Room {
	if code == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok {
		return r
	}
	return m.addRoom(code)
}

// addRoom creates, registers and starts a room. Caller holds m.mu.
func (m *Manager) addRoom(code string) *Room {
	r := New(m.cfg, m.log)
	r.Code = code
	r.OnEmpty = func(c string) {
		m.removeRoom(c)
	}
	m.rooms[code] = r
	go r.Run()
	m.log.Info("room created", zap.String("room", code))
	return r
}

func (m *Manager) removeRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok {
		r.Stop()
		delete(m.rooms, code)
		m.log.Info("room destroyed", zap.String("room", code))
	}
}

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CreateRoom generates a unique 6-char code, creates the room, and returns the code.
func (m *Manager) CreateRoom() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		code := generateCode(6)
		if _, exists := m.rooms[code]; exists {
			continue
		}
		m.addRoom(code)
		return code
	}
}

// ListRooms returns all active rooms with code and player count.
func (m *Manager) ListRooms() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for code, r := range m.rooms {
		out = append(out, RoomInfo{Code: code, Players: r.NumPlayers()})
	}
	return out
}

func generateCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}
