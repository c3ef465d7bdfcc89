package network

import (
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	outboundSize = 64
	readLimit    = 1 << 16
)

// client wraps a websocket conn behind the room.Conn interface. Outbound
// frames go through a buffered queue drained by writePump; Send never blocks
// the room loop. A full queue drops the frame, broadcast is best-effort.
type client struct {
	conn *websocket.Conn
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	return &client{
		conn: conn,
		out:  make(chan []byte, outboundSize),
		done: make(chan struct{}),
	}
}

func (c *client) Send(b []byte) error {
	select {
	case <-c.done:
		return net.ErrClosed
	default:
	}
	select {
	case c.out <- b:
		return nil
	default:
		return nil // slow reader: drop this frame
	}
}

func (c *client) Close() error {
	c.once.Do(func() { close(c.done) })
	return c.conn.Close()
}

// writePump serializes all writes to the conn and keeps it alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case b := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				_ = c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Close()
				return
			}
		}
	}
}
