package network

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsConn adapts a websocket connection to the room.Conn interface.
// Sends are queued to a buffered outbox drained by writePump, so the
// room loop never blocks on a slow client.
type wsConn struct {
	conn *websocket.Conn
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{
		conn: conn,
		out:  make(chan []byte, outboxSize),
		done: make(chan struct{}),
	}
}

func (c *wsConn) Send(b []byte) error {
	select {
	case <-c.done:
		return fmt.Errorf("connection closed")
	case c.out <- b:
		return nil
	default:
		// Outbox full: the client is not keeping up. Drop the
		// connection rather than stall the room.
		return fmt.Errorf("send buffer full")
	}
}

func (c *wsConn) Close() error {
	c.once.Do(func() { close(c.done) })
	return c.conn.Close()
}

func (c *wsConn) writePump() {
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
