package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the subset of *websocket.Conn the hub needs. Tests substitute
// in-process fakes.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	conn Conn
	send chan []byte
	once sync.Once
}

// Attach registers conn with the hub and blocks reading frames from it
// until the connection errors or closes.
func (h *Hub) Attach(conn Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go c.writePump()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		h.handleInbound(data, c)
	}
	select {
	case h.unregister <- c:
	case <-h.done:
		// The dispatch loop already stopped every registered client on
		// its way out.
		c.stop()
	}
}

// enqueue hands a frame to the client's write pump. A full buffer means the
// client is too slow; the frame is dropped for it.
func (c *client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (c *client) stop() {
	c.once.Do(func() {
		close(c.send)
	})
}

func (c *client) writePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}
	_ = c.conn.Close()
}
