package trace

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	id         uint8
	remoteAddr string

	// smoothed round trip time in milliseconds
	latency atomic.Uint32
}

// readPump discards client messages until the connection closes or
// the client asks to close.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 1 && message[0] == Closing {
			return
		}
	}
}

// writePump writes queued messages until the hub closes the send
// channel.
func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if rtt, ok := roundTrip(c.conn.UnderlyingConn()); ok {
			ms := uint32(rtt / time.Millisecond)
			c.latency.Store((c.latency.Load()*9 + ms) / 10)
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
