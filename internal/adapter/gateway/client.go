package gateway

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one authenticated websocket connection. identity is fixed at
// upgrade time and every join/send is authorized against it.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	identity uuid.UUID
	send     chan []byte
	onEvent  func(*Client, envelope)

	sendClosed chan struct{}
}

func newClient(hub *Hub, conn *websocket.Conn, identity uuid.UUID, onEvent func(*Client, envelope)) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		identity:   identity,
		send:       make(chan []byte, 64),
		onEvent:    onEvent,
		sendClosed: make(chan struct{}),
	}
}

// closeSend signals the write pump to finish. The send channel itself is
// never closed, so a late enqueue from another goroutine cannot panic.
func (c *Client) closeSend() {
	select {
	case <-c.sendClosed:
	default:
		close(c.sendClosed)
	}
}

// enqueue delivers a payload to this connection only (acks and error
// events). It never blocks the caller.
func (c *Client) enqueue(payload []byte) {
	select {
	case <-c.sendClosed:
	case c.send <- payload:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.detach <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}
		c.onEvent(c, env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.sendClosed:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
