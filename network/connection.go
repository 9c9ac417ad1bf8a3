// network/connection.go
package network

import (
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const maxFrameSize = 4096

// Connection is a message-oriented duplex link to one client. The wire format
// is one JSON object per frame.
type Connection interface {
	Send(v any) error
	ReadMessage() ([]byte, error)
	Close() error
	RemoteAddr() net.Addr
}

type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	conn.SetReadLimit(maxFrameSize)
	return &WSConnection{conn: conn}
}

// Send marshals v and writes it as one text frame. Gorilla connections allow
// a single concurrent writer, hence the mutex.
func (c *WSConnection) Send(v any) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()
	return c.conn.WriteJSON(v)
}

// ReadMessage returns the next raw frame. An error means the connection is gone.
func (c *WSConnection) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

// SetReadDeadline arms the read side: the next ReadMessage fails unless a
// frame arrives within d. A non-positive d leaves the deadline untouched.
func (c *WSConnection) SetReadDeadline(d time.Duration) {
	if d > 0 {
		c.conn.SetReadDeadline(time.Now().Add(d))
	}
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
