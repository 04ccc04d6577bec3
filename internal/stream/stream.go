// Package stream is the transport seam between the monitor and the cortex:
// a Dialer that opens one duplex connection and a Conn that yields text frames.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Transport tuning.
const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 5 * time.Second
	maxFrameSize     = 8 << 20 // snapshots of large fleets are big
)

// Conn is one open stream connection. ReadFrame blocks until the next
// frame arrives or the connection ends.
type Conn interface {
	ReadFrame() ([]byte, error)
	Close() error
}

// Dialer opens stream connections.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Conn, error)
}

// WebsocketDialer dials the cortex over WebSocket.
type WebsocketDialer struct {
	Header           http.Header
	HandshakeTimeout time.Duration
	ReadLimit        int64
}

// NewWebsocketDialer returns a dialer with default timeouts and frame limits.
func NewWebsocketDialer() *WebsocketDialer {
	return &WebsocketDialer{
		HandshakeTimeout: handshakeTimeout,
		ReadLimit:        maxFrameSize,
	}
}

// Dial performs the WebSocket handshake against addr (ws:// or wss://).
func (d *WebsocketDialer) Dial(ctx context.Context, addr string) (Conn, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: d.HandshakeTimeout,
	}
	conn, resp, err := dialer.DialContext(ctx, addr, d.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: handshake status %s: %w", addr, resp.Status, err)
		}
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	if d.ReadLimit > 0 {
		conn.SetReadLimit(d.ReadLimit)
	}
	return &wsConn{conn: conn}, nil
}

type wsConn struct {
	conn *websocket.Conn
}

// ReadFrame returns the payload of the next data frame. Control frames are
// handled by gorilla's default handlers.
func (c *wsConn) ReadFrame() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Close sends a normal-closure frame best-effort, then drops the socket.
func (c *wsConn) Close() error {
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
	return c.conn.Close()
}

// IsNormalClosure reports whether err ends a connection the way a healthy
// server shutdown does, as opposed to an abnormal drop.
func IsNormalClosure(err error) bool {
	if err == nil {
		return true
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return true
	}
	return errors.Is(err, websocket.ErrCloseSent)
}
