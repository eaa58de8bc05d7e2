// Package ws is the WebSocket transport for the relay: it upgrades HTTP
// requests, runs the per-connection read/write pumps, and adapts the
// connection to the relay.Conn contract.
package ws

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/dumichanda/LoveOffer-sub001/internal/relay"
)

// ErrSendBufferFull is returned by Send when the client's outbound queue is
// saturated. The relay drops the event; the transport's own flow control is
// the only backpressure this service applies.
var ErrSendBufferFull = errors.New("client send buffer full")

// Client is one live WebSocket session. It implements relay.Conn.
type Client struct {
	id           string
	conn         *websocket.Conn
	relay        *relay.Relay
	send         chan []byte
	writeTimeout time.Duration
}

// NewClient wraps an accepted WebSocket connection.
func NewClient(id string, conn *websocket.Conn, r *relay.Relay, sendBuffer int, writeTimeout time.Duration) *Client {
	return &Client{
		id:           id,
		conn:         conn,
		relay:        r,
		send:         make(chan []byte, sendBuffer),
		writeTimeout: writeTimeout,
	}
}

// ID returns the connection identifier.
func (c *Client) ID() string { return c.id }

// Send enqueues a payload for the write pump without blocking. A full queue
// means the client is lagging or gone; the event is dropped.
func (c *Client) Send(payload []byte) error {
	select {
	case c.send <- payload:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Run services the connection until it closes, then reports the close to the
// relay exactly once. It blocks until both pumps are done.
func (c *Client) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	go c.writePump(ctx)
	c.readPump(ctx)

	cancel()
	c.relay.HandleClose(c.id)
	c.conn.Close(websocket.StatusNormalClosure, "client disconnected")
}

// readPump pumps frames from the WebSocket into the relay. It is the only
// reader on the connection.
func (c *Client) readPump(ctx context.Context) {
	for {
		_, message, err := c.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				slog.Info("WebSocket closed normally by client", "connectionID", c.id)
			} else if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				slog.Error("WebSocket read error", "connectionID", c.id, "error", err)
			}
			return
		}
		c.relay.HandleInbound(c, message)
	}
}

// writePump drains the send queue onto the WebSocket. It is the only writer
// on the connection.
func (c *Client) writePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, c.writeTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Error("WebSocket write error", "connectionID", c.id, "error", err)
				return
			}
		}
	}
}
