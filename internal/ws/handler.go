package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dumichanda/LoveOffer-sub001/internal/relay"
)

// Handler upgrades HTTP requests to WebSocket sessions and hands them to the
// relay. Identity is whatever the client later claims in its join_user_room
// event; the relay performs no authorization of its own, that gap belongs to
// the auth layer in front of this service.
type Handler struct {
	relay          *relay.Relay
	allowedOrigins []string
	sendBuffer     int
	writeTimeout   time.Duration
}

// NewHandler creates a WebSocket handler for the given relay.
func NewHandler(r *relay.Relay, allowedOrigins []string, sendBuffer int, writeTimeout time.Duration) *Handler {
	return &Handler{
		relay:          r,
		allowedOrigins: allowedOrigins,
		sendBuffer:     sendBuffer,
		writeTimeout:   writeTimeout,
	}
}

// Serve handles a WebSocket upgrade request. Each accepted connection gets a
// fresh UUID; a reconnecting client is a brand-new connection.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: h.allowedOrigins,
	})
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return c.String(http.StatusBadRequest, "failed to upgrade to WebSocket")
	}

	client := NewClient(uuid.NewString(), conn, h.relay, h.sendBuffer, h.writeTimeout)
	slog.Info("WebSocket connection accepted", "connectionID", client.ID())

	h.relay.HandleOpen(client)
	// The request context dies when this handler returns, so the pumps run
	// on a background context; a dead connection surfaces as a read error.
	go client.Run(context.Background())

	return nil
}
