package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dumichanda/LoveOffer-sub001/internal/pubsub"
	"github.com/dumichanda/LoveOffer-sub001/internal/relay"
)

// PublishHandler exposes the publish API boundary over HTTP for the
// persistence application. It only forwards already-committed facts onto the
// bus; a failure here costs a realtime notification, never data.
type PublishHandler struct {
	publisher pubsub.Publisher
}

// NewPublishHandler creates the handler for the internal publish endpoints.
func NewPublishHandler(pub pubsub.Publisher) *PublishHandler {
	return &PublishHandler{publisher: pub}
}

// MessageCreatedPost accepts a persisted chat message and publishes it for
// fan-out to every participant's user room.
func (h *PublishHandler) MessageCreatedPost(c echo.Context) error {
	var req MessageCreatedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := relay.MessageCreated{
		ChatID:             req.ChatID,
		Message:            req.Message,
		ParticipantUserIDs: req.ParticipantUserIDs,
	}
	if err := pubsub.Publish(c.Request().Context(), h.publisher, relay.MessageCreatedEvent, event); err != nil {
		slog.Error("Failed to publish message created event", "chatID", req.ChatID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to publish event")
	}

	return c.NoContent(http.StatusAccepted)
}

// MessagesReadPost accepts a persisted read receipt and publishes it for
// fan-out to the other participants.
func (h *PublishHandler) MessagesReadPost(c echo.Context) error {
	var req MessagesReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := relay.MessagesRead{
		ChatID:             req.ChatID,
		ReadByUserID:       req.ReadByUserID,
		ParticipantUserIDs: req.ParticipantUserIDs,
	}
	if err := pubsub.Publish(c.Request().Context(), h.publisher, relay.MessagesReadEvent, event); err != nil {
		slog.Error("Failed to publish messages read event", "chatID", req.ChatID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to publish event")
	}

	return c.NoContent(http.StatusAccepted)
}

// StatsHandler reports relay load for observability.
type StatsHandler struct {
	relay *relay.Relay
}

// NewStatsHandler creates the stats handler.
func NewStatsHandler(r *relay.Relay) *StatsHandler {
	return &StatsHandler{relay: r}
}

// StatsGet returns current connection and room counts.
func (h *StatsHandler) StatsGet(c echo.Context) error {
	return c.JSON(http.StatusOK, h.relay.CurrentStats())
}
