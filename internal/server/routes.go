package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	publishHandler := NewPublishHandler(s.Bus)
	statsHandler := NewStatsHandler(s.Relay)

	s.E.GET("/ws", s.wsHandler.Serve)

	// Publish API boundary for the persistence application. Events arrive
	// here strictly after the corresponding write has committed.
	internal := s.E.Group("/internal/events")
	internal.POST("/message-created", publishHandler.MessageCreatedPost)
	internal.POST("/messages-read", publishHandler.MessagesReadPost)

	s.E.GET("/stats", statsHandler.StatsGet)
	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
