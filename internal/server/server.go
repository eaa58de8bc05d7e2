package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dumichanda/LoveOffer-sub001/internal/config"
	"github.com/dumichanda/LoveOffer-sub001/internal/pubsub"
	"github.com/dumichanda/LoveOffer-sub001/internal/relay"
	"github.com/dumichanda/LoveOffer-sub001/internal/ws"
)

// Server holds the dependencies for the relay HTTP server.
type Server struct {
	E     *echo.Echo
	Cfg   *config.Config
	Bus   *pubsub.WatermillBridge
	Relay *relay.Relay

	subscriber *relay.BusSubscriber
	wsHandler  *ws.Handler
}

// New wires up the bus, relay, and HTTP layer.
func New(cfg *config.Config) *Server {
	bus := pubsub.NewWatermillBridge()
	rly := relay.New(bus)
	subscriber := relay.NewBusSubscriber(bus, rly)
	wsHandler := ws.NewHandler(rly, cfg.AllowedOrigins, cfg.SendBufferSize, cfg.WriteTimeout)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Validator = NewValidator()

	s := &Server{
		E:          e,
		Cfg:        cfg,
		Bus:        bus,
		Relay:      rly,
		subscriber: subscriber,
		wsHandler:  wsHandler,
	}
	s.RegisterRoutes()
	return s
}

// Boot starts the relay dispatch loop and the bus subscriptions. It must be
// called before serving traffic; the context bounds their lifetime.
func (s *Server) Boot(ctx context.Context) error {
	if err := s.Relay.Start(ctx); err != nil {
		return fmt.Errorf("starting relay: %w", err)
	}
	if err := s.subscriber.Start(ctx); err != nil {
		return fmt.Errorf("starting bus subscriber: %w", err)
	}
	return nil
}
