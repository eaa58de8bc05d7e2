package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start boots the background components, runs the HTTP server, and blocks
// until an interrupt or terminate signal arrives, then shuts everything down
// in order: HTTP first so no new connections arrive, then the relay, then
// the bus.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Boot(ctx); err != nil {
		return err
	}

	go func() {
		if err := s.E.Start(s.Cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped unexpectedly", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("Shutting down", "signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.Cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := s.E.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	s.Relay.Stop()
	if err := s.Bus.Close(); err != nil {
		slog.Error("Bus close failed", "error", err)
	}
	return nil
}
