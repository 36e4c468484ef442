package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nfrund/tradeskills/internal/module"
)

// Boot registers and boots every module on the root group.
func (s *Server) Boot(ctx context.Context) error {
	if err := module.Start(ctx, s.modules, s.E.Group(""), s.reg); err != nil {
		return err
	}
	slog.Debug("Modules booted", "modules", len(s.modules), "services", s.reg.Keys())
	return nil
}

// Start boots the modules, serves on addr and blocks until an interrupt, then
// shuts down gracefully.
func (s *Server) Start(addr string) error {
	if err := s.Boot(context.Background()); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", addr)
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving on %s: %w", addr, err)
		}
	case <-waitForShutdown():
		slog.Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops the HTTP server, the modules and the event bus.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := module.Stop(ctx, s.modules); err != nil {
		errs = append(errs, err)
	}
	if err := s.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing event bus: %w", err))
	}
	return errors.Join(errs...)
}
