// Package module defines the lifecycle every application feature follows.
package module

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/tradeskills/internal/registry"
)

// Module defines the contract for a self-contained application feature.
type Module interface {
	// Name returns a unique identifier for the module.
	Name() string

	// Register is called during startup to put the module's services in the
	// registry. No module has booted yet.
	Register(reg *registry.Registry) error

	// Boot sets up routes and starts background work once every module has
	// registered.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	// Shutdown stops background work and releases resources.
	Shutdown(ctx context.Context) error
}

// BaseModule provides default no-op implementations for Module methods.
// Modules can embed this to avoid implementing methods they don't need.
type BaseModule struct{}

func (m *BaseModule) Register(reg *registry.Registry) error { return nil }
func (m *BaseModule) Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error {
	return nil
}
func (m *BaseModule) Shutdown(ctx context.Context) error {
	return nil
}

// Start registers then boots every module in order. The first failure stops
// startup.
func Start(ctx context.Context, modules []Module, router *echo.Group, reg *registry.Registry) error {
	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("registering module %s: %w", m.Name(), err)
		}
	}
	for _, m := range modules {
		if err := m.Boot(ctx, router, reg); err != nil {
			return fmt.Errorf("booting module %s: %w", m.Name(), err)
		}
		slog.Info("Module booted", "module", m.Name())
	}
	return nil
}

// Stop shuts modules down in reverse order and reports every failure.
func Stop(ctx context.Context, modules []Module) error {
	var errs []error
	for i := len(modules) - 1; i >= 0; i-- {
		if err := modules[i].Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down module %s: %w", modules[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}
