// Package course serves course sections: the pages, their inline checks and
// quizzes, and a small JSON API.
package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/tradeskills/internal/content"
	"github.com/nfrund/tradeskills/internal/middleware"
	"github.com/nfrund/tradeskills/internal/module"
	"github.com/nfrund/tradeskills/internal/progress"
	"github.com/nfrund/tradeskills/internal/registry"
	"github.com/nfrund/tradeskills/internal/storage"
)

// Services this module shares through the registry.
const (
	CatalogKey registry.Key[*content.Catalog]  = "course.catalog"
	TrackerKey registry.Key[*progress.Tracker] = "course.tracker"
)

// Dependencies holds what the module needs from the application.
type Dependencies struct {
	Source storage.Source
}

// Module implements module.Module for course content.
type Module struct {
	module.BaseModule
	source  storage.Source
	catalog *content.Catalog
	tracker *progress.Tracker
	watcher *content.Watcher
	cancel  context.CancelFunc
}

// New creates the course module.
func New(deps Dependencies) *Module {
	return &Module{source: deps.Source}
}

// Name returns the unique name for the module.
func (m *Module) Name() string {
	return "course"
}

// Register loads the content and shares the catalog and tracker. Broken
// content stops startup.
func (m *Module) Register(reg *registry.Registry) error {
	loader := content.NewLoader(m.source.Fs, m.source.Root)
	sections, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("loading course content: %w", err)
	}
	catalog, err := content.NewCatalog(sections)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}
	m.catalog = catalog
	m.tracker = progress.NewTracker()

	if err := registry.Provide(reg, CatalogKey, m.catalog); err != nil {
		return err
	}
	if err := registry.Provide(reg, TrackerKey, m.tracker); err != nil {
		return err
	}

	if reg.Config().GetContentHotReload() {
		if m.source.Watchable() {
			m.watcher = content.NewWatcher(m.source.Dir, loader, catalog)
		} else {
			slog.Warn("Hot reload needs on-disk content; ignoring", "mode", reg.Config().GetContentMode())
		}
	}
	slog.Info("Course content loaded", "sections", catalog.Len())
	return nil
}

// Boot starts the statistics subscriber and the optional content watcher,
// then registers the routes.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	ctx, m.cancel = context.WithCancel(ctx)

	if err := m.tracker.Start(ctx, registry.MustGet(reg, registry.SubscriberKey)); err != nil {
		return err
	}
	if m.watcher != nil {
		if err := m.watcher.Start(ctx); err != nil {
			return err
		}
	}

	cfg := reg.Config()
	h := NewHandler(m.catalog, m.tracker,
		registry.MustGet(reg, registry.PublisherKey),
		registry.MustGet(reg, registry.RendererKey),
		cfg.GetSiteName(),
	)
	h.Routes(g, middleware.RateLimiter(cfg.GetRateLimitPerMinute()))
	return nil
}

// Shutdown stops the watcher and the statistics subscriber and waits for
// both, or for ctx to end.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	var errs []error
	if m.watcher != nil {
		if done := m.watcher.Done(); done != nil {
			select {
			case <-done:
			case <-ctx.Done():
				errs = append(errs, fmt.Errorf("waiting for content watcher: %w", ctx.Err()))
			}
		}
	}
	if m.tracker != nil {
		if err := m.tracker.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
