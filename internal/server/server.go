package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/tradeskills/internal/config"
	"github.com/nfrund/tradeskills/internal/handlers"
	appmiddleware "github.com/nfrund/tradeskills/internal/middleware"
	"github.com/nfrund/tradeskills/internal/module"
	"github.com/nfrund/tradeskills/internal/pubsub"
	"github.com/nfrund/tradeskills/internal/registry"
	"github.com/nfrund/tradeskills/internal/rendering"
	"github.com/nfrund/tradeskills/internal/storage"
	"github.com/nfrund/tradeskills/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E       *echo.Echo
	Cfg     config.Provider
	reg     *registry.Registry
	bus     *pubsub.WatermillBridge
	modules []module.Module
}

// New creates a Server from cfg. Environment loading and logger setup are
// the caller's job; see config.New and logging.New.
func New(cfg config.Provider) (*Server, error) {
	source, err := storage.OpenSource(cfg.GetContentMode(), cfg.GetContentDir(), web.ContentFS)
	if err != nil {
		return nil, fmt.Errorf("opening course content: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()

	renderer := rendering.NewUniversalRenderer()
	e.Renderer = renderer
	setupErrorHandling(e, cfg.GetSiteName())

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(appmiddleware.AccessLog())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
	e.GET("/health", handlers.HealthGet)

	bus := pubsub.NewWatermillBridge(slog.Default())
	reg := registry.New(cfg)
	registry.Set[pubsub.Publisher](reg, registry.PublisherKey, bus)
	registry.Set[pubsub.Subscriber](reg, registry.SubscriberKey, bus)
	registry.Set[rendering.Renderer](reg, registry.RendererKey, renderer)

	return &Server{
		E:       e,
		Cfg:     cfg,
		reg:     reg,
		bus:     bus,
		modules: appModules(source),
	}, nil
}

// Registry exposes the service registry, useful for testing.
func (s *Server) Registry() *registry.Registry {
	return s.reg
}
