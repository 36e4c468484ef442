package main

import (
	"log/slog"
	"os"

	"github.com/nfrund/tradeskills/internal/config"
	"github.com/nfrund/tradeskills/internal/logging"
	"github.com/nfrund/tradeskills/internal/server"
)

// AppContent can be set at build time to force a content loading strategy.
// Example: go build -ldflags "-X 'main.AppContent=disk'"
var AppContent string

func main() {
	if AppContent != "" {
		os.Setenv("APP_CONTENT", AppContent)
	}
	cfg := config.New()
	logging.New()

	s, err := server.New(cfg)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(cfg.GetAddr()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
