// Package main Pagekit API
// @title Pagekit API
// @version 1.0
// @description Paged, sortable article catalogue over in-memory, PostgreSQL or Elasticsearch storage
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	_ "github.com/DjordjeVuckovic/pagekit/docs"
	"github.com/DjordjeVuckovic/pagekit/internal/api/router"
	"github.com/DjordjeVuckovic/pagekit/internal/api/server"
	"github.com/DjordjeVuckovic/pagekit/internal/storage/factory"
	"github.com/labstack/echo/v4"
)

const startupTimeout = 30 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()})))

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration", "error", err)
		os.Exit(1)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	backend, err := factory.NewBackend(startupCtx, storageCfg)
	cancel()
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err, "type", storageCfg.Type)
		os.Exit(1)
	}
	defer backend.Close()

	s := server.New(sCfg, backend.HealthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Pagekit API is running")
	})

	router.NewArticleRouter(s.Echo, backend).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	slog.Info("Starting server", "port", sCfg.Port, "storage", storageCfg.Type)
	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func logLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
