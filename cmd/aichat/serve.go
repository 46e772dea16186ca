package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwrk-planet/aichat/internal/app/api"
	"github.com/cwrk-planet/aichat/internal/config"
	httpserver "github.com/cwrk-planet/aichat/internal/server/http"
	"github.com/cwrk-planet/aichat/internal/session"
	transport "github.com/cwrk-planet/aichat/internal/transport/http"
	"github.com/cwrk-planet/aichat/pkg/logger"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web client",
	Long: `Run the web client.

Config is read from --config, then $CONFIG_PATH, then config/config.yaml.
Without a config file the defaults are used (API at http://localhost:8000).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to config.yaml")
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1) config
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2) logger
	lc, err := cfg.Logging.ToLoggerConfig()
	if err != nil {
		return err
	}
	logger.Init(lc)
	slog.Info("starting aichat web", "version", cfg.Logging.Version, "upstream", cfg.Upstream.BaseURL)

	// 3) upstream API client
	client, err := api.New(api.Options{
		BaseURL:       cfg.Upstream.BaseURL,
		Timeout:       cfg.Upstream.Timeout,
		HealthTimeout: cfg.Upstream.HealthTimeout,
	})
	if err != nil {
		return fmt.Errorf("api client init: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4) sessions
	sessions := session.NewStore(cfg.Session.TTL, cfg.Session.MaxSessions)
	go sessions.Run(ctx, cfg.Session.SweepEvery)

	// 5) router
	router, err := transport.NewRouter(transport.Deps{
		API:          client,
		Sessions:     sessions,
		UI:           cfg.UI,
		CORSOrigins:  cfg.CORS.AllowedOrigins,
		SecureCookie: cfg.Session.SecureCookie,
		Now:          time.Now,
	})
	if err != nil {
		return fmt.Errorf("router init: %w", err)
	}

	// 6) server + graceful shutdown
	srv := httpserver.New(httpserver.Config{
		Addr:         cfg.HTTP.Addr,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}, router)

	slog.Info("listening", "addr", cfg.HTTP.Addr)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	slog.Info("aichat web stopped")
	return nil
}
