package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/cwrk-planet/aichat/internal/pg"
	"github.com/cwrk-planet/aichat/internal/settings"
	"github.com/cwrk-planet/aichat/pkg/logger"
)

var dbcheckEnvFile string

var dbcheckCmd = &cobra.Command{
	Use:   "dbcheck",
	Short: "Load backend settings and check the database connection",
	Long: `Load the backend settings (environment, then .env) and open one database
session: acquire a connection, run SELECT 1, release it.`,
	RunE: runDBCheck,
}

func init() {
	dbcheckCmd.Flags().StringVar(&dbcheckEnvFile, "env-file", settings.DefaultEnvFile, "path to .env file")
}

func runDBCheck(cmd *cobra.Command, _ []string) error {
	logger.Init(logger.Config{Service: "aichat-dbcheck"})

	s, err := settings.Load(dbcheckEnvFile)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	slog.Info("backend settings loaded", "settings", s.String(), "token_ttl", s.AccessTokenTTL())

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	pool, err := pg.NewPool(ctx, s.ToPGConfig())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	var one int
	err = pg.NewSessionFactory(pool).WithSession(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, "SELECT 1").Scan(&one)
	})
	if err != nil {
		return fmt.Errorf("database session: %w", err)
	}

	slog.Info("database reachable", "select", one)
	return nil
}
