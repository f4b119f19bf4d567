package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mhutchins/taskvault-api/internal/config"
	"github.com/mhutchins/taskvault-api/internal/redact"
)

// setupAppDatabase establishes a connection to the database and configures
// the connection pool. The ping is retried up to the configured attempt
// count with a growing backoff, so the server tolerates a database that is
// still starting up rather than dying on the first refused connection.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	var pingErr error
	for attempt := 1; attempt <= cfg.Database.ConnectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pingErr = db.PingContext(pingCtx)
		cancel()

		if pingErr == nil {
			logger.Info("database connection established",
				slog.Int("attempt", attempt))
			return db, nil
		}

		logger.Warn("database ping failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.Database.ConnectAttempts),
			slog.String("error", redact.Error(pingErr)))

		if attempt < cfg.Database.ConnectAttempts {
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				pingErr = ctx.Err()
				attempt = cfg.Database.ConnectAttempts
			}
		}
	}

	if closeErr := db.Close(); closeErr != nil {
		logger.Error("error closing database connection", "error", closeErr)
	}
	return nil, fmt.Errorf("failed to ping database after %d attempts: %w",
		cfg.Database.ConnectAttempts, pingErr)
}
