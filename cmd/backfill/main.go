// Command backfill recomputes the rolling score of every active company in
// every active tenant. Run it after importing historical evaluations or
// changing the scoring window.
// Usage: go run ./cmd/backfill
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hejazi/internal/config"
	"hejazi/internal/logger"
	"hejazi/internal/repository/postgres"
	"hejazi/internal/service"
)

const timeout = 30 * time.Minute

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("backfill failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	companies := service.NewCompanyService(
		postgres.NewCompanyRepo(db),
		postgres.NewEvaluationRepo(db),
		postgres.NewTenantRepo(db),
		cfg.Scoring.Window,
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	n, err := companies.RecomputeAll(ctx)
	if err != nil {
		return fmt.Errorf("recomputing scores: %w", err)
	}
	log.Info().
		Int("companies", n).
		Int("window", cfg.Scoring.Window).
		Dur("elapsed", time.Since(start)).
		Msg("backfill: scores recomputed")
	return nil
}
