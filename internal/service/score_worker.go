package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ScoreWorkerConfig holds settings for the score recompute worker.
type ScoreWorkerConfig struct {
	// Spec is a standard five-field cron expression, evaluated in UTC.
	Spec    string
	Timeout time.Duration
}

// ScoreWorker recomputes every active company's rolling score on a cron
// schedule.
type ScoreWorker struct {
	companies CompanyService
	cfg       ScoreWorkerConfig
	cron      *cron.Cron
	mu        sync.Mutex
	running   bool
}

// NewScoreWorker creates a new ScoreWorker. The cron spec is parsed
// immediately so a bad expression fails at startup.
func NewScoreWorker(companies CompanyService, cfg ScoreWorkerConfig) (*ScoreWorker, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	w := &ScoreWorker{
		companies: companies,
		cfg:       cfg,
		cron:      cron.New(cron.WithLocation(time.UTC)),
	}
	if _, err := w.cron.AddFunc(cfg.Spec, w.RunOnce); err != nil {
		return nil, fmt.Errorf("scoreWorker: parsing cron spec %q: %w", cfg.Spec, err)
	}
	return w, nil
}

// Start runs the schedule until ctx is canceled. It blocks until a run that
// is in flight at shutdown has finished.
func (w *ScoreWorker) Start(ctx context.Context) {
	w.cron.Start()
	log.Info().Str("spec", w.cfg.Spec).Msg("scoreWorker: started")

	<-ctx.Done()
	log.Info().Msg("scoreWorker: shutting down, waiting for in-flight run...")
	<-w.cron.Stop().Done()
	log.Info().Msg("scoreWorker: shutdown complete")
}

// RunOnce recomputes all scores. Overlapping runs are skipped.
func (w *ScoreWorker) RunOnce() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		log.Warn().Msg("scoreWorker: previous run still in progress, skipping")
		return
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	// A fresh context so a run completes even during shutdown.
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout)
	defer cancel()

	start := time.Now()
	n, err := w.companies.RecomputeAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("scoreWorker: recompute failed")
		return
	}
	log.Info().
		Int("companies", n).
		Dur("elapsed", time.Since(start)).
		Msg("scoreWorker: recompute complete")
}
