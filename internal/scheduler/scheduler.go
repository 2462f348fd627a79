// Package scheduler runs the out-of-band featured-cache refresh: on a
// cron it re-rates the sentinel universe per category and upserts the
// top results into the featured table the query layer reads.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"TradeScope/internal/engine"
	"TradeScope/internal/model"
	"TradeScope/internal/store"
)

// Rater is the slice of the engine the refresh job needs.
type Rater interface {
	Batch(ctx context.Context, opts engine.BatchOptions) []model.TickerRating
}

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Rater    Rater
	Featured store.FeaturedStore
	Ctx      context.Context

	base engine.BatchOptions
	log  zerolog.Logger
}

// NewScheduler creates a Scheduler. base carries the configured worker
// count and lookback; its MaxResults caps how many ratings each
// category contributes to the featured table.
func NewScheduler(ctx context.Context, rater Rater, featured store.FeaturedStore, base engine.BatchOptions, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Rater:    rater,
		Featured: featured,
		Ctx:      ctx,
		base:     base,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the featured refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register featured refresh: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunRefreshNow executes the refresh immediately (manual trigger or
// run-on-start).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	start := time.Now()
	s.log.Info().Msg("running featured refresh")

	var all []model.TickerRating
	for _, category := range model.AllCategories {
		opts := s.base
		opts.Category = category
		ratings := s.Rater.Batch(s.Ctx, opts)
		all = append(all, ratings...)
		if s.Ctx.Err() != nil {
			s.log.Warn().Err(s.Ctx.Err()).Msg("featured refresh interrupted")
			return
		}
	}

	if err := s.Featured.UpsertFeatured(all); err != nil {
		s.log.Error().Err(err).Msg("featured upsert failed")
		return
	}
	s.log.Info().
		Int("ratings", len(all)).
		Dur("elapsed", time.Since(start)).
		Msg("featured refresh complete")
}
