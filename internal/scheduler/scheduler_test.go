package scheduler

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"TradeScope/internal/engine"
	"TradeScope/internal/model"
	"TradeScope/internal/store"
)

type stubRater struct {
	categories []model.Category
}

func (s *stubRater) Batch(_ context.Context, opts engine.BatchOptions) []model.TickerRating {
	s.categories = append(s.categories, opts.Category)
	return []model.TickerRating{{
		Symbol:   "X-" + string(opts.Category),
		Category: opts.Category,
		Scores:   model.Scores{Total: 80},
	}}
}

type stubFeatured struct {
	store.NoopStore
	upserted []model.TickerRating
}

func (s *stubFeatured) UpsertFeatured(ratings []model.TickerRating) error {
	s.upserted = append(s.upserted, ratings...)
	return nil
}

func TestRefreshCoversEveryCategory(t *testing.T) {
	rater := &stubRater{}
	featured := &stubFeatured{}
	s := NewScheduler(context.Background(), rater, featured, engine.BatchOptions{MaxResults: 10}, zerolog.Nop())

	s.RunRefreshNow()

	if len(rater.categories) != len(model.AllCategories) {
		t.Fatalf("batches = %d, want %d", len(rater.categories), len(model.AllCategories))
	}
	for i, c := range model.AllCategories {
		if rater.categories[i] != c {
			t.Errorf("batch %d category = %q, want %q", i, rater.categories[i], c)
		}
	}
	if len(featured.upserted) != len(model.AllCategories) {
		t.Errorf("upserted rows = %d, want %d", len(featured.upserted), len(model.AllCategories))
	}
}

func TestRefreshStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rater := &stubRater{}
	featured := &stubFeatured{}
	s := NewScheduler(ctx, rater, featured, engine.BatchOptions{MaxResults: 10}, zerolog.Nop())

	s.RunRefreshNow()

	if len(featured.upserted) != 0 {
		t.Errorf("interrupted refresh wrote %d rows", len(featured.upserted))
	}
}

func TestRegisterAllRejectsBadCron(t *testing.T) {
	s := NewScheduler(context.Background(), &stubRater{}, &stubFeatured{}, engine.BatchOptions{}, zerolog.Nop())
	if err := s.RegisterAll("not a cron spec"); err == nil {
		t.Fatal("expected error for malformed cron expression")
	}
	if err := s.RegisterAll("0 0 6 * * *"); err != nil {
		t.Fatalf("valid cron expression rejected: %v", err)
	}
}
