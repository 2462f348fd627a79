package store

import (
	"time"

	"TradeScope/internal/model"
)

// NoopStore is used when SQLite is not configured: every cache lookup
// misses and every write succeeds silently.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Bars(_ string, _, _ time.Time) ([]model.Bar, error) { return nil, nil }
func (n *NoopStore) UpsertBars(_ string, _ []model.Bar) error           { return nil }
func (n *NoopStore) FeaturedRatings(_ model.Category) ([]model.TickerRating, error) {
	return nil, nil
}
func (n *NoopStore) UpsertFeatured(_ []model.TickerRating) error { return nil }
func (n *NoopStore) FeaturedRefreshedAt() (time.Time, error)     { return time.Time{}, nil }
func (n *NoopStore) Close() error                                { return nil }
