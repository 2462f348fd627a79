package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"TradeScope/internal/model"
)

// SQLiteStore persists the bar cache and featured ratings to SQLite.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the query layer can read while refresh jobs write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log.With().Str("component", "store").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_history (
			symbol TEXT NOT NULL,
			date   TEXT NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_date ON price_history(date)`,

		`CREATE TABLE IF NOT EXISTS featured_ratings (
			symbol          TEXT PRIMARY KEY,
			category        TEXT NOT NULL,
			sector          TEXT,
			current_price   REAL,
			price_date      INTEGER,
			level_price     REAL,
			level_type      TEXT,
			level_label     TEXT,
			confluence      REAL,
			proximity       REAL,
			momentum        REAL,
			seasonal        REAL,
			volatility      REAL,
			trend           REAL,
			volume          REAL,
			technical       REAL,
			fundamental     REAL,
			total           REAL,
			rating          TEXT,
			confidence      TEXT,
			recommendation  TEXT,
			reach_date      INTEGER,
			rank            INTEGER,
			refreshed_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_featured_category ON featured_ratings(category)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

const dateLayout = "2006-01-02"

// Bars returns cached bars for one symbol in [start, end], ascending.
func (s *SQLiteStore) Bars(symbol string, start, end time.Time) ([]model.Bar, error) {
	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume
		FROM price_history
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		symbol, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var date string
		var b model.Bar
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse bar date %q: %w", date, err)
		}
		b.Time = t
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// UpsertBars writes bars keyed (symbol, date). Re-writing the same key
// overwrites in place, so concurrent workers are safe.
func (s *SQLiteStore) UpsertBars(symbol string, bars []model.Bar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO price_history
		(symbol, date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, volume=excluded.volume`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Time.Format(dateLayout),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert bar: %w", err)
		}
	}
	return tx.Commit()
}

// FeaturedRatings reads the featured snapshot, optionally filtered by
// category, ordered by rank.
func (s *SQLiteStore) FeaturedRatings(category model.Category) ([]model.TickerRating, error) {
	query := `SELECT symbol, category, sector, current_price, price_date,
		level_price, level_type, level_label,
		confluence, proximity, momentum, seasonal, volatility, trend, volume,
		technical, fundamental, total,
		rating, confidence, recommendation, reach_date, rank
		FROM featured_ratings`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY rank ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query featured: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var ratings []model.TickerRating
	for rows.Next() {
		var r FeaturedRow
		if err := rows.Scan(&r.Symbol, &r.Category, &r.Sector, &r.CurrentPrice, &r.PriceDate,
			&r.LevelPrice, &r.LevelType, &r.LevelLabel,
			&r.Confluence, &r.Proximity, &r.Momentum, &r.Seasonal, &r.Volatility, &r.Trend, &r.Volume,
			&r.Technical, &r.Fundamental, &r.Total,
			&r.Rating, &r.Confidence, &r.Recommendation, &r.ReachDate, &r.Rank); err != nil {
			return nil, fmt.Errorf("scan featured row: %w", err)
		}
		ratings = append(ratings, r.ToRating(now))
	}
	return ratings, rows.Err()
}

// UpsertFeatured replaces rows keyed by symbol.
func (s *SQLiteStore) UpsertFeatured(ratings []model.TickerRating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO featured_ratings
		(symbol, category, sector, current_price, price_date,
		 level_price, level_type, level_label,
		 confluence, proximity, momentum, seasonal, volatility, trend, volume,
		 technical, fundamental, total,
		 rating, confidence, recommendation, reach_date, rank, refreshed_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(symbol) DO UPDATE SET
			category=excluded.category, sector=excluded.sector,
			current_price=excluded.current_price, price_date=excluded.price_date,
			level_price=excluded.level_price, level_type=excluded.level_type,
			level_label=excluded.level_label,
			confluence=excluded.confluence, proximity=excluded.proximity,
			momentum=excluded.momentum, seasonal=excluded.seasonal,
			volatility=excluded.volatility, trend=excluded.trend,
			volume=excluded.volume, technical=excluded.technical,
			fundamental=excluded.fundamental, total=excluded.total,
			rating=excluded.rating, confidence=excluded.confidence,
			recommendation=excluded.recommendation, reach_date=excluded.reach_date,
			rank=excluded.rank, refreshed_at=excluded.refreshed_at`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare featured upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range ratings {
		if _, err := stmt.Exec(r.Symbol, string(r.Category), r.Sector,
			r.CurrentPrice, r.PriceDate.Unix(),
			r.NextKeyLevel.Price, string(r.NextKeyLevel.Type), r.NextKeyLevel.Label,
			r.Scores.Confluence, r.Scores.Proximity, r.Scores.Momentum,
			r.Scores.Seasonal, r.Scores.Volatility, r.Scores.Trend, r.Scores.Volume,
			r.Scores.Technical, r.Scores.Fundamental, r.Scores.Total,
			r.Rating, string(r.Confidence), string(r.Recommendation),
			r.Projections.Likely.Unix(), r.Rank, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert featured %s: %w", r.Symbol, err)
		}
	}
	return tx.Commit()
}

// FeaturedRefreshedAt returns the newest refresh timestamp, zero if
// the table is empty.
func (s *SQLiteStore) FeaturedRefreshedAt() (time.Time, error) {
	var ts sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(refreshed_at) FROM featured_ratings`).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("query refreshed_at: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return time.Unix(ts.Int64, 0), nil
}

func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite store")
	return s.db.Close()
}
