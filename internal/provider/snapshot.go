package provider

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"TradeScope/internal/model"
)

// SnapshotSource serves bars from a static historical CSV dump loaded
// once at startup. Consulted after the cache, before any vendor call.
//
// Expected columns: symbol,date,open,high,low,close,volume with a
// header row; dates are YYYY-MM-DD.
type SnapshotSource struct {
	bars map[string][]model.Bar
}

// LoadSnapshot reads the CSV file. A missing path yields an empty
// source, not an error: the snapshot stage is optional.
func LoadSnapshot(path string) (*SnapshotSource, error) {
	s := &SnapshotSource{bars: make(map[string][]model.Bar)}
	if path == "" {
		return s, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read snapshot csv: %w", err)
	}

	for i, rec := range records {
		if i == 0 || len(rec) < 7 {
			continue // header or short row
		}
		t, err := time.Parse("2006-01-02", rec[1])
		if err != nil {
			return nil, fmt.Errorf("snapshot row %d: bad date %q: %w", i+1, rec[1], err)
		}
		bar := model.Bar{Time: t}
		for j, dst := range []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume} {
			v, err := strconv.ParseFloat(rec[j+2], 64)
			if err != nil {
				return nil, fmt.Errorf("snapshot row %d col %d: %w", i+1, j+2, err)
			}
			*dst = v
		}
		s.bars[rec[0]] = append(s.bars[rec[0]], bar)
	}

	for sym := range s.bars {
		b := s.bars[sym]
		sort.Slice(b, func(i, j int) bool { return b[i].Time.Before(b[j].Time) })
	}
	return s, nil
}

// Bars returns snapshot bars for one symbol within [start, end].
func (s *SnapshotSource) Bars(symbol string, start, end time.Time) []model.Bar {
	var out []model.Bar
	for _, b := range s.bars[symbol] {
		if b.Time.Before(start) || b.Time.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Symbols reports how many symbols the snapshot covers.
func (s *SnapshotSource) Symbols() int { return len(s.bars) }
