// Package gann generates deterministic recurring calendar markers from
// fixed geometric fraction tables. Everything is a pure function of
// the date: nothing is cached or persisted, and a range query simply
// regenerates day by day.
package gann

import (
	"fmt"
	"time"

	"TradeScope/internal/model"
)

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func quarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}

func newMoment(tf model.Timeframe, at time.Time, def momentDef) model.GannMoment {
	return model.GannMoment{
		ID:        fmt.Sprintf("%s-%s-%s", tf, at.Format("20060102T1504"), def.Angle),
		Title:     def.Title,
		At:        at,
		Timeframe: tf,
		Angle:     def.Angle,
		Category:  def.Category,
		Color:     colorFor(def.Category),
		EventType: eventTypeFor(def.Category),
	}
}

// DailyMoments returns the eight intraday markers for a date.
func DailyMoments(date time.Time) []model.GannMoment {
	y, m, d := date.Date()
	out := make([]model.GannMoment, 0, len(dailyTable))
	for _, e := range dailyTable {
		at := time.Date(y, m, d, e.Hour, 0, 0, 0, time.UTC)
		out = append(out, newMoment(model.TimeframeDaily, at, e.Def))
	}
	return out
}

// WeeklyMoments returns the week-cycle markers landing on the date's
// weekday.
func WeeklyMoments(date time.Time) []model.GannMoment {
	y, m, d := date.Date()
	var out []model.GannMoment
	for _, e := range weeklyTable {
		if e.Weekday != date.Weekday() {
			continue
		}
		at := time.Date(y, m, d, e.Hour, 0, 0, 0, time.UTC)
		out = append(out, newMoment(model.TimeframeWeekly, at, e.Def))
	}
	return out
}

// MonthlyMoments returns the month-cycle marker for the date, if its
// day of month appears in the pattern for that month's length.
func MonthlyMoments(date time.Time) []model.GannMoment {
	y, m, d := date.Date()
	pattern := monthlyTables[daysInMonth(y, m)]
	var out []model.GannMoment
	for _, e := range pattern {
		if e.Day != d {
			continue
		}
		at := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
		out = append(out, newMoment(model.TimeframeMonthly, at, e.Def))
	}
	return out
}

// QuarterlyMoments returns the quarter-cycle marker for the date.
func QuarterlyMoments(date time.Time) []model.GannMoment {
	y, m, d := date.Date()
	var out []model.GannMoment
	for _, e := range quarterlyTables[quarterOf(m)] {
		if e.Month != m || e.Day != d {
			continue
		}
		at := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
		out = append(out, newMoment(model.TimeframeQuarterly, at, e.Def))
	}
	return out
}

// YearlyMoments returns the year-cycle marker for the date, selected
// from the leap or non-leap table.
func YearlyMoments(date time.Time) []model.GannMoment {
	y, m, d := date.Date()
	var out []model.GannMoment
	for _, e := range yearlyTables[isLeapYear(y)] {
		if e.Month != m || e.Day != d {
			continue
		}
		at := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
		out = append(out, newMoment(model.TimeframeYearly, at, e.Def))
	}
	return out
}

// MomentsForDate aggregates all five timeframes for one date.
func MomentsForDate(date time.Time) []model.GannMoment {
	var out []model.GannMoment
	out = append(out, DailyMoments(date)...)
	out = append(out, WeeklyMoments(date)...)
	out = append(out, MonthlyMoments(date)...)
	out = append(out, QuarterlyMoments(date)...)
	out = append(out, YearlyMoments(date)...)
	return out
}

// MomentsForRange accumulates day by day over [start, end] inclusive.
func MomentsForRange(start, end time.Time) []model.GannMoment {
	var out []model.GannMoment
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, MomentsForDate(d)...)
	}
	return out
}
