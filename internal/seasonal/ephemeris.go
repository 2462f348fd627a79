// Package seasonal scores calendar proximity to fixed seasonal anchor
// events (solar ingresses, solstices, equinoxes). The tables are an
// approximate fixed-date ephemeris; everything here is pure and
// read-only.
package seasonal

import "time"

// anchor is one recurring seasonal event at a fixed month/day.
type anchor struct {
	Month    time.Month
	Day      int
	Name     string
	Strength float64 // 0..1 relative weight
}

// ingressAnchors mark the start of each solar period. Cardinal
// ingresses (equinoxes and solstices) carry full weight.
var ingressAnchors = []anchor{
	{time.March, 21, "Aries ingress (spring equinox)", 1.0},
	{time.April, 20, "Taurus ingress", 0.5},
	{time.May, 21, "Gemini ingress", 0.5},
	{time.June, 21, "Cancer ingress (summer solstice)", 1.0},
	{time.July, 23, "Leo ingress", 0.5},
	{time.August, 23, "Virgo ingress", 0.5},
	{time.September, 22, "Libra ingress (autumn equinox)", 1.0},
	{time.October, 23, "Scorpio ingress", 0.5},
	{time.November, 22, "Sagittarius ingress", 0.5},
	{time.December, 21, "Capricorn ingress (winter solstice)", 1.0},
	{time.January, 20, "Aquarius ingress", 0.5},
	{time.February, 19, "Pisces ingress", 0.5},
}

// influenceDays is the proximity window: an anchor contributes nothing
// beyond this many days away.
const influenceDays = 15.0

// baseScore anchors the scale so a date far from every event still
// reads as a usable midfield value.
const baseScore = 40.0

// Score rates how strongly seasonal anchors cluster around a date,
// bounded [0,100]. Contributions decay linearly with day distance.
func Score(date time.Time) float64 {
	score := baseScore
	for _, a := range ingressAnchors {
		d := daysToAnchor(date, a)
		if d > influenceDays {
			continue
		}
		score += a.Strength * 40.0 * (1.0 - d/influenceDays)
	}
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// CurrentIngress names the solar period a date falls in.
func CurrentIngress(date time.Time) string {
	// Walk backwards through the year to the most recent ingress.
	best := ""
	bestDelta := 400.0
	for _, a := range ingressAnchors {
		for _, year := range []int{date.Year() - 1, date.Year()} {
			at := time.Date(year, a.Month, a.Day, 0, 0, 0, 0, time.UTC)
			delta := date.Sub(at).Hours() / 24
			if delta >= 0 && delta < bestDelta {
				bestDelta = delta
				best = a.Name
			}
		}
	}
	return best
}

// NearbyAnchors lists anchors within the influence window of a date.
func NearbyAnchors(date time.Time) []string {
	var out []string
	for _, a := range ingressAnchors {
		if daysToAnchor(date, a) <= influenceDays {
			out = append(out, a.Name)
		}
	}
	return out
}

// daysToAnchor is the absolute day distance to the nearest occurrence
// of the anchor, checking adjacent years for the wrap at year end.
func daysToAnchor(date time.Time, a anchor) float64 {
	min := 400.0
	for _, year := range []int{date.Year() - 1, date.Year(), date.Year() + 1} {
		at := time.Date(year, a.Month, a.Day, 0, 0, 0, 0, time.UTC)
		d := at.Sub(date).Hours() / 24
		if d < 0 {
			d = -d
		}
		if d < min {
			min = d
		}
	}
	return min
}
