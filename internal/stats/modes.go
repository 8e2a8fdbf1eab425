package stats

import (
	"sort"

	"github.com/scootstats/scootstats/internal/ride"
)

// ModeTotal is the lifetime distance ridden in one mode.
type ModeTotal struct {
	Mode     ride.Mode `json:"mode"`
	Distance float64   `json:"distance"` // km
}

// ModeTotals sums per-mode distance across the collection in kilometers,
// drops modes that never accumulated distance, and sorts descending.
func ModeTotals(rides []ride.Ride) []ModeTotal {
	totals := make(map[ride.Mode]float64, len(ride.Modes))
	for _, r := range rides {
		for mode, meters := range r.ModeDist {
			totals[mode] += meters / 1000
		}
	}

	out := make([]ModeTotal, 0, len(totals))
	for _, mode := range ride.Modes {
		if totals[mode] <= 0 {
			continue
		}
		out = append(out, ModeTotal{Mode: mode, Distance: round1(totals[mode])})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance > out[j].Distance
	})
	return out
}

// ModeUsage is one ride's per-mode distance, for the recent-rides chart.
type ModeUsage struct {
	Date     string                `json:"date"`
	Distance map[ride.Mode]float64 `json:"distance"` // km per mode
}

// RecentModeUsage returns per-ride mode usage for the most recent n rides
// of the collection, in source order.
func RecentModeUsage(rides []ride.Ride, n int) []ModeUsage {
	if n <= 0 || n > len(rides) {
		n = len(rides)
	}
	window := rides[len(rides)-n:]

	out := make([]ModeUsage, 0, len(window))
	for _, r := range window {
		usage := ModeUsage{
			Date:     r.Date,
			Distance: make(map[ride.Mode]float64, len(ride.Modes)),
		}
		for _, mode := range ride.Modes {
			usage.Distance[mode] = round2(r.ModeDist[mode] / 1000)
		}
		out = append(out, usage)
	}
	return out
}
