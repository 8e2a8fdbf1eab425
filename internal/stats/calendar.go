package stats

import (
	"sort"

	"github.com/scootstats/scootstats/internal/ride"
)

// Calendar maps each ISO calendar date ("YYYY-MM-DD") to the total
// distance ridden that day. Rides without a timestamp contribute to no
// bucket.
func Calendar(rides []ride.Ride) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range rides {
		day := r.Day()
		if day == "" {
			continue
		}
		out[day] += r.Distance
	}
	return out
}

// ActivityLevel classifies a day's distance for calendar-heatmap display.
// Boundaries are exclusive-lower/inclusive-upper except the zero case:
// 0 → 0, (0,5] → 1, (5,15] → 2, (15,30] → 3, >30 → 4.
func ActivityLevel(distanceKm float64) int {
	switch {
	case distanceKm > 30:
		return 4
	case distanceKm > 15:
		return 3
	case distanceKm > 5:
		return 2
	case distanceKm > 0:
		return 1
	default:
		return 0
	}
}

// Years returns the distinct ride years, newest first.
func Years(rides []ride.Ride) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range rides {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
