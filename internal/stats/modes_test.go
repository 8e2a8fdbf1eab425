package stats

import (
	"testing"

	"github.com/scootstats/scootstats/internal/ride"
)

func TestModeTotals(t *testing.T) {
	rides := []ride.Ride{
		{ModeDist: map[ride.Mode]float64{ride.ModeEco: 2000, ride.ModeSport: 5000}},
		{ModeDist: map[ride.Mode]float64{ride.ModeEco: 3000, ride.ModeWarp: 1000}},
	}

	totals := ModeTotals(rides)
	if len(totals) != 3 {
		t.Fatalf("expected 3 modes, got %d", len(totals))
	}

	// Sorted by distance, descending.
	if totals[0].Mode != ride.ModeEco || totals[0].Distance != 5.0 {
		t.Errorf("expected Eco 5.0 first, got %s %v", totals[0].Mode, totals[0].Distance)
	}
	if totals[1].Mode != ride.ModeSport || totals[1].Distance != 5.0 {
		t.Errorf("expected Sport 5.0 second, got %s %v", totals[1].Mode, totals[1].Distance)
	}
	if totals[2].Mode != ride.ModeWarp || totals[2].Distance != 1.0 {
		t.Errorf("expected Warp 1.0 last, got %s %v", totals[2].Mode, totals[2].Distance)
	}
}

func TestModeTotals_DropsUnusedModes(t *testing.T) {
	rides := []ride.Ride{
		{ModeDist: map[ride.Mode]float64{ride.ModeEco: 1000, ride.ModeZip: 0}},
	}

	totals := ModeTotals(rides)
	if len(totals) != 1 {
		t.Fatalf("expected only modes with distance, got %d entries", len(totals))
	}
	if totals[0].Mode != ride.ModeEco {
		t.Errorf("expected Eco, got %s", totals[0].Mode)
	}
}

func TestRecentModeUsage(t *testing.T) {
	rides := make([]ride.Ride, 20)
	for i := range rides {
		rides[i] = ride.Ride{
			Date:     "2024-03-15",
			ModeDist: map[ride.Mode]float64{ride.ModeEco: float64(i) * 1000},
		}
	}

	usage := RecentModeUsage(rides, 15)
	if len(usage) != 15 {
		t.Fatalf("expected window of 15, got %d", len(usage))
	}
	// The window is the tail of the collection.
	if usage[0].Distance[ride.ModeEco] != 5.0 {
		t.Errorf("expected first window entry at ride 5, got %v km", usage[0].Distance[ride.ModeEco])
	}
	if usage[14].Distance[ride.ModeEco] != 19.0 {
		t.Errorf("expected last window entry at ride 19, got %v km", usage[14].Distance[ride.ModeEco])
	}
}

func TestRecentModeUsage_ShortCollection(t *testing.T) {
	rides := []ride.Ride{
		{Date: "a", ModeDist: map[ride.Mode]float64{ride.ModeEco: 1000}},
		{Date: "b", ModeDist: map[ride.Mode]float64{ride.ModeEco: 2000}},
	}

	usage := RecentModeUsage(rides, 15)
	if len(usage) != 2 {
		t.Fatalf("expected all rides when fewer than the window, got %d", len(usage))
	}
	if usage[0].Date != "a" || usage[1].Date != "b" {
		t.Error("expected source order preserved")
	}
}
