package stats

import (
	mstats "github.com/montanaflynn/stats"

	"github.com/scootstats/scootstats/internal/ride"
)

// Totals is the top-level stat strip, recomputed whenever the active
// filtered subset changes.
type Totals struct {
	Distance   float64       `json:"distance"`   // km
	Efficiency float64       `json:"efficiency"` // Wh/km, arithmetic mean
	TopSpeed   float64       `json:"topSpeed"`   // km/h, max
	Rides      int           `json:"rides"`
	Duration   float64       `json:"duration"` // minutes
	Energy     float64       `json:"energy"`   // kWh
	Behavior   ride.Behavior `json:"behavior"`
}

// ComputeTotals derives the top-level totals for the given rides. A nil
// or empty collection yields the zero value.
func ComputeTotals(rides []ride.Ride) Totals {
	if len(rides) == 0 {
		return Totals{}
	}

	var t Totals
	efficiencies := make([]float64, 0, len(rides))
	speeds := make([]float64, 0, len(rides))
	for _, r := range rides {
		t.Distance += r.Distance
		t.Duration += r.Duration
		t.Energy += r.EnergyUsed
		efficiencies = append(efficiencies, r.Efficiency)
		speeds = append(speeds, r.TopSpeed)
	}

	t.Rides = len(rides)
	t.Distance = round1(t.Distance)
	t.Duration = round0(t.Duration)
	t.Energy = round2(t.Energy / 1000)
	if mean, err := mstats.Mean(efficiencies); err == nil {
		t.Efficiency = round1(mean)
	}
	if max, err := mstats.Max(speeds); err == nil {
		t.TopSpeed = round1(max)
	}
	t.Behavior = BehaviorRollup(rides)
	return t
}

// BehaviorRollup sums the distance components across the collection and
// derives their percentage shares, with the same zero-guard as the
// per-ride split.
func BehaviorRollup(rides []ride.Ride) ride.Behavior {
	var ridingM, brakingM, coastingM float64
	for _, r := range rides {
		ridingM += r.RidingM
		brakingM += r.BrakingM
		coastingM += r.CoastingM
	}
	return ride.BehaviorSplit(ridingM, brakingM, coastingM)
}
