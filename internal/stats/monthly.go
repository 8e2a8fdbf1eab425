// Package stats derives the aggregate views the dashboard consumes. Every
// function is a pure derivation over an immutable ride collection and is
// recomputed from scratch when the collection or active filter changes.
package stats

import (
	"fmt"
	"math"

	"github.com/scootstats/scootstats/internal/ride"
)

// MonthlyRollup is the per-(year, month) chart rollup.
type MonthlyRollup struct {
	// Key is the "YYYY-MM" period key used for click-to-filter.
	Key string `json:"key"`
	// Name is the short "MM/YY" axis label.
	Name       string  `json:"name"`
	Distance   float64 `json:"distance"`   // km
	Efficiency float64 `json:"efficiency"` // Wh/km, arithmetic mean
	Energy     float64 `json:"energy"`     // kWh
	Count      int     `json:"count"`
}

// MonthlyRollups groups rides by (year, month) and sums distance and
// energy per group. Efficiency is the arithmetic mean across rides, not
// distance-weighted. Groups appear in first-encounter order.
func MonthlyRollups(rides []ride.Ride) []MonthlyRollup {
	type bucket struct {
		rollup     MonthlyRollup
		efficiency float64
	}

	order := make([]string, 0)
	buckets := make(map[string]*bucket)

	for _, r := range rides {
		key := r.MonthKey()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{rollup: MonthlyRollup{
				Key:  key,
				Name: fmt.Sprintf("%s/%02d", r.Month, r.Year%100),
			}}
			buckets[key] = b
			order = append(order, key)
		}
		b.rollup.Distance += r.Distance
		b.rollup.Energy += r.EnergyUsed
		b.rollup.Count++
		b.efficiency += r.Efficiency
	}

	out := make([]MonthlyRollup, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		rollup := b.rollup
		rollup.Distance = round1(rollup.Distance)
		rollup.Efficiency = round1(b.efficiency / float64(rollup.Count))
		rollup.Energy = round2(rollup.Energy / 1000)
		out = append(out, rollup)
	}
	return out
}

func round0(f float64) float64 {
	return math.Round(f)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func abs(f float64) float64 {
	return math.Abs(f)
}
