package stats

import (
	"fmt"
	"sort"
	"time"

	mstats "github.com/montanaflynn/stats"

	"github.com/scootstats/scootstats/internal/ride"
)

// Period selects a summary granularity.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Summary is an aggregate over all rides in one period (day, ISO week, or
// month), sorted newest first in the sequences returned below.
type Summary struct {
	// Key identifies the period: "YYYY-MM-DD", "YYYY-Www", or "YYYY-MM".
	Key       string `json:"key"`
	RideCount int    `json:"rideCount"`
	// DaysActive is the distinct-date count; zero for daily summaries.
	DaysActive    int     `json:"daysActive,omitempty"`
	TotalDistance float64 `json:"totalDistance"` // km
	TotalDuration float64 `json:"totalDuration"` // minutes
	TotalEnergy   float64 `json:"totalEnergy"`   // kWh
	AvgEfficiency float64 `json:"avgEfficiency"` // Wh/km, arithmetic mean
	MaxSpeed      float64 `json:"maxSpeed"`      // km/h
}

// Trend is a period-over-period percentage change.
type Trend struct {
	// Value is the absolute percent change, one decimal.
	Value float64 `json:"value"`
	// Direction is "up", "down", or "same".
	Direction string `json:"direction"`
}

// Delta computes the trend from previous to current. It returns nil ("no
// trend") when previous is zero, so a fresh period never divides by zero.
func Delta(current, previous float64) *Trend {
	if previous == 0 {
		return nil
	}
	change := (current - previous) / previous * 100
	t := &Trend{Value: round1(abs(change))}
	switch {
	case change > 0:
		t.Direction = "up"
	case change < 0:
		t.Direction = "down"
	default:
		t.Direction = "same"
	}
	return t
}

// Summaries dispatches on period.
func Summaries(rides []ride.Ride, period Period) []Summary {
	switch period {
	case PeriodWeekly:
		return WeeklySummaries(rides)
	case PeriodMonthly:
		return MonthlySummaries(rides)
	default:
		return DailySummaries(rides)
	}
}

// DailySummaries groups rides by their display date.
func DailySummaries(rides []ride.Ride) []Summary {
	return summarize(rides, func(r ride.Ride) string {
		return r.Date
	}, false)
}

// WeeklySummaries groups rides by ISO-8601 week (Thursday-anchored; the
// week containing the year's first Thursday is week 1). The ride's
// timestamp drives the bucketing, falling back to its parsed date string;
// rides with neither are skipped.
func WeeklySummaries(rides []ride.Ride) []Summary {
	return summarize(rides, func(r ride.Ride) string {
		t := rideTime(r)
		if t == nil {
			return ""
		}
		return ISOWeekKey(*t)
	}, true)
}

// MonthlySummaries groups rides by their "YYYY-MM" key.
func MonthlySummaries(rides []ride.Ride) []Summary {
	return summarize(rides, ride.Ride.MonthKey, true)
}

// ISOWeekKey formats t's ISO week as "YYYY-Www".
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func summarize(rides []ride.Ride, keyFn func(ride.Ride) string, trackDays bool) []Summary {
	type bucket struct {
		summary      Summary
		efficiencies []float64
		speeds       []float64
		days         map[string]struct{}
	}

	buckets := make(map[string]*bucket)
	for _, r := range rides {
		key := keyFn(r)
		if key == "" {
			continue
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{summary: Summary{Key: key}}
			if trackDays {
				b.days = make(map[string]struct{})
			}
			buckets[key] = b
		}
		b.summary.RideCount++
		b.summary.TotalDistance += r.Distance
		b.summary.TotalDuration += r.Duration
		b.summary.TotalEnergy += r.EnergyUsed
		b.efficiencies = append(b.efficiencies, r.Efficiency)
		b.speeds = append(b.speeds, r.TopSpeed)
		if trackDays {
			b.days[r.Date] = struct{}{}
		}
	}

	out := make([]Summary, 0, len(buckets))
	for _, b := range buckets {
		s := b.summary
		s.TotalDistance = round2(s.TotalDistance)
		s.TotalDuration = round0(s.TotalDuration)
		s.TotalEnergy = round2(s.TotalEnergy / 1000)
		if mean, err := mstats.Mean(b.efficiencies); err == nil {
			s.AvgEfficiency = round1(mean)
		}
		if max, err := mstats.Max(b.speeds); err == nil {
			s.MaxSpeed = round1(max)
		}
		if b.days != nil {
			s.DaysActive = len(b.days)
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Key > out[j].Key
	})
	return out
}

// rideTime returns the instant used for time bucketing.
func rideTime(r ride.Ride) *time.Time {
	if r.Timestamp != nil {
		return r.Timestamp
	}
	if t, err := time.Parse("2006-01-02", r.Date); err == nil {
		return &t
	}
	return nil
}
