package models

import (
	"time"

	"github.com/scootstats/scootstats/internal/ride"
	"github.com/scootstats/scootstats/internal/stats"
	"github.com/scootstats/scootstats/pkg/polyline"
)

// ConnectRequest is the body of POST /v1/source.
type ConnectRequest struct {
	URL string `json:"url"`
}

// SourceStatus describes the connected data source.
type SourceStatus struct {
	Connected   bool       `json:"connected"`
	URL         string     `json:"url,omitempty"`
	RideCount   int        `json:"rideCount"`
	LastRefresh *time.Time `json:"lastRefresh,omitempty"`
}

// RideDetail is one ride plus its decoded route for the map view. Route
// is empty when the ride carries no polyline or no GPS fix.
type RideDetail struct {
	ride.Ride
	Route []polyline.Point `json:"route,omitempty"`
}

// SummaryItem pairs a period summary with its period-over-period trends.
// Trends are nil when there is no older period to compare against.
type SummaryItem struct {
	stats.Summary
	DistanceTrend   *stats.Trend `json:"distanceTrend,omitempty"`
	EfficiencyTrend *stats.Trend `json:"efficiencyTrend,omitempty"`
}

// CalendarDay is one activity-calendar bucket.
type CalendarDay struct {
	Date     string  `json:"date"`
	Distance float64 `json:"distance"` // km
	Level    int     `json:"level"`
}

// Theme is the body/response for the theme preference endpoints.
type Theme struct {
	Theme string `json:"theme"`
}

// Health is the health check response.
type Health struct {
	Status  string    `json:"status"`
	Time    time.Time `json:"time"`
	Version string    `json:"version"`
}
