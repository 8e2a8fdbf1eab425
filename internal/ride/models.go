// Package ride defines the canonical ride entity and the row normalizer
// that converts raw spreadsheet rows into it.
package ride

import (
	"fmt"
	"time"
)

// Mode is a named vehicle operating profile. The telemetry export reports
// per-mode distance for a fixed set of modes; anything else is dropped.
type Mode string

const (
	ModeEco      Mode = "Eco"
	ModeSmartEco Mode = "SmartEco"
	ModeRide     Mode = "Ride"
	ModeSport    Mode = "Sport"
	ModeWarp     Mode = "Warp"
	ModeZip      Mode = "Zip"
)

// Modes lists every recognized mode in display order.
var Modes = []Mode{ModeEco, ModeSmartEco, ModeRide, ModeSport, ModeWarp, ModeZip}

// Row is one raw tabular record: column name to loosely typed cell value.
// Cells may be float64, bool, string, or absent entirely depending on how
// the sheet was filled in.
type Row map[string]interface{}

// Behavior is the percentage split of distance-moved across riding,
// braking, and coasting. The three values sum to 100 (give or take
// rounding) whenever any underlying component is nonzero, and are all zero
// otherwise.
type Behavior struct {
	Riding   float64 `json:"riding"`
	Braking  float64 `json:"braking"`
	Coasting float64 `json:"coasting"`
}

// Location holds the GPS endpoints of a ride. A [0,0] pair means the
// vehicle had no fix; consumers must treat it as absent.
type Location struct {
	Start     [2]float64 `json:"start"`
	End       [2]float64 `json:"end"`
	StartAddr string     `json:"startAddr,omitempty"`
	EndAddr   string     `json:"endAddr,omitempty"`
}

// HasFix reports whether the given endpoint carries a real GPS fix.
func HasFix(p [2]float64) bool {
	return p[0] != 0 || p[1] != 0
}

// Ride is one recorded trip. It is immutable once constructed; every
// numeric field is finite and non-negative, coordinates excepted.
type Ride struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	// Month is the two-digit month code ("01".."12") regardless of how
	// the source encoded it.
	Month string `json:"month"`
	Year  int    `json:"year"`
	// Timestamp is the source-provided start time, nil when absent or
	// unparseable. Used only for calendar-date and ISO-week bucketing.
	Timestamp *time.Time `json:"timestamp,omitempty"`

	Distance      float64 `json:"distance"`      // km
	Duration      float64 `json:"duration"`      // minutes
	Efficiency    float64 `json:"efficiency"`    // Wh/km
	EfficiencyAlt float64 `json:"efficiencyAlt"` // km/kWh, display only
	TopSpeed      float64 `json:"topSpeed"`      // km/h
	AvgSpeed      float64 `json:"avgSpeed"`      // km/h
	EnergyUsed    float64 `json:"energyUsed"`    // Wh
	SOCPercent    float64 `json:"socPercent"`    // state of charge consumed, %

	// Distance components in meters; mutually exclusive categories.
	RidingM   float64 `json:"ridingM"`
	BrakingM  float64 `json:"brakingM"`
	CoastingM float64 `json:"coastingM"`

	Behavior Behavior         `json:"behavior"`
	ModeDist map[Mode]float64 `json:"modes"` // meters per mode

	Location Location `json:"location"`

	// RouteEncoding is the opaque encoded polyline; decoding is the map
	// consumer's job, not the pipeline's.
	RouteEncoding string `json:"routeEncoding,omitempty"`

	// SpeedSeries is the ordered speed samples for the ride, empty when
	// the source field was absent or unparseable.
	SpeedSeries []float64 `json:"speedSeries,omitempty"`
}

// MonthKey returns the "YYYY-MM" aggregate-period key for the ride.
func (r Ride) MonthKey() string {
	return fmt.Sprintf("%d-%s", r.Year, r.Month)
}

// Day returns the ride's calendar date derived from its timestamp in UTC,
// or "" when the ride has no timestamp.
func (r Ride) Day() string {
	if r.Timestamp == nil {
		return ""
	}
	return r.Timestamp.UTC().Format("2006-01-02")
}
