package ride

import (
	"testing"
	"time"
)

func TestNormalize_FullRow(t *testing.T) {
	row := Row{
		"ride_id":               "r-42",
		"date":                  "2024-03-15",
		"month":                 "03",
		"year":                  float64(2024),
		"distance_m":            float64(5000),
		"duration_secs":         float64(600),
		"efficiency_wh_km":      float64(18.5),
		"top_speed_kmph":        float64(52.3),
		"avg_speed_kmph":        float64(24.1),
		"soc_usage_wh":          float64(92.5),
		"soc_usage_percent":     float64(0.0525),
		"ride_start_time":       "2024-03-15 08:30:00",
		"riding_m":              float64(3000),
		"braking_m":             float64(1000),
		"coasting_m":            float64(1000),
		"eco_mode_distance_m":   float64(2000),
		"sport_mode_distance_m": float64(3000),
		"ride_start_lat":        float64(52.3676),
		"ride_start_lon":        float64(4.9041),
		"polyline":              "_p~iF~ps|U",
		"speed":                 "[10.5, 12.0, 15.5]",
	}

	r, err := Normalize(row, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.ID != "r-42" {
		t.Errorf("expected ID r-42, got %q", r.ID)
	}
	if r.Distance != 5.00 {
		t.Errorf("expected distance 5.00 km, got %v", r.Distance)
	}
	if r.Duration != 10.00 {
		t.Errorf("expected duration 10.00 min, got %v", r.Duration)
	}
	if r.SOCPercent != 5.25 {
		t.Errorf("expected SOC 5.25%%, got %v", r.SOCPercent)
	}
	if r.Behavior.Riding != 60.0 || r.Behavior.Braking != 20.0 || r.Behavior.Coasting != 20.0 {
		t.Errorf("expected behavior 60/20/20, got %+v", r.Behavior)
	}
	if r.ModeDist[ModeEco] != 2000 || r.ModeDist[ModeSport] != 3000 {
		t.Errorf("unexpected mode distances: %+v", r.ModeDist)
	}
	if r.Timestamp == nil {
		t.Fatal("expected parsed timestamp")
	}
	want := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
	if !r.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, r.Timestamp)
	}
	if len(r.SpeedSeries) != 3 || r.SpeedSeries[2] != 15.5 {
		t.Errorf("unexpected speed series: %v", r.SpeedSeries)
	}
	if r.RouteEncoding != "_p~iF~ps|U" {
		t.Errorf("unexpected route encoding: %q", r.RouteEncoding)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	r, err := Normalize(Row{"distance_m": float64(1000)}, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.ID != "ride-7" {
		t.Errorf("expected positional fallback ID ride-7, got %q", r.ID)
	}
	if r.Date != "N/A" {
		t.Errorf("expected date N/A, got %q", r.Date)
	}
	if r.Month != "01" {
		t.Errorf("expected default month 01, got %q", r.Month)
	}
	if r.Year != time.Now().Year() {
		t.Errorf("expected current year, got %d", r.Year)
	}
	if r.Timestamp != nil {
		t.Errorf("expected nil timestamp, got %v", r.Timestamp)
	}
	if r.Duration != 0 || r.Efficiency != 0 || r.TopSpeed != 0 {
		t.Errorf("expected zero numerics, got %+v", r)
	}
}

func TestNormalize_MalformedCellsCoerceToZero(t *testing.T) {
	row := Row{
		"distance_m":       "not a number",
		"duration_secs":    float64(-300),
		"efficiency_wh_km": "NaN",
		"top_speed_kmph":   "",
		"speed":            "{broken json",
	}

	r, err := Normalize(row, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Distance != 0 {
		t.Errorf("non-numeric distance should coerce to 0, got %v", r.Distance)
	}
	if r.Duration != 0 {
		t.Errorf("negative duration should coerce to 0, got %v", r.Duration)
	}
	if r.Efficiency != 0 {
		t.Errorf("NaN efficiency should coerce to 0, got %v", r.Efficiency)
	}
	if r.SpeedSeries != nil {
		t.Errorf("broken speed series should degrade to nil, got %v", r.SpeedSeries)
	}
}

func TestNormalize_CoordinatesKeepSign(t *testing.T) {
	row := Row{
		"ride_start_lat": float64(-33.8688),
		"ride_start_lon": float64(151.2093),
		"ride_end_lat":   float64(-33.8915),
		"ride_end_lon":   float64(151.2767),
	}

	r, err := Normalize(row, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Location.Start[0] != -33.8688 {
		t.Errorf("expected negative start latitude preserved, got %v", r.Location.Start[0])
	}
	if r.Location.End[0] != -33.8915 {
		t.Errorf("expected negative end latitude preserved, got %v", r.Location.End[0])
	}
	if !HasFix(r.Location.Start) {
		t.Error("expected start location to have a fix")
	}
}

func TestNormalize_DropSignals(t *testing.T) {
	if _, err := Normalize(nil, 0); err == nil {
		t.Error("expected error for nil row")
	}
	if _, err := Normalize(Row{"unrelated_column": "x"}, 0); err == nil {
		t.Error("expected error for row with no recognized columns")
	}
}

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"two digit", "03", "03"},
		{"single digit pads", "3", "03"},
		{"numeric cell", float64(9), "09"},
		{"year-month takes month part", "2024-07", "07"},
		{"absent defaults", nil, "01"},
		{"empty defaults", "", "01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeMonth(tt.in); got != tt.want {
				t.Errorf("normalizeMonth(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBehaviorSplit_ZeroGuard(t *testing.T) {
	b := BehaviorSplit(0, 0, 0)
	if b.Riding != 0 || b.Braking != 0 || b.Coasting != 0 {
		t.Errorf("expected all-zero split, got %+v", b)
	}
}

func TestBehaviorSplit_Rounding(t *testing.T) {
	b := BehaviorSplit(1, 1, 1)
	if b.Riding != 33.3 || b.Braking != 33.3 || b.Coasting != 33.3 {
		t.Errorf("expected 33.3 shares, got %+v", b)
	}
}

func TestMonthKey(t *testing.T) {
	r := Ride{Year: 2024, Month: "03"}
	if got := r.MonthKey(); got != "2024-03" {
		t.Errorf("expected 2024-03, got %q", got)
	}
}

func TestDay(t *testing.T) {
	ts := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)
	r := Ride{Timestamp: &ts}
	if got := r.Day(); got != "2024-03-15" {
		t.Errorf("expected 2024-03-15, got %q", got)
	}
	if got := (Ride{}).Day(); got != "" {
		t.Errorf("expected empty day without timestamp, got %q", got)
	}
}
