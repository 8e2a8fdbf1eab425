package ride

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Recognized column names in the telemetry export. Every column is
// optional; absent or malformed cells fall back to the defaults below.
const (
	colRideID        = "ride_id"
	colDate          = "date"
	colMonth         = "month"
	colYear          = "year"
	colDistanceM     = "distance_m"
	colEfficiency    = "efficiency_wh_km"
	colEfficiencyAlt = "efficiency_km_kwh"
	colDurationSecs  = "duration_secs"
	colTopSpeed      = "top_speed_kmph"
	colAvgSpeed      = "avg_speed_kmph"
	colEnergyWh      = "soc_usage_wh"
	colSOCPercent    = "soc_usage_percent"
	colStartTime     = "ride_start_time"
	colRidingM       = "riding_m"
	colBrakingM      = "braking_m"
	colCoastingM     = "coasting_m"
	colStartLat      = "ride_start_lat"
	colStartLon      = "ride_start_lon"
	colEndLat        = "ride_end_lat"
	colEndLon        = "ride_end_lon"
	colStartLocation = "ride_start_location"
	colEndLocation   = "ride_end_location"
	colPolyline      = "polyline"
	colSpeed         = "speed"
)

// modeColumns maps each recognized mode to its export column.
var modeColumns = map[Mode]string{
	ModeEco:      "eco_mode_distance_m",
	ModeSmartEco: "smart_eco_mode_distance_m",
	ModeRide:     "ride_mode_distance_m",
	ModeSport:    "sport_mode_distance_m",
	ModeWarp:     "warp_mode_distance_m",
	ModeZip:      "zip_mode_distance_m",
}

// timestampLayouts are the start-time formats seen in real exports.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
}

// Normalize converts one raw row into a canonical Ride. The positional
// index supplies the fallback ID when the source lacks one. A non-nil
// error is a drop signal: the caller excludes the row and moves on, it
// never aborts the batch.
func Normalize(row Row, index int) (Ride, error) {
	if row == nil {
		return Ride{}, fmt.Errorf("row %d: empty row", index)
	}
	if !hasRecognizedColumn(row) {
		return Ride{}, fmt.Errorf("row %d: no recognized columns", index)
	}

	id := cellString(row[colRideID])
	if id == "" {
		id = fmt.Sprintf("ride-%d", index)
	}

	date := cellString(row[colDate])
	if date == "" {
		date = "N/A"
	}

	year := int(cellNumber(row[colYear]))
	if year == 0 {
		year = time.Now().Year()
	}

	ridingM := cellNumber(row[colRidingM])
	brakingM := cellNumber(row[colBrakingM])
	coastingM := cellNumber(row[colCoastingM])

	modes := make(map[Mode]float64, len(modeColumns))
	for mode, col := range modeColumns {
		modes[mode] = cellNumber(row[col])
	}

	r := Ride{
		ID:            id,
		Date:          date,
		Month:         normalizeMonth(row[colMonth]),
		Year:          year,
		Timestamp:     parseTimestamp(row[colStartTime]),
		Distance:      round2(cellNumber(row[colDistanceM]) / 1000),
		Duration:      round2(cellNumber(row[colDurationSecs]) / 60),
		Efficiency:    cellNumber(row[colEfficiency]),
		EfficiencyAlt: cellNumber(row[colEfficiencyAlt]),
		TopSpeed:      cellNumber(row[colTopSpeed]),
		AvgSpeed:      cellNumber(row[colAvgSpeed]),
		EnergyUsed:    cellNumber(row[colEnergyWh]),
		SOCPercent:    round2(cellNumber(row[colSOCPercent]) * 100),
		RidingM:       ridingM,
		BrakingM:      brakingM,
		CoastingM:     coastingM,
		Behavior:      BehaviorSplit(ridingM, brakingM, coastingM),
		ModeDist:      modes,
		Location: Location{
			Start:     [2]float64{cellCoord(row[colStartLat]), cellCoord(row[colStartLon])},
			End:       [2]float64{cellCoord(row[colEndLat]), cellCoord(row[colEndLon])},
			StartAddr: cellString(row[colStartLocation]),
			EndAddr:   cellString(row[colEndLocation]),
		},
		RouteEncoding: cellString(row[colPolyline]),
		SpeedSeries:   parseSpeedSeries(row[colSpeed]),
	}

	return r, nil
}

// recognizedColumns is every column name the normalizer reads.
var recognizedColumns = func() map[string]struct{} {
	cols := []string{
		colRideID, colDate, colMonth, colYear, colDistanceM, colEfficiency,
		colEfficiencyAlt, colDurationSecs, colTopSpeed, colAvgSpeed,
		colEnergyWh, colSOCPercent, colStartTime, colRidingM, colBrakingM,
		colCoastingM, colStartLat, colStartLon, colEndLat, colEndLon,
		colStartLocation, colEndLocation, colPolyline, colSpeed,
	}
	set := make(map[string]struct{}, len(cols)+len(modeColumns))
	for _, c := range cols {
		set[c] = struct{}{}
	}
	for _, c := range modeColumns {
		set[c] = struct{}{}
	}
	return set
}()

func hasRecognizedColumn(row Row) bool {
	for name := range row {
		if _, ok := recognizedColumns[name]; ok {
			return true
		}
	}
	return false
}

// BehaviorSplit derives the riding/braking/coasting percentage shares.
// All three are zero when the component sum is zero.
func BehaviorSplit(ridingM, brakingM, coastingM float64) Behavior {
	total := ridingM + brakingM + coastingM
	if total <= 0 {
		return Behavior{}
	}
	return Behavior{
		Riding:   round1(ridingM / total * 100),
		Braking:  round1(brakingM / total * 100),
		Coasting: round1(coastingM / total * 100),
	}
}

// normalizeMonth produces the two-digit month code. The export encodes
// months either as "MM" or "YYYY-MM"; absent months default to "01".
func normalizeMonth(v interface{}) string {
	s := cellString(v)
	if s == "" {
		return "01"
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		parts := strings.Split(s, "-")
		if len(parts) > 1 && parts[1] != "" {
			s = parts[1]
		}
	}
	if len(s) < 2 {
		s = "0" + s
	}
	return s
}

// cellNumber coerces a cell to a finite non-negative float64, defaulting
// to 0 for anything else. NaN and infinities never reach a Ride.
func cellNumber(v interface{}) float64 {
	f := rawNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// cellCoord coerces a coordinate cell. Unlike other numerics, coordinates
// keep their sign; only non-finite values collapse to 0.
func cellCoord(v interface{}) float64 {
	f := rawNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func rawNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func cellString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == math.Trunc(s) && !math.IsInf(s, 0) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func parseTimestamp(v interface{}) *time.Time {
	s := cellString(v)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseSpeedSeries parses the JSON-encoded speed samples. Any parse
// failure degrades to an empty series; it never fails the row.
func parseSpeedSeries(v interface{}) []float64 {
	s := cellString(v)
	if s == "" {
		return nil
	}
	var samples []float64
	if err := json.Unmarshal([]byte(s), &samples); err != nil {
		return nil
	}
	for i, sample := range samples {
		if math.IsNaN(sample) || math.IsInf(sample, 0) || sample < 0 {
			samples[i] = 0
		}
	}
	return samples
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
