package stats

import (
	"testing"
	"time"

	"github.com/scootstats/scootstats/internal/ride"
)

func tsRide(iso string, distance float64) ride.Ride {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		panic(err)
	}
	return ride.Ride{
		Date:      iso,
		Timestamp: &t,
		Distance:  distance,
	}
}

func TestISOWeekKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-01", "2024-W01"},
		{"2023-12-31", "2023-W52"},
		{"2024-12-30", "2025-W01"},
		{"2021-01-01", "2020-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			ts, err := time.Parse("2006-01-02", tt.date)
			if err != nil {
				t.Fatal(err)
			}
			if got := ISOWeekKey(ts); got != tt.want {
				t.Errorf("ISOWeekKey(%s) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestDailySummaries(t *testing.T) {
	rides := []ride.Ride{
		{Date: "2024-03-15", Distance: 5.0, Duration: 10.0, EnergyUsed: 100, Efficiency: 20, TopSpeed: 40},
		{Date: "2024-03-15", Distance: 3.0, Duration: 6.2, EnergyUsed: 50, Efficiency: 16, TopSpeed: 35},
		{Date: "2024-03-16", Distance: 8.0, Duration: 15.0, EnergyUsed: 160, Efficiency: 20, TopSpeed: 52},
	}

	summaries := DailySummaries(rides)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	// Newest first.
	if summaries[0].Key != "2024-03-16" || summaries[1].Key != "2024-03-15" {
		t.Errorf("expected newest-first order, got %s then %s", summaries[0].Key, summaries[1].Key)
	}

	day := summaries[1]
	if day.RideCount != 2 {
		t.Errorf("expected 2 rides, got %d", day.RideCount)
	}
	if day.TotalDistance != 8.0 {
		t.Errorf("expected total distance 8.0, got %v", day.TotalDistance)
	}
	if day.TotalDuration != 16 {
		t.Errorf("expected total duration rounded to 16, got %v", day.TotalDuration)
	}
	if day.TotalEnergy != 0.15 {
		t.Errorf("expected total energy 0.15 kWh, got %v", day.TotalEnergy)
	}
	if day.AvgEfficiency != 18.0 {
		t.Errorf("expected mean efficiency 18.0, got %v", day.AvgEfficiency)
	}
	if day.MaxSpeed != 40.0 {
		t.Errorf("expected max speed 40.0, got %v", day.MaxSpeed)
	}
	if day.DaysActive != 0 {
		t.Errorf("daily summaries should not report days active, got %d", day.DaysActive)
	}
}

func TestWeeklySummaries(t *testing.T) {
	rides := []ride.Ride{
		tsRide("2024-01-01", 5.0), // 2024-W01
		tsRide("2024-01-03", 3.0), // 2024-W01
		tsRide("2023-12-31", 7.0), // 2023-W52
	}

	summaries := WeeklySummaries(rides)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Key != "2024-W01" {
		t.Errorf("expected 2024-W01 first, got %s", summaries[0].Key)
	}
	if summaries[0].RideCount != 2 || summaries[0].DaysActive != 2 {
		t.Errorf("expected 2 rides on 2 days, got %d rides, %d days", summaries[0].RideCount, summaries[0].DaysActive)
	}
	if summaries[1].Key != "2023-W52" {
		t.Errorf("expected 2023-W52 second, got %s", summaries[1].Key)
	}
}

func TestWeeklySummaries_FallsBackToDateString(t *testing.T) {
	rides := []ride.Ride{
		{Date: "2024-01-01", Distance: 5.0}, // no timestamp, parseable date
		{Date: "N/A", Distance: 3.0},        // neither, skipped
	}

	summaries := WeeklySummaries(rides)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].Key != "2024-W01" {
		t.Errorf("expected 2024-W01, got %s", summaries[0].Key)
	}
	if summaries[0].RideCount != 1 {
		t.Errorf("undateable rides should be skipped, got count %d", summaries[0].RideCount)
	}
}

func TestMonthlySummaries(t *testing.T) {
	rides := []ride.Ride{
		{Year: 2024, Month: "03", Date: "2024-03-15", Distance: 5.0},
		{Year: 2024, Month: "03", Date: "2024-03-16", Distance: 3.0},
		{Year: 2024, Month: "02", Date: "2024-02-20", Distance: 7.0},
	}

	summaries := MonthlySummaries(rides)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Key != "2024-03" || summaries[1].Key != "2024-02" {
		t.Errorf("expected newest-first month keys, got %s then %s", summaries[0].Key, summaries[1].Key)
	}
	if summaries[0].DaysActive != 2 {
		t.Errorf("expected 2 distinct days, got %d", summaries[0].DaysActive)
	}
}

func TestSummaries_Dispatch(t *testing.T) {
	rides := []ride.Ride{{Year: 2024, Month: "03", Date: "2024-03-15", Distance: 5.0}}

	if got := Summaries(rides, PeriodMonthly); got[0].Key != "2024-03" {
		t.Errorf("monthly dispatch: got key %s", got[0].Key)
	}
	if got := Summaries(rides, PeriodDaily); got[0].Key != "2024-03-15" {
		t.Errorf("daily dispatch: got key %s", got[0].Key)
	}
	if got := Summaries(rides, Period("bogus")); got[0].Key != "2024-03-15" {
		t.Errorf("unknown period should fall back to daily, got key %s", got[0].Key)
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		previous  float64
		wantNil   bool
		wantValue float64
		wantDir   string
	}{
		{"increase", 120, 100, false, 20.0, "up"},
		{"decrease", 80, 100, false, 20.0, "down"},
		{"no change", 100, 100, false, 0.0, "same"},
		{"previous zero", 50, 0, true, 0, ""},
		{"fractional", 101, 99, false, 2.0, "up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Delta(tt.current, tt.previous)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil trend, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected trend, got nil")
			}
			if got.Value != tt.wantValue {
				t.Errorf("expected value %v, got %v", tt.wantValue, got.Value)
			}
			if got.Direction != tt.wantDir {
				t.Errorf("expected direction %q, got %q", tt.wantDir, got.Direction)
			}
		})
	}
}
