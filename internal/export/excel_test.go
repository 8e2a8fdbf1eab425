package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/scootstats/scootstats/internal/stats"
)

func TestWriteSummaries(t *testing.T) {
	summaries := []stats.Summary{
		{Key: "2024-04", RideCount: 3, DaysActive: 2, TotalDistance: 45.5,
			TotalDuration: 120, TotalEnergy: 0.91, AvgEfficiency: 20.0, MaxSpeed: 55.0},
		{Key: "2024-03", RideCount: 8, DaysActive: 5, TotalDistance: 82.3,
			TotalDuration: 260, TotalEnergy: 1.65, AvgEfficiency: 19.5, MaxSpeed: 52.3},
	}

	var buf bytes.Buffer
	if err := WriteSummaries(&buf, stats.PeriodMonthly, summaries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Monthly" {
		t.Fatalf("expected single Monthly sheet, got %v", sheets)
	}

	rows, err := f.GetRows("Monthly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	if rows[0][0] != "Period" || rows[0][7] != "Max Speed (km/h)" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "2024-04" {
		t.Errorf("expected newest summary first, got %q", rows[1][0])
	}
	if rows[2][0] != "2024-03" || rows[2][1] != "8" {
		t.Errorf("unexpected second data row: %v", rows[2])
	}
}

func TestWriteSummaries_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaries(&buf, stats.PeriodDaily, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Daily")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}

func TestSheetName(t *testing.T) {
	if got := sheetName(stats.PeriodWeekly); got != "Weekly" {
		t.Errorf("expected Weekly, got %q", got)
	}
	if got := sheetName(stats.Period("bogus")); got != "Daily" {
		t.Errorf("expected Daily fallback, got %q", got)
	}
}
