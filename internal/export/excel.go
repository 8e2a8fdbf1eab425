// Package export writes aggregate views to downloadable spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/scootstats/scootstats/internal/stats"
)

// summaryHeaders is the column layout of the summaries sheet.
var summaryHeaders = []string{
	"Period", "Rides", "Active Days", "Distance (km)",
	"Duration (min)", "Energy (kWh)", "Avg Efficiency (Wh/km)", "Max Speed (km/h)",
}

// WriteSummaries writes the given period summaries as an XLSX workbook.
// Summaries arrive newest first and are written in that order.
func WriteSummaries(w io.Writer, period stats.Period, summaries []stats.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(period)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range summaryHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, s := range summaries {
		values := []interface{}{
			s.Key, s.RideCount, s.DaysActive, s.TotalDistance,
			s.TotalDuration, s.TotalEnergy, s.AvgEfficiency, s.MaxSpeed,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func sheetName(period stats.Period) string {
	switch period {
	case stats.PeriodWeekly:
		return "Weekly"
	case stats.PeriodMonthly:
		return "Monthly"
	default:
		return "Daily"
	}
}
