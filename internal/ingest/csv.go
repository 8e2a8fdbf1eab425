package ingest

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/scootstats/scootstats/internal/ride"
)

// parseCSV parses header-delimited CSV text into loosely typed rows.
// Cells are dynamically typed: booleans and finite numbers are recognized,
// everything else stays a string, and empty cells are absent from the row.
// Fully blank lines are skipped and ragged rows are tolerated.
func parseCSV(text string) ([]ride.Row, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	rows := make([]ride.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if blankRecord(record) {
			continue
		}
		row := make(ride.Row, len(header))
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if v, ok := typeCell(cell); ok {
				row[header[i]] = v
			}
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// typeCell infers the value of a single cell. The second return is false
// for empty cells, which are treated as absent columns.
func typeCell(cell string) (interface{}, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil, false
	}
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return s, true
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// looksLikeMarkup reports whether the body starts with a doctype or root
// markup tag. Sheets published as an HTML view instead of CSV hit this.
func looksLikeMarkup(body string) bool {
	head := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(head, "<!doctype") ||
		strings.HasPrefix(head, "<html") ||
		strings.HasPrefix(head, "<?xml")
}
