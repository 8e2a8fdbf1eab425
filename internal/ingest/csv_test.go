package ingest

import "testing"

func TestParseCSV_TypesCells(t *testing.T) {
	text := "ride_id,distance_m,flagged,note\nr-1,5000,true,hello\nr-2,1234.5,false,\n"

	rows, err := parseCSV(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0]["ride_id"] != "r-1" {
		t.Errorf("expected string cell, got %T %v", rows[0]["ride_id"], rows[0]["ride_id"])
	}
	if rows[0]["distance_m"] != float64(5000) {
		t.Errorf("expected numeric cell, got %T %v", rows[0]["distance_m"], rows[0]["distance_m"])
	}
	if rows[0]["flagged"] != true {
		t.Errorf("expected boolean cell, got %T %v", rows[0]["flagged"], rows[0]["flagged"])
	}
	if _, ok := rows[1]["note"]; ok {
		t.Error("empty cell should be absent from the row")
	}
}

func TestParseCSV_SkipsBlankLines(t *testing.T) {
	text := "ride_id,distance_m\nr-1,5000\n,\n\nr-2,3000\n"

	rows, err := parseCSV(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected blank lines skipped, got %d rows", len(rows))
	}
}

func TestParseCSV_RaggedRows(t *testing.T) {
	text := "ride_id,distance_m,duration_secs\nr-1,5000\nr-2,3000,600,extra\n"

	rows, err := parseCSV(text)
	if err != nil {
		t.Fatalf("ragged rows should be tolerated: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if _, ok := rows[0]["duration_secs"]; ok {
		t.Error("short row should not carry the missing column")
	}
	if rows[1]["duration_secs"] != float64(600) {
		t.Errorf("expected duration 600, got %v", rows[1]["duration_secs"])
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	rows, err := parseCSV("ride_id,distance_m\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestLooksLikeMarkup(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"html doctype", "<!DOCTYPE html><html><body>Sorry</body></html>", true},
		{"bare html tag", "  <html lang=\"en\">", true},
		{"xml prolog", "<?xml version=\"1.0\"?>", true},
		{"csv", "ride_id,distance_m\nr-1,5000\n", false},
		{"csv with angle in cell", "note\n<broken sensor>\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeMarkup(tt.body); got != tt.want {
				t.Errorf("looksLikeMarkup() = %v, want %v", got, tt.want)
			}
		})
	}
}
