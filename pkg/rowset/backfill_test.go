package rowset

import (
	"bytes"
	"reflect"
	"testing"
)

func TestBackfillPrefersForward(t *testing.T) {
	rows := []Row{
		{Part: "Part I", Chapter: "Chapter 1", ArticleID: "1"},
		{Part: "", Chapter: "", ArticleID: "2"},
		{Part: "Part II", Chapter: "Chapter 3", ArticleID: "3"},
	}
	Backfill(rows, 4)

	if rows[1].Part != "Part II" || rows[1].Chapter != "Chapter 3" {
		t.Errorf("backfilled row = %q/%q, want following row's part and chapter", rows[1].Part, rows[1].Chapter)
	}
}

func TestBackfillFallsBackToPrevious(t *testing.T) {
	rows := []Row{
		{Part: "Part I", Chapter: "Chapter 1", ArticleID: "1"},
		{Part: "", ArticleID: "2"},
		{Part: "", ArticleID: "3"},
	}
	Backfill(rows, 4)

	if rows[1].Part != "Part I" || rows[2].Part != "Part I" {
		t.Errorf("backward fill failed: %q, %q", rows[1].Part, rows[2].Part)
	}
}

func TestBackfillRadius(t *testing.T) {
	rows := []Row{
		{Part: "", ArticleID: "1"},
		{Part: "", ArticleID: "2"},
		{Part: "", ArticleID: "3"},
		{Part: "", ArticleID: "4"},
		{Part: "", ArticleID: "5"},
		{Part: "Part IX", ArticleID: "6"},
	}
	Backfill(rows, 4)

	if rows[0].Part != "" {
		t.Errorf("row beyond radius was filled with %q", rows[0].Part)
	}
	if rows[1].Part != "Part IX" {
		t.Errorf("row within radius not filled, got %q", rows[1].Part)
	}
}

func TestBackfillSkipsPreambleAndDeleted(t *testing.T) {
	rows := []Row{
		{Part: "", ArticleID: PreambleID},
		{Part: "", ArticleID: "61 (deleted)"},
		{Part: "Part I", ArticleID: "62"},
	}
	Backfill(rows, 4)

	if rows[0].Part != "" {
		t.Errorf("preamble row was backfilled with %q", rows[0].Part)
	}
	if rows[1].Part != "" {
		t.Errorf("deleted row was backfilled with %q", rows[1].Part)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rows := []Row{
		{ArticleID: PreambleID, Text: "The Contracting States,"},
		{Part: "Part I", Chapter: "Chapter I", ArticleID: "1", ArticleTitle: "Scope", Paragraph: "1", Item: "a", Text: "body text"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, rows)
	}
}
