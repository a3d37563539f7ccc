package parser

import (
	"testing"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

func TestBuildSummaryRows_PrefersPoleHeader(t *testing.T) {
	t.Parallel()

	g := GridFromStrings("Pricing Summary", [][]string{
		{"PO", "PO-998"},
		{"Work Order", "Description"},
		{"old", "row"},
		{"Work Order #", "Pole Number", "Amount"},
		{"WO-1", "P-1", "10"},
		{"", "", ""},
		{"WO-2", "", "20"},
		{"", "", "30"},
	})

	rows, skip := BuildSummaryRows(g, "PO-998", "Cost Task")
	if skip != nil {
		t.Fatalf("unexpected skip: %v", skip)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].WorkOrder.String() != "WO-1" || rows[0].Description.String() != "P-1" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].WorkOrder.String() != "WO-2" || !rows[1].Description.IsEmpty() {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	for _, r := range rows {
		if r.ProjectID != "PO-998" || r.Type != "Cost Task" {
			t.Fatalf("project id / type not broadcast: %+v", r)
		}
	}
}

func TestBuildSummaryRows_DescriptionFallback(t *testing.T) {
	t.Parallel()

	g := NewGrid("Pricing Summary", [][]model.Cell{
		cells("Work Order", "Description"),
		cells(1001, "Span replacement"),
	})
	rows, skip := BuildSummaryRows(g, "", "")
	if skip != nil {
		t.Fatalf("unexpected skip: %v", skip)
	}
	if len(rows) != 1 || rows[0].WorkOrder.String() != "1001" || rows[0].Description.String() != "Span replacement" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if _, ok := rows[0].WorkOrder.Value().(float64); !ok {
		t.Fatalf("numeric work order should keep its numeric value, got %T", rows[0].WorkOrder.Value())
	}
}

func TestBuildSummaryRows_HeaderNotFound(t *testing.T) {
	t.Parallel()

	g := GridFromStrings("Pricing Summary", [][]string{
		{"PO", "PO-1"},
		{"Work Order", "Amount"},
	})
	if _, skip := BuildSummaryRows(g, "", ""); skip == nil || skip.Code != model.SkipSummaryHeaderNotFound {
		t.Fatalf("want summary_header_not_found, got %v", skip)
	}
}
