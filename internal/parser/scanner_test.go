package parser

import (
	"testing"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

func TestFindValueNextToLabel_RightNeighbour(t *testing.T) {
	t.Parallel()

	g := GridFromStrings("Pricing Summary", [][]string{
		{"Customer", "ACME"},
		{"  po ", "  PO-998  ", "ignored"},
	})
	if got := FindValueNextToLabel(g, "PO", 50); got != "PO-998" {
		t.Fatalf("want PO-998, got %q", got)
	}
}

// 右邻在网格内但为空：直接返回空，不再向右或向下寻找
func TestFindValueNextToLabel_EmptyRightNeighbourIsAuthoritative(t *testing.T) {
	t.Parallel()

	g := GridFromStrings("Pricing Summary", [][]string{
		{"PO", "", "PO-1"},
		{"PO", "PO-2", ""},
	})
	if got := FindValueNextToLabel(g, "PO", 50); got != "" {
		t.Fatalf("want empty, got %q", got)
	}
}

// 命中最后一列：右侧没有单元格，继续扫描后续命中
func TestFindValueNextToLabel_LastColumnContinuesScanning(t *testing.T) {
	t.Parallel()

	g := GridFromStrings("Pricing Summary", [][]string{
		{"", "", "PO"},
		{"PO", "PO-7", ""},
	})
	if got := FindValueNextToLabel(g, "PO", 50); got != "PO-7" {
		t.Fatalf("want PO-7, got %q", got)
	}

	only := GridFromStrings("Pricing Summary", [][]string{{"x", "PO"}})
	if got := FindValueNextToLabel(only, "PO", 50); got != "" {
		t.Fatalf("want empty, got %q", got)
	}
}

func TestFindValueNextToLabel_Window(t *testing.T) {
	t.Parallel()

	g := GridFromStrings("Pricing Summary", [][]string{
		{"a"},
		{"b"},
		{"PO", "PO-3"},
	})
	if got := FindValueNextToLabel(g, "PO", 2); got != "" {
		t.Fatalf("label outside window should not match, got %q", got)
	}
	if got := FindValueNextToLabel(g, "PO", 3); got != "PO-3" {
		t.Fatalf("want PO-3, got %q", got)
	}
}

func TestFindValueNextToLabel_ExactMatchOnly(t *testing.T) {
	t.Parallel()

	g := GridFromStrings("Pricing Summary", [][]string{
		{"PO Box", "123"},
		{"Pole", "P-1"},
	})
	if got := FindValueNextToLabel(g, "PO", 50); got != "" {
		t.Fatalf("substring must not match in exact mode, got %q", got)
	}
}

func TestFindValueNextToLabel_NumericValue(t *testing.T) {
	t.Parallel()

	g := NewGrid("Pricing Summary", [][]model.Cell{
		cells("PO #", 4500123),
	})
	if got := FindValueNextToLabel(g, "po #", 50); got != "4500123" {
		t.Fatalf("want 4500123, got %q", got)
	}
}

func TestFindLabeled_FallbackOrder(t *testing.T) {
	t.Parallel()

	g := GridFromStrings("Pricing Summary", [][]string{
		{"PO", ""},
		{"Purchase Order", "PO-55"},
		{"P.O.", "PO-66"},
	})
	got := FindLabeled(g, PORule)
	if got.Value != "PO-55" || got.Label != "PURCHASE ORDER" {
		t.Fatalf("unexpected result: %+v", got)
	}

	none := FindLabeled(GridFromStrings("x", [][]string{{"nothing"}}), WorkPackageRule)
	if none.Value != "" || none.Label != "" {
		t.Fatalf("want empty result, got %+v", none)
	}
}

func TestFindLabeled_SubstringMode(t *testing.T) {
	t.Parallel()

	rule := LabelRule{Name: "pkg", Candidates: []string{"package"}, Mode: MatchSubstring, Window: 10}
	g := GridFromStrings("Pricing Summary", [][]string{
		{"Work Package Name:", "Feeder 12"},
	})
	if got := FindLabeled(g, rule); got.Value != "Feeder 12" {
		t.Fatalf("want Feeder 12, got %+v", got)
	}
}

func TestLabelRuleWithWindow(t *testing.T) {
	t.Parallel()

	if r := PORule.WithWindow(5); r.Window != 5 || PORule.Window != DefaultMetadataSearchRows {
		t.Fatalf("WithWindow must copy: got %d, original %d", r.Window, PORule.Window)
	}
	if r := PORule.WithWindow(0); r.Window != DefaultMetadataSearchRows {
		t.Fatalf("non-positive window must keep default, got %d", r.Window)
	}
}
