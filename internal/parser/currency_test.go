package parser

import (
	"testing"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   model.Cell
		want string
	}{
		{model.NumberCell(1234.5), "$1,234.50"},
		{model.NumberCell(0), "$0.00"},
		{model.NumberCell(1000000), "$1,000,000.00"},
		{model.NumberCell(12.3456), "$12.35"},
		{model.TextCell("1234.5"), "$1,234.50"},
		{model.TextCell("N/A"), "N/A"},
		{model.TextCell("1,234.50"), "1,234.50"},
		{model.TextCell("$10"), "$10"},
		{model.TextCell("1.2.3"), "1.2.3"},
		{model.NumberCell(-5), "-5"},
		{model.Cell{}, ""},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in).String(); got != tc.want {
			t.Fatalf("FormatCurrency(%q) = %q, want %q", tc.in.String(), got, tc.want)
		}
	}
}

func TestFormatCurrency_NonNumericKeepsKind(t *testing.T) {
	t.Parallel()

	in := model.BoolCell(true)
	if out := FormatCurrency(in); out != in {
		t.Fatalf("bool cell should pass through, got %+v", out)
	}
}
