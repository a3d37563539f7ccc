package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

type testSheet struct {
	name string
	rows [][]interface{}
}

// buildWorkbook 在内存中构造 xlsx（time.Time 值会带日期格式写入）
func buildWorkbook(t *testing.T, sheets ...testSheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			t.Fatalf("new sheet %s: %v", s.name, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				t.Fatalf("write %s row %d: %v", s.name, r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func cells(vals ...interface{}) []model.Cell {
	out := make([]model.Cell, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case nil:
		case model.Cell:
			out[i] = x
		case string:
			out[i] = model.TextCell(x)
		case int:
			out[i] = model.NumberCell(float64(x))
		case float64:
			out[i] = model.NumberCell(x)
		default:
			panic("unsupported test cell value")
		}
	}
	return out
}
