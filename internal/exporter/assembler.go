package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// Assembler 输出工作簿组装器
type Assembler struct{}

// NewAssembler 创建组装器
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble 生成两张表（Work Order Details、Summary Details）的 xlsx 字节；空表也保留表头
func (a *Assembler) Assemble(lines []model.LineItemRow, summary []model.SummaryRow) ([]byte, error) {
	f, err := a.Build(lines, summary)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Build 构建工作簿对象（调用方负责 Close）
func (a *Assembler) Build(lines []model.LineItemRow, summary []model.SummaryRow) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", model.SheetWorkOrderDetails); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(model.SheetSummaryDetails); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	lineRows := make([][]interface{}, 0, len(lines))
	for _, r := range lines {
		lineRows = append(lineRows, r.Values())
	}
	if err := writeTable(f, model.SheetWorkOrderDetails, model.LineItemHeaders, lineRows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	summaryRows := make([][]interface{}, 0, len(summary))
	for _, r := range summary {
		summaryRows = append(summaryRows, r.Values())
	}
	if err := writeTable(f, model.SheetSummaryDetails, model.SummaryHeaders, summaryRows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeTable(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 22)
}
