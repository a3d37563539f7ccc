package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// Grid 一个工作表的二维单元格网格（宽度取最宽行，只读）
type Grid struct {
	Name  string
	rows  [][]model.Cell
	width int
}

// NewGrid 由单元格行构建网格（测试与内部使用）
func NewGrid(name string, rows [][]model.Cell) *Grid {
	g := &Grid{Name: name, rows: rows}
	for _, r := range rows {
		if len(r) > g.width {
			g.width = len(r)
		}
	}
	return g
}

// GridFromStrings 由字符串行构建网格，空串视为空单元格
func GridFromStrings(name string, rows [][]string) *Grid {
	cells := make([][]model.Cell, len(rows))
	for i, r := range rows {
		cells[i] = make([]model.Cell, len(r))
		for j, v := range r {
			cells[i][j] = model.TextCell(v)
		}
	}
	return NewGrid(name, cells)
}

// Rows 行数
func (g *Grid) Rows() int {
	return len(g.rows)
}

// Width 列数
func (g *Grid) Width() int {
	return g.width
}

// Cell 读取单元格，越界返回空单元格
func (g *Grid) Cell(r, c int) model.Cell {
	if r < 0 || r >= len(g.rows) || c < 0 || c >= len(g.rows[r]) {
		return model.Cell{}
	}
	return g.rows[r][c]
}

// Row 返回补齐到网格宽度的一行
func (g *Grid) Row(r int) []model.Cell {
	out := make([]model.Cell, g.width)
	if r >= 0 && r < len(g.rows) {
		copy(out, g.rows[r])
	}
	return out
}

// SheetGrid 工作簿中的一个 sheet；Err 非空表示读取失败
type SheetGrid struct {
	Name string
	Grid *Grid
	Err  error
}

// Workbook 按原始顺序排列的工作表集合
type Workbook struct {
	Sheets []SheetGrid
}

// SheetNames 工作表名称（原始顺序）
func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}

// IsPricingSummary 判断 sheet 名称是否为 Pricing Summary
func IsPricingSummary(sheetName string) bool {
	return strings.Contains(strings.ToLower(sheetName), "pricing summary")
}

// LoadWorkbook 从上传的字节读取工作簿；只有整体无法打开时返回错误
func LoadWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, model.NewExtractionError("open", err)
	}
	defer f.Close()

	wb := &Workbook{}
	reader := newCellReader(f)
	for _, name := range f.GetSheetList() {
		grid, err := reader.readGrid(name)
		wb.Sheets = append(wb.Sheets, SheetGrid{Name: name, Grid: grid, Err: err})
	}
	return wb, nil
}

type cellReader struct {
	file      *excelize.File
	dateStyle map[int]bool
}

func newCellReader(f *excelize.File) *cellReader {
	return &cellReader{file: f, dateStyle: make(map[int]bool)}
}

func (r *cellReader) readGrid(sheet string) (*Grid, error) {
	raw, err := r.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	rows := make([][]model.Cell, len(raw))
	for ri, rawRow := range raw {
		cells := make([]model.Cell, len(rawRow))
		for ci, v := range rawRow {
			if v == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				cells[ci] = model.TextCell(v)
				continue
			}
			cells[ci] = r.typedCell(sheet, axis, v)
		}
		rows[ri] = cells
	}
	return NewGrid(sheet, rows), nil
}

// typedCell 根据单元格类型与数字格式还原数值/日期/文本
func (r *cellReader) typedCell(sheet, axis, raw string) model.Cell {
	typ, err := r.file.GetCellType(sheet, axis)
	if err != nil {
		return model.TextCell(raw)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return model.TextCell(raw)
	case excelize.CellTypeError:
		// #N/A、#REF! 等错误值视为空
		return model.Cell{}
	case excelize.CellTypeBool:
		return model.BoolCell(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return model.DateCell(t)
		}
		return model.TextCell(raw)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return model.TextCell(raw)
	}
	if r.isDateFormatted(sheet, axis) {
		if t, err := excelize.ExcelDateToTime(v, false); err == nil {
			return model.DateCell(t)
		}
	}
	return model.NumberCell(v)
}

func (r *cellReader) isDateFormatted(sheet, axis string) bool {
	styleID, err := r.file.GetCellStyle(sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}
	if v, ok := r.dateStyle[styleID]; ok {
		return v
	}

	isDate := false
	if style, err := r.file.GetStyle(styleID); err == nil && style != nil {
		custom := ""
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		isDate = IsDateNumFmt(style.NumFmt, custom)
	}
	r.dateStyle[styleID] = isDate
	return isDate
}

// IsDateNumFmt 判断数字格式是否为日期/时间格式（内置 ID 或自定义格式串）
func IsDateNumFmt(id int, custom string) bool {
	if custom == "" {
		switch {
		case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
			return true
		}
		return false
	}

	// 去掉引号内的字面量、转义字符与 [颜色]/[$-409] 等区段后再看是否含日期占位符
	var b strings.Builder
	inQuote := false
	inBracket := false
	for i := 0; i < len(custom); i++ {
		ch := custom[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '\\':
			i++
		case ch == '[':
			inBracket = true
		case ch == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteByte(ch)
		}
	}
	cleaned := strings.ToLower(b.String())
	if section, _, found := strings.Cut(cleaned, ";"); found {
		cleaned = section
	}
	return strings.ContainsAny(cleaned, "ymdhs")
}

func parseISODate(raw string) (time.Time, bool) {
	layouts := []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
