package parser

import (
	"fmt"
	"strings"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// 表头标记
const (
	UnitCodeMarker = "unit code"
)

// LocateTableHeader 扫描所有行，返回第一个有单元格（小写）包含 marker 的行号
func LocateTableHeader(g *Grid, marker string) (int, bool) {
	marker = strings.ToLower(marker)
	return LocateHeaderRow(g, func(texts []string) bool {
		return ContainsAny(texts, marker)
	})
}

// LocateHeaderRow 按谓词查找表头行；谓词收到该行非空单元格的小写去空白文本
func LocateHeaderRow(g *Grid, match func(texts []string) bool) (int, bool) {
	if g == nil {
		return 0, false
	}
	for r := 0; r < g.Rows(); r++ {
		if match(rowTexts(g, r)) {
			return r, true
		}
	}
	return 0, false
}

func rowTexts(g *Grid, r int) []string {
	texts := make([]string, 0, g.Width())
	for c := 0; c < g.Width(); c++ {
		cell := g.Cell(r, c)
		if cell.IsEmpty() {
			continue
		}
		texts = append(texts, strings.ToLower(cell.Trimmed()))
	}
	return texts
}

// Table 以表头行为列名重新读取的结构化表
type Table struct {
	Columns []string
	Rows    [][]model.Cell
}

// TableAt 以 headerRow 为列名构建表：空列名记为 "Unnamed: i"，重复列名追加 ".n"，
// 完全空白的数据行被丢弃
func (g *Grid) TableAt(headerRow int) *Table {
	t := &Table{}
	if headerRow < 0 || headerRow >= g.Rows() {
		return t
	}

	seen := make(map[string]int)
	for c, cell := range g.Row(headerRow) {
		name := cell.Trimmed()
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", c)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		t.Columns = append(t.Columns, name)
	}

	for r := headerRow + 1; r < g.Rows(); r++ {
		row := g.Row(r)
		if isBlankRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ColumnIndex 返回第一个满足谓词的列（谓词收到去空白的小写列名），找不到为 -1
func (t *Table) ColumnIndex(match func(name string) bool) int {
	for i, name := range t.Columns {
		if match(strings.ToLower(strings.TrimSpace(name))) {
			return i
		}
	}
	return -1
}

func isBlankRow(row []model.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
