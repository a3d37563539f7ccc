package parser

import (
	"strings"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// 标签搜索窗口默认值
const (
	DefaultMetadataSearchRows = 50
	DefaultSheetSearchRows    = 20
)

// MatchMode 标签匹配方式
type MatchMode int

const (
	MatchExact     MatchMode = iota // 去空白、忽略大小写后完全相等
	MatchSubstring                  // 忽略大小写的子串包含
)

// LabelRule 声明式标签规则：按顺序尝试候选标签，直到取到非空值
type LabelRule struct {
	Name       string
	Candidates []string
	Mode       MatchMode
	Window     int
}

// LabeledValue 标签搜索结果
type LabeledValue struct {
	Label string
	Value string
}

// PORule 采购订单号
var PORule = LabelRule{
	Name:       "project_id",
	Candidates: []string{"PO", "PURCHASE ORDER", "P.O.", "PO #", "PO#"},
	Mode:       MatchExact,
	Window:     DefaultMetadataSearchRows,
}

// WorkPackageRule 工作包描述
var WorkPackageRule = LabelRule{
	Name:       "description",
	Candidates: []string{"WORK PACKAGE", "WORK_PACKAGE", "WORKPACKAGE", "WORK-PACKAGE", "PACKAGE"},
	Mode:       MatchExact,
	Window:     DefaultMetadataSearchRows,
}

// WithWindow 返回替换搜索窗口后的规则副本
func (r LabelRule) WithWindow(window int) LabelRule {
	if window > 0 {
		r.Window = window
	}
	return r
}

// FindLabeled 按规则依次尝试候选标签；全部为空时 Label 为空
func FindLabeled(g *Grid, rule LabelRule) LabeledValue {
	for _, label := range rule.Candidates {
		if v := scanForLabel(g, label, rule.Mode, rule.Window); v != "" {
			return LabeledValue{Label: label, Value: v}
		}
	}
	return LabeledValue{}
}

// FindValueNextToLabel 在前 maxRows 行内查找与 label 完全匹配的单元格，返回其右侧的值
func FindValueNextToLabel(g *Grid, label string, maxRows int) string {
	return scanForLabel(g, label, MatchExact, maxRows)
}

// scanForLabel 行优先扫描。命中单元格右侧在网格内时，右邻即为答案（即使为空）；
// 命中在最后一列时，向右寻找同一行第一个非空单元格，找不到则继续扫描后续命中。
func scanForLabel(g *Grid, label string, mode MatchMode, maxRows int) string {
	if g == nil {
		return ""
	}
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return ""
	}

	nrows := g.Rows()
	if maxRows < nrows {
		nrows = maxRows
	}
	width := g.Width()

	for r := 0; r < nrows; r++ {
		for c := 0; c < width; c++ {
			if !labelMatches(g.Cell(r, c), key, mode) {
				continue
			}
			if c+1 < width {
				return g.Cell(r, c+1).Trimmed()
			}
			if v, ok := firstNonEmptyRight(g, r, c+1); ok {
				return v
			}
		}
	}
	return ""
}

func labelMatches(cell model.Cell, key string, mode MatchMode) bool {
	text := strings.ToLower(cell.Trimmed())
	if mode == MatchSubstring {
		return strings.Contains(text, key)
	}
	return text == key
}

func firstNonEmptyRight(g *Grid, r, from int) (string, bool) {
	for cc := from; cc < g.Width(); cc++ {
		if v := g.Cell(r, cc).Trimmed(); v != "" {
			return v, true
		}
	}
	return "", false
}
