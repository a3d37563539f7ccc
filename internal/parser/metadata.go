package parser

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// StartDateLayout 项目开始日期输出格式（YYYY-Mon-DD）
const StartDateLayout = "2006-Jan-02"

// MetadataOptions 元数据搜索窗口
type MetadataOptions struct {
	MetadataSearchRows int // Pricing Summary 标签搜索行数
	SheetSearchRows    int // 数据表表头区域搜索行数
}

func (o MetadataOptions) withDefaults() MetadataOptions {
	if o.MetadataSearchRows <= 0 {
		o.MetadataSearchRows = DefaultMetadataSearchRows
	}
	if o.SheetSearchRows <= 0 {
		o.SheetSearchRows = DefaultSheetSearchRows
	}
	return o
}

// PricingSummarySheet 返回第一个名称包含 "pricing summary" 的 sheet
func (w *Workbook) PricingSummarySheet() (SheetGrid, bool) {
	for _, s := range w.Sheets {
		if IsPricingSummary(s.Name) {
			return s, true
		}
	}
	return SheetGrid{}, false
}

// ExtractProjectInfo 从 Pricing Summary 提取 PO 号与工作包描述；没有该 sheet 时均为空
func ExtractProjectInfo(wb *Workbook, opts MetadataOptions) model.ProjectInfo {
	opts = opts.withDefaults()
	if wb == nil {
		return model.ProjectInfo{}
	}
	sheet, ok := wb.PricingSummarySheet()
	if !ok || sheet.Err != nil {
		return model.ProjectInfo{}
	}

	return model.ProjectInfo{
		ProjectID:   FindLabeled(sheet.Grid, PORule.WithWindow(opts.MetadataSearchRows)).Value,
		Description: FindLabeled(sheet.Grid, WorkPackageRule.WithWindow(opts.MetadataSearchRows)).Value,
	}
}

// ExtractSheetMeta 扫描数据表前 window 行：开始日期、工单号与描述
func ExtractSheetMeta(g *Grid, window int) model.SheetMeta {
	if window <= 0 {
		window = DefaultSheetSearchRows
	}
	return model.SheetMeta{
		StartDate:   findSheetDate(g, window),
		Task:        findFollowing(g, window, "work order"),
		Description: findFollowing(g, window, "description"),
	}
}

// findSheetDate 第一个包含 "date" 的单元格，其右邻能解析为日期即返回
func findSheetDate(g *Grid, window int) string {
	nrows := min(window, g.Rows())
	for r := 0; r < nrows; r++ {
		row := g.Row(r)
		for c := range row {
			if !strings.Contains(row[c].Lower(), "date") || c+1 >= len(row) {
				continue
			}
			if t, ok := ParseDateCell(row[c+1]); ok {
				return t.Format(StartDateLayout)
			}
		}
	}
	return ""
}

// findFollowing 每行取非空文本列表，含 keyword 的条目之后那一项即为取值；后出现的覆盖先出现的
func findFollowing(g *Grid, window int, keyword string) string {
	value := ""
	nrows := min(window, g.Rows())
	for r := 0; r < nrows; r++ {
		vals := nonEmptyTexts(g, r)
		for idx, v := range vals {
			if strings.Contains(strings.ToLower(v), keyword) && idx+1 < len(vals) {
				value = vals[idx+1]
			}
		}
	}
	return value
}

func nonEmptyTexts(g *Grid, r int) []string {
	var out []string
	for c := 0; c < g.Width(); c++ {
		if v := g.Cell(r, c).Trimmed(); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ParseDateCell 日期单元格直接返回；文本按宽松格式解析；纯数字不视为日期
func ParseDateCell(c model.Cell) (time.Time, bool) {
	switch c.Kind {
	case model.CellDate:
		return c.Time, true
	case model.CellText:
		s := strings.TrimSpace(c.Text)
		if s == "" {
			return time.Time{}, false
		}
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}
