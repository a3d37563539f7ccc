package parser

import (
	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// locateSummaryHeader 优先同时含 "work order" 与 "pole" 的行，其次含 "work order" 且含 "description" 或 "pole"
func locateSummaryHeader(g *Grid) (int, bool) {
	if r, ok := LocateHeaderRow(g, func(texts []string) bool {
		return ContainsAny(texts, "work order") && ContainsAny(texts, "pole")
	}); ok {
		return r, true
	}
	return LocateHeaderRow(g, func(texts []string) bool {
		return ContainsAny(texts, "work order") &&
			(ContainsAny(texts, "description") || ContainsAny(texts, "pole"))
	})
}

// BuildSummaryRows 从 Pricing Summary 表提取工单号与杆号/描述的索引
func BuildSummaryRows(g *Grid, projectID, typeValue string) ([]model.SummaryRow, *model.SkipReason) {
	headerRow, ok := locateSummaryHeader(g)
	if !ok {
		return nil, model.Skip(model.SkipSummaryHeaderNotFound, "no work order / pole header row")
	}

	table := g.TableAt(headerRow)
	woCol := table.ColumnIndex(func(name string) bool {
		return ContainsAnyKeyword(name, "work order")
	})
	descCol := table.ColumnIndex(func(name string) bool {
		return ContainsAnyKeyword(name, "pole", "description")
	})
	if woCol < 0 || descCol < 0 {
		return nil, model.Skip(model.SkipSummaryColumnsMissing, "work order column=%d, description column=%d", woCol, descCol)
	}

	rows := make([]model.SummaryRow, 0, len(table.Rows))
	for _, r := range table.Rows {
		wo, desc := cellAt(r, woCol), cellAt(r, descCol)
		if wo.IsEmpty() && desc.IsEmpty() {
			continue
		}
		rows = append(rows, model.SummaryRow{
			ProjectID:   projectID,
			WorkOrder:   wo,
			Description: desc,
			Type:        typeValue,
		})
	}
	return rows, nil
}
