package parser

import (
	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

var quantityColumnNames = []string{"quantity", "qty", "quan", "quantity "}

// LineItemParams 行项目归一化所需的广播字段
type LineItemParams struct {
	Passthrough model.Passthrough
	Meta        model.SheetMeta
}

// lineItemColumns 解析出的逻辑列；-1 表示缺失
type lineItemColumns struct {
	quantity   int
	unitCode   int
	totalPrice int
	price      int
}

func resolveLineItemColumns(t *Table) lineItemColumns {
	return lineItemColumns{
		quantity: t.ColumnIndex(func(name string) bool {
			return EqualsAny(name, quantityColumnNames...)
		}),
		unitCode: t.ColumnIndex(func(name string) bool {
			return ContainsAnyKeyword(name, UnitCodeMarker)
		}),
		totalPrice: t.ColumnIndex(func(name string) bool {
			return ContainsAnyKeyword(name, "total price")
		}),
		price: t.ColumnIndex(func(name string) bool {
			return name == "price"
		}),
	}
}

// NormalizeLineItems 定位 "unit code" 表头并输出规范行；无法解释时返回跳过原因
func NormalizeLineItems(g *Grid, params LineItemParams) ([]model.LineItemRow, *model.SkipReason) {
	headerRow, ok := LocateTableHeader(g, UnitCodeMarker)
	if !ok {
		return nil, model.Skip(model.SkipHeaderNotFound, "no %q header row", UnitCodeMarker)
	}

	table := g.TableAt(headerRow)
	cols := resolveLineItemColumns(table)
	if cols.unitCode < 0 {
		return nil, model.Skip(model.SkipUnitCodeMissing, "header row %d has no unit code column", headerRow+1)
	}

	rows := make([]model.LineItemRow, 0, len(table.Rows))
	for _, r := range table.Rows {
		unitCode := r[cols.unitCode]
		if unitCode.IsEmpty() {
			continue
		}

		var qty *float64
		if cols.quantity >= 0 {
			v, ok := r[cols.quantity].Float()
			if !ok || !(v > 0) {
				continue
			}
			qty = &v
		}

		rows = append(rows, model.LineItemRow{
			ProjectID:          params.Passthrough.ProjectID,
			ProjectDescription: params.Passthrough.Description,
			ProjectTemplate:    params.Passthrough.ProjectTemplate,
			CustomerID:         params.Passthrough.CustomerID,
			BranchID:           params.Passthrough.BranchID,
			ProjectStartDate:   params.Meta.StartDate,
			ProjectTask:        params.Meta.Task,
			InventoryID:        unitCode.String(),
			Quantity:           qty,
			UnitPrice:          FormatCurrency(cellAt(r, cols.totalPrice)),
			UnitCost:           FormatCurrency(cellAt(r, cols.price)),
		})
	}
	return rows, nil
}

func cellAt(row []model.Cell, idx int) model.Cell {
	if idx < 0 || idx >= len(row) {
		return model.Cell{}
	}
	return row[idx]
}
