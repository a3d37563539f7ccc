package model

// 输出工作表名称
const (
	SheetWorkOrderDetails = "Work Order Details"
	SheetSummaryDetails   = "Summary Details"
)

// LineItemHeaders Work Order Details 表头（顺序即列顺序）
var LineItemHeaders = []string{
	"Project ID (Current Project/Job Number)",
	"Project Description",
	"Project Template",
	"Customer ID",
	"Branch ID",
	"Project Start Date",
	"Project End Date",
	"Project Task",
	"Inventory ID (ex. Unit Code)",
	"Quantity",
	"Unit Price",
	"Unit Cost",
	"Cost Code",
}

// SummaryHeaders Summary Details 表头
var SummaryHeaders = []string{
	"Project ID (Current Project/Job Number)",
	"Project Task (Work Order/Unit)",
	"Description (Pole Number, other Identifier)",
	"Type",
}

// ProjectInfo 从 Pricing Summary 中提取的工作簿级元数据
type ProjectInfo struct {
	ProjectID   string `json:"project_id"`
	Description string `json:"description"`
}

// SheetMeta 单个数据表表头区域的元数据
type SheetMeta struct {
	StartDate   string // 2006-Jan-02 或空
	Task        string
	Description string
}

// Passthrough 原样广播到每一行的字段
type Passthrough struct {
	ProjectID       string
	Description     string
	ProjectTemplate string
	CustomerID      string
	BranchID        string
}

// LineItemRow Work Order Details 的一行
type LineItemRow struct {
	ProjectID          string
	ProjectDescription string
	ProjectTemplate    string
	CustomerID         string
	BranchID           string
	ProjectStartDate   string
	ProjectEndDate     string
	ProjectTask        string
	InventoryID        string
	Quantity           *float64 // nil: 源表没有数量列
	UnitPrice          Cell
	UnitCost           Cell
	CostCode           string
}

// Values 按表头顺序输出单元格值
func (r LineItemRow) Values() []interface{} {
	var qty interface{}
	if r.Quantity != nil {
		qty = *r.Quantity
	}
	return []interface{}{
		r.ProjectID,
		r.ProjectDescription,
		r.ProjectTemplate,
		r.CustomerID,
		r.BranchID,
		r.ProjectStartDate,
		r.ProjectEndDate,
		r.ProjectTask,
		r.InventoryID,
		qty,
		r.UnitPrice.Value(),
		r.UnitCost.Value(),
		r.CostCode,
	}
}

// SummaryRow Summary Details 的一行
type SummaryRow struct {
	ProjectID   string
	WorkOrder   Cell
	Description Cell
	Type        string
}

// Values 按表头顺序输出单元格值
func (r SummaryRow) Values() []interface{} {
	return []interface{}{
		r.ProjectID,
		r.WorkOrder.Value(),
		r.Description.Value(),
		r.Type,
	}
}
