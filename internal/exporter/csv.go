package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jszwec/csvutil"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// lineItemRecord Work Order Details 的 CSV 行，列名与 xlsx 表头一致
type lineItemRecord struct {
	ProjectID          string `csv:"Project ID (Current Project/Job Number)"`
	ProjectDescription string `csv:"Project Description"`
	ProjectTemplate    string `csv:"Project Template"`
	CustomerID         string `csv:"Customer ID"`
	BranchID           string `csv:"Branch ID"`
	ProjectStartDate   string `csv:"Project Start Date"`
	ProjectEndDate     string `csv:"Project End Date"`
	ProjectTask        string `csv:"Project Task"`
	InventoryID        string `csv:"Inventory ID (ex. Unit Code)"`
	Quantity           string `csv:"Quantity"`
	UnitPrice          string `csv:"Unit Price"`
	UnitCost           string `csv:"Unit Cost"`
	CostCode           string `csv:"Cost Code"`
}

func toLineItemRecord(r model.LineItemRow) lineItemRecord {
	rec := lineItemRecord{
		ProjectID:          r.ProjectID,
		ProjectDescription: r.ProjectDescription,
		ProjectTemplate:    r.ProjectTemplate,
		CustomerID:         r.CustomerID,
		BranchID:           r.BranchID,
		ProjectStartDate:   r.ProjectStartDate,
		ProjectEndDate:     r.ProjectEndDate,
		ProjectTask:        r.ProjectTask,
		InventoryID:        r.InventoryID,
		UnitPrice:          r.UnitPrice.String(),
		UnitCost:           r.UnitCost.String(),
		CostCode:           r.CostCode,
	}
	if r.Quantity != nil {
		rec.Quantity = strconv.FormatFloat(*r.Quantity, 'f', -1, 64)
	}
	return rec
}

// WriteLineItemsCSV 以 CSV 输出明细行（表头始终写出）
func WriteLineItemsCSV(w io.Writer, lines []model.LineItemRow) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if len(lines) == 0 {
		if err := enc.EncodeHeader(lineItemRecord{}); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
	}
	for _, r := range lines {
		if err := enc.Encode(toLineItemRecord(r)); err != nil {
			return fmt.Errorf("failed to encode line item: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
