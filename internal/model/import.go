package model

import "time"

// SkippedSheet 被跳过的 sheet（原始名称 + 原因）
type SkippedSheet struct {
	Name   string     `json:"name"`
	Reason SkipReason `json:"reason"`
}

// ExtractionResult 一次转换的产物
type ExtractionResult struct {
	Output      []byte         `json:"-"`
	Lines       []LineItemRow  `json:"-"`
	Filename    string         `json:"filename"`
	ProjectInfo ProjectInfo    `json:"projectInfo"`
	LineItems   int            `json:"lineItems"`
	SummaryRows int            `json:"summaryRows"`
	Skipped     []SkippedSheet `json:"skipped"`
	TotalSheets int            `json:"totalSheets"`
	Duration    time.Duration  `json:"duration"`
}

// SkippedNames 按检测顺序返回被跳过的 sheet 名称
func (r *ExtractionResult) SkippedNames() []string {
	names := make([]string, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		names = append(names, s.Name)
	}
	return names
}

// RunRecord 一次转换的审计记录
type RunRecord struct {
	ID          string
	Username    string
	Filename    string
	FileSize    int64
	FileHash    string
	ProjectID   string
	LineItems   int
	SummaryRows int
	Status      string // completed / failed
	Error       string
	Skipped     []SkippedSheet
	CreatedAt   time.Time
}
