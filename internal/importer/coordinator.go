package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/exporter"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/parser"
)

// RunRecorder 记录每次转换（可选）
type RunRecorder interface {
	RecordRun(ctx context.Context, run model.RunRecord) error
}

// Coordinator 转换协调器：逐个 sheet 提取、归一化并组装输出
type Coordinator struct {
	logger    *slog.Logger
	assembler *exporter.Assembler
	recorder  RunRecorder
	meta      parser.MetadataOptions
}

// Option 协调器选项
type Option func(*Coordinator)

// WithRecorder 设置审计记录器
func WithRecorder(r RunRecorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

// WithSearchRows 设置标签搜索窗口
func WithSearchRows(metadataRows, sheetRows int) Option {
	return func(c *Coordinator) {
		c.meta = parser.MetadataOptions{
			MetadataSearchRows: metadataRows,
			SheetSearchRows:    sheetRows,
		}
	}
}

// NewCoordinator 创建转换协调器
func NewCoordinator(logger *slog.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		logger:    logger,
		assembler: exporter.NewAssembler(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TransformOptions 转换选项
type TransformOptions struct {
	Filename    string
	Data        []byte
	Passthrough model.Passthrough
	TypeValue   string
	Username    string
	AutoFill    bool // 项目号/描述为空时从 Pricing Summary 补全
	Progress    func(ProgressEvent)
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type    string `json:"type"` // start/sheet_done/sheet_skipped/done
	Sheet   string `json:"sheet,omitempty"`
	Message string `json:"message"`
	Rows    int    `json:"rows,omitempty"`
}

// transformContext 单次转换的累积状态
type transformContext struct {
	opts    TransformOptions
	result  *model.ExtractionResult
	lines   []model.LineItemRow
	summary []model.SummaryRow
	skipped map[string]bool
}

// ExtractInfo 只提取 Pricing Summary 中的项目号与描述
func (c *Coordinator) ExtractInfo(data []byte) (model.ProjectInfo, error) {
	wb, err := parser.LoadWorkbook(data)
	if err != nil {
		return model.ProjectInfo{}, err
	}
	return parser.ExtractProjectInfo(wb, c.meta), nil
}

// Transform 执行完整转换；单个 sheet 失败只记录跳过，工作簿无法打开时返回错误
func (c *Coordinator) Transform(ctx context.Context, opts TransformOptions) (*model.ExtractionResult, error) {
	startTime := time.Now()

	wb, err := parser.LoadWorkbook(opts.Data)
	if err != nil {
		c.logger.Error("failed to open workbook", "file", opts.Filename, "error", err)
		c.record(ctx, opts, nil, err)
		return nil, err
	}

	c.logger.Debug("workbook loaded", "file", opts.Filename, "sheets", wb.SheetNames())

	info := parser.ExtractProjectInfo(wb, c.meta)
	if opts.AutoFill {
		if opts.Passthrough.ProjectID == "" {
			opts.Passthrough.ProjectID = info.ProjectID
		}
		if opts.Passthrough.Description == "" {
			opts.Passthrough.Description = info.Description
		}
	}

	result := &model.ExtractionResult{
		ProjectInfo: info,
		TotalSheets: len(wb.Sheets),
		Skipped:     []model.SkippedSheet{},
	}
	tc := &transformContext{
		opts:    opts,
		result:  result,
		skipped: make(map[string]bool),
	}

	c.sendProgress(opts, ProgressEvent{
		Type:    "start",
		Message: fmt.Sprintf("found %d sheets", len(wb.Sheets)),
	})

	for _, sheet := range wb.Sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if parser.IsPricingSummary(sheet.Name) {
			continue
		}
		c.processDataSheet(tc, sheet)
	}

	for _, sheet := range wb.Sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !parser.IsPricingSummary(sheet.Name) {
			continue
		}
		c.processSummarySheet(tc, sheet)
	}

	output, err := c.assembler.Assemble(tc.lines, tc.summary)
	if err != nil {
		err = model.NewExtractionError("assemble", err)
		c.logger.Error("failed to assemble output", "file", opts.Filename, "error", err)
		c.record(ctx, opts, tc.result, err)
		return nil, err
	}

	tc.result.Output = output
	tc.result.Lines = tc.lines
	tc.result.Filename = exporter.CleanedFilename(opts.Filename)
	tc.result.LineItems = len(tc.lines)
	tc.result.SummaryRows = len(tc.summary)
	tc.result.Duration = time.Since(startTime)

	c.logger.Info("transform completed",
		"file", opts.Filename,
		"output", tc.result.Filename,
		"line_items", tc.result.LineItems,
		"summary_rows", tc.result.SummaryRows,
		"skipped", len(tc.result.Skipped),
		"duration", tc.result.Duration,
	)
	c.sendProgress(opts, ProgressEvent{
		Type:    "done",
		Message: "transform completed",
		Rows:    tc.result.LineItems,
	})

	c.record(ctx, opts, tc.result, nil)
	return tc.result, nil
}

// processDataSheet 处理一个数据表：表头区域元数据 + 行项目
func (c *Coordinator) processDataSheet(tc *transformContext, sheet parser.SheetGrid) {
	if sheet.Err != nil {
		c.skipSheet(tc, sheet.Name, model.Skip(model.SkipSheetReadFailed, "%v", sheet.Err))
		return
	}

	meta := parser.ExtractSheetMeta(sheet.Grid, c.meta.SheetSearchRows)
	c.logger.Debug("sheet metadata",
		"sheet", sheet.Name,
		"start_date", meta.StartDate,
		"task", meta.Task,
		"description", meta.Description,
	)

	rows, skip := parser.NormalizeLineItems(sheet.Grid, parser.LineItemParams{
		Passthrough: tc.opts.Passthrough,
		Meta:        meta,
	})
	if skip != nil {
		c.skipSheet(tc, sheet.Name, skip)
		return
	}

	tc.lines = append(tc.lines, rows...)
	c.sendProgress(tc.opts, ProgressEvent{
		Type:    "sheet_done",
		Sheet:   sheet.Name,
		Message: fmt.Sprintf("sheet %q: %d line items", sheet.Name, len(rows)),
		Rows:    len(rows),
	})
}

// processSummarySheet 处理一个 Pricing Summary 表
func (c *Coordinator) processSummarySheet(tc *transformContext, sheet parser.SheetGrid) {
	if sheet.Err != nil {
		c.skipSheet(tc, sheet.Name, model.Skip(model.SkipSheetReadFailed, "%v", sheet.Err))
		return
	}

	rows, skip := parser.BuildSummaryRows(sheet.Grid, tc.opts.Passthrough.ProjectID, tc.opts.TypeValue)
	if skip != nil {
		c.skipSheet(tc, sheet.Name, skip)
		return
	}

	tc.summary = append(tc.summary, rows...)
	c.sendProgress(tc.opts, ProgressEvent{
		Type:    "sheet_done",
		Sheet:   sheet.Name,
		Message: fmt.Sprintf("summary sheet %q: %d rows", sheet.Name, len(rows)),
		Rows:    len(rows),
	})
}

// skipSheet 记录跳过的 sheet（同名只记录一次）
func (c *Coordinator) skipSheet(tc *transformContext, name string, reason *model.SkipReason) {
	c.logger.Warn("sheet skipped", "sheet", name, "reason", reason.Code, "detail", reason.Detail)
	if tc.skipped[name] {
		return
	}
	tc.skipped[name] = true
	tc.result.Skipped = append(tc.result.Skipped, model.SkippedSheet{Name: name, Reason: *reason})
	c.sendProgress(tc.opts, ProgressEvent{
		Type:    "sheet_skipped",
		Sheet:   name,
		Message: reason.Error(),
	})
}

func (c *Coordinator) sendProgress(opts TransformOptions, event ProgressEvent) {
	if opts.Progress == nil {
		return
	}
	opts.Progress(event)
}

// record 写入审计记录；记录失败只打日志
func (c *Coordinator) record(ctx context.Context, opts TransformOptions, result *model.ExtractionResult, runErr error) {
	if c.recorder == nil {
		return
	}

	sum := sha256.Sum256(opts.Data)
	run := model.RunRecord{
		ID:        uuid.New().String(),
		Username:  opts.Username,
		Filename:  opts.Filename,
		FileSize:  int64(len(opts.Data)),
		FileHash:  hex.EncodeToString(sum[:]),
		ProjectID: opts.Passthrough.ProjectID,
		Status:    "completed",
		CreatedAt: time.Now(),
	}
	if result != nil {
		run.LineItems = result.LineItems
		run.SummaryRows = result.SummaryRows
		run.Skipped = result.Skipped
	}
	if runErr != nil {
		run.Status = "failed"
		run.Error = runErr.Error()
	}

	if err := c.recorder.RecordRun(ctx, run); err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Warn("failed to record run", "run_id", run.ID, "error", err)
	}
}
