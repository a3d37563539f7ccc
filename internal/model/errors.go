package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInputRejected 上传文件缺失、扩展名不符或参数不在参考目录中
	ErrInputRejected = errors.New("input rejected")
	// ErrExtractionFailed 工作簿整体无法打开/解析
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrArtifactExpired 下载 token 不存在或已被使用
	ErrArtifactExpired = errors.New("artifact expired or not found")
)

// SkipCode 跳过原因代码
type SkipCode string

const (
	SkipHeaderNotFound        SkipCode = "header_not_found"
	SkipUnitCodeMissing       SkipCode = "unit_code_column_missing"
	SkipSummaryHeaderNotFound SkipCode = "summary_header_not_found"
	SkipSummaryColumnsMissing SkipCode = "summary_columns_missing"
	SkipSheetReadFailed       SkipCode = "sheet_read_failed"
)

// SkipReason 某个 sheet 无法解释的原因
type SkipReason struct {
	Code   SkipCode `json:"code"`
	Detail string   `json:"detail,omitempty"`
}

func (r *SkipReason) Error() string {
	if r.Detail == "" {
		return string(r.Code)
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Detail)
}

// Skip 构造跳过原因
func Skip(code SkipCode, format string, args ...interface{}) *SkipReason {
	return &SkipReason{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// ExtractionError 整体解析失败，Unwrap 到 ErrExtractionFailed
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed (%s): %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtractionFailed, e.Err}
}

// NewExtractionError 创建 ExtractionError
func NewExtractionError(stage string, err error) *ExtractionError {
	return &ExtractionError{Stage: stage, Err: err}
}
