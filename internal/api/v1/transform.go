package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/importer"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UploadResponse 上传转换响应
type UploadResponse struct {
	DownloadToken string   `json:"download_token"`
	DownloadURL   string   `json:"download_url"`
	CleanedFile   string   `json:"cleaned_file"`
	SkippedSheets []string `json:"skipped_sheets"`
	LineItems     int      `json:"line_items"`
	SummaryRows   int      `json:"summary_rows"`
}

// allowedFile 只接受 .xlsx
func allowedFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

// readUpload 读取 multipart 中的 file 字段
func (h *Handler) readUpload(c *gin.Context) (string, []byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	fh, err := c.FormFile("file")
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "", nil, err
	}
	if err != nil || fh.Filename == "" {
		return "", nil, fmt.Errorf("%w: no file selected", model.ErrInputRejected)
	}
	if !allowedFile(fh.Filename) {
		return "", nil, fmt.Errorf("%w: please upload an Excel (.xlsx) file", model.ErrInputRejected)
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return fh.Filename, data, nil
}

// ExtractInfo 只读取 Pricing Summary 的项目号与描述（表单预填）
// POST /api/extract_info
func (h *Handler) ExtractInfo(c *gin.Context) {
	name, data, err := h.readUpload(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	info, err := h.coordinator.ExtractInfo(data)
	if err != nil {
		h.logger.Warn("extract info failed", "file", name, "error", err)
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Upload 转换上传的工作簿，返回一次性下载令牌
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	name, data, err := h.readUpload(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	pass := model.Passthrough{
		ProjectID:       strings.TrimSpace(c.PostForm("project_id")),
		Description:     strings.TrimSpace(c.PostForm("description")),
		ProjectTemplate: strings.TrimSpace(c.PostForm("project_template")),
		CustomerID:      strings.TrimSpace(c.PostForm("customer_id")),
		BranchID:        strings.TrimSpace(c.PostForm("branch_id")),
	}
	typeValue := strings.TrimSpace(c.PostForm("type_value"))

	if h.catalog != nil {
		if err := h.catalog.Validate(pass.ProjectTemplate, pass.CustomerID, pass.BranchID, typeValue); err != nil {
			h.writeError(c, err)
			return
		}
	}

	result, err := h.coordinator.Transform(c.Request.Context(), importer.TransformOptions{
		Filename:    name,
		Data:        data,
		Passthrough: pass,
		TypeValue:   typeValue,
		Username:    currentUser(c),
		AutoFill:    true,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	token := h.artifacts.Put(result.Filename, result.Output)
	skipped := result.SkippedNames()

	h.logger.Info("upload transformed",
		"file", name,
		"user", currentUser(c),
		"line_items", result.LineItems,
		"skipped", len(skipped),
	)
	c.JSON(http.StatusOK, UploadResponse{
		DownloadToken: token,
		DownloadURL:   "/api/download/" + token,
		CleanedFile:   result.Filename,
		SkippedSheets: skipped,
		LineItems:     result.LineItems,
		SummaryRows:   result.SummaryRows,
	})
}

// Download 领取转换结果；令牌只能使用一次
// GET /api/download/:token
func (h *Handler) Download(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, err := h.artifacts.TakeOnce(token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(item.Filename))
	c.Data(http.StatusOK, xlsxMIME, item.Data)
}

func contentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", filename, url.PathEscape(filename))
}

// writeError 按错误类型映射状态码
func (h *Handler) writeError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, model.ErrInputRejected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &maxErr):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
	case errors.Is(err, model.ErrArtifactExpired):
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found or expired"})
	case errors.Is(err, model.ErrExtractionFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
