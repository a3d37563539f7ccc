package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/catalog"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/importer"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
	svcstore "github.com/shyamganesh19k-droid/FileExtractor/internal/service/store"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/store"
)

type userStub map[string]string

func (u userStub) Authenticate(_ context.Context, username, password string) error {
	if pw, ok := u[username]; ok && pw == password {
		return nil
	}
	return store.ErrInvalidCredentials
}

func newTestRouter(t *testing.T, requireLogin bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat, err := catalog.Default()
	require.NoError(t, err)

	h := NewHandler(Options{
		Coordinator:  importer.NewCoordinator(logger),
		Artifacts:    svcstore.NewArtifactStore(time.Minute),
		Sessions:     svcstore.NewSessionStore(time.Hour),
		Users:        userStub{"alice": "secret"},
		Catalog:      cat,
		Logger:       logger,
		RequireLogin: requireLogin,
	})

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func testWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "WO-1"))
	wo := [][]interface{}{
		{"Work Order", "WO-1"},
		{"Unit Code", "Quantity", "Price", "Total Price"},
		{"UC-1", 2, 5, 10},
	}
	for i, row := range wo {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("WO-1", cell, &row))
	}

	_, err := f.NewSheet("Pricing Summary")
	require.NoError(t, err)
	ps := [][]interface{}{
		{"PO", "PO-998"},
		{"Work Package", "Pole Replacement 2024"},
		{"Work Order", "Pole"},
		{"WO-1", "P-1"},
	}
	for i, row := range ps {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Pricing Summary", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartRequest(t *testing.T, path, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func login(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatalf("no session cookie in login response")
	return nil
}

func TestHealthHasNoCacheHeaders(t *testing.T) {
	r := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", rec.Header().Get("Pragma"))
	require.Equal(t, "0", rec.Header().Get("Expires"))
}

func TestLoginRequired(t *testing.T) {
	r := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalogs", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	bad := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"nope"}`))
	bad.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, bad)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := login(t, r)
	req := httptest.NewRequest(http.MethodGet, "/api/catalogs", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var cat catalog.Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))
	require.Len(t, cat.Branches, 7)

	logout := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	logout.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, logout)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/catalogs", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 下载令牌只能使用一次
func TestUploadAndDownloadOnce(t *testing.T) {
	r := newTestRouter(t, true)
	cookie := login(t, r)

	req := multipartRequest(t, "/api/upload", "Batch 7.xlsx", testWorkbook(t), map[string]string{
		"project_template": "BDISTR15PC",
		"customer_id":      "AEP01",
		"branch_id":        "CALI",
		"type_value":       "Cost Task",
	})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.DownloadToken)
	require.Equal(t, "/api/download/"+resp.DownloadToken, resp.DownloadURL)
	require.Equal(t, "cleaned_Batch_7.xlsx", resp.CleanedFile)
	require.Empty(t, resp.SkippedSheets)
	require.Equal(t, 1, resp.LineItems)
	require.Equal(t, 1, resp.SummaryRows)

	get := httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil)
	get.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, get)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, xlsxMIME, rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "cleaned_Batch_7.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(model.SheetWorkOrderDetails)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "PO-998", rows[1][0])
	require.Equal(t, "AEP01", rows[1][3])

	again := httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil)
	again.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, again)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejectsInput(t *testing.T) {
	r := newTestRouter(t, false)

	cases := []struct {
		name     string
		filename string
		data     []byte
		fields   map[string]string
		status   int
	}{
		{"wrong extension", "report.csv", []byte("a,b"), nil, http.StatusBadRequest},
		{"legacy xls", "report.xls", []byte("x"), nil, http.StatusBadRequest},
		{"missing file", "", nil, nil, http.StatusBadRequest},
		{"unknown customer", "ok.xlsx", testWorkbook(t), map[string]string{"customer_id": "NOPE"}, http.StatusBadRequest},
		{"corrupt workbook", "broken.xlsx", []byte("not a zip"), nil, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, multipartRequest(t, "/api/upload", tc.filename, tc.data, tc.fields))
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestUploadSkippedSheets(t *testing.T) {
	r := newTestRouter(t, false)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Cover"))
	require.NoError(t, f.SetCellValue("Cover", "A1", "hello"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, "/api/upload", "cover.XLSX", buf.Bytes(), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"Cover"}, resp.SkippedSheets)
	require.Equal(t, 0, resp.LineItems)
}

func TestExtractInfo(t *testing.T) {
	r := newTestRouter(t, false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, "/api/extract_info", "wo.xlsx", testWorkbook(t), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var info model.ProjectInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, "PO-998", info.ProjectID)
	require.Equal(t, "Pole Replacement 2024", info.Description)
}

func TestDownloadUnknownToken(t *testing.T) {
	r := newTestRouter(t, false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/download/does-not-exist", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
