package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/config"
)

func TestNewServerSeedsUsersAndServesLogin(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "users.json"),
		[]byte(`{"users":[{"username":"ops","password":"pw"}]}`), 0644))

	cfg := config.DefaultConfig()
	cfg.Data.DataDir = dataDir

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	n, err := srv.store.CountUsers(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"ops","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalogs", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	_, err = os.Stat(filepath.Join(dataDir, "fileextractor.db"))
	require.NoError(t, err)
}

func TestNewServerBadCatalog(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.DataDir = t.TempDir()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewServer(context.Background(), cfg, nil)
	require.Error(t, err)
}
