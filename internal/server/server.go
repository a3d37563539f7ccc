package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/shyamganesh19k-droid/FileExtractor/internal/api/v1"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/catalog"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/config"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/importer"
	svcstore "github.com/shyamganesh19k-droid/FileExtractor/internal/service/store"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/store"
)

// Server HTTP服务器
type Server struct {
	cfg       *config.AppConfig
	logger    *slog.Logger
	router    *gin.Engine
	store     *store.Store
	artifacts *svcstore.ArtifactStore
	api       *v1.Handler
}

// NewServer 创建服务器：初始化数据库、导入种子用户、加载目录并注册路由
func NewServer(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = slog.Default()
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	sqliteStore, err := store.New(config.DBPath(cfg, dataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	usersFile := config.UsersFilePath(cfg, dataDir)
	if n, err := sqliteStore.SeedUsersFromFile(ctx, usersFile); err != nil {
		logger.Warn("failed to seed users", "file", usersFile, "error", err)
	} else if n > 0 {
		logger.Info("users seeded", "file", usersFile, "count", n)
	}
	if cfg.Server.RequireLogin {
		if count, err := sqliteStore.CountUsers(ctx); err == nil && count == 0 {
			logger.Warn("login is required but no users exist; add one with `fileextractor user add`")
		}
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		sqliteStore.Close()
		return nil, err
	}

	artifacts := svcstore.NewArtifactStore(cfg.DownloadTTL())
	coordinator := importer.NewCoordinator(logger,
		importer.WithRecorder(sqliteStore),
		importer.WithSearchRows(cfg.Extract.MetadataSearchRows, cfg.Extract.SheetSearchRows),
	)

	api := v1.NewHandler(v1.Options{
		Coordinator:  coordinator,
		Artifacts:    artifacts,
		Sessions:     svcstore.NewSessionStore(cfg.SessionTTL()),
		Users:        sqliteStore,
		Catalog:      cat,
		Logger:       logger,
		RequireLogin: cfg.Server.RequireLogin,
		MaxUpload:    cfg.MaxUploadBytes(),
	})

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		router:    gin.New(),
		store:     sqliteStore,
		artifacts: artifacts,
		api:       api,
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), s.requestLogger())

	// CORS（开发模式下前端独立运行）
	if s.cfg.Server.DevMode {
		s.router.Use(func(c *gin.Context) {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
		})
	}

	api := s.router.Group("/api")
	{
		s.api.RegisterRoutes(api)
	}
}

// requestLogger 访问日志
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Handler 路由（测试使用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器并运行下载清理，ctx 结束时优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.artifacts.Run(ctx, s.cfg.SweepInterval(), s.logger)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Close 释放数据库连接
func (s *Server) Close() error {
	return s.store.Close()
}
