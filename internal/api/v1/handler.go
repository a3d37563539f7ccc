package v1

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/catalog"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/importer"
	svcstore "github.com/shyamganesh19k-droid/FileExtractor/internal/service/store"
)

// Authenticator 校验用户凭据
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) error
}

// Options 处理器依赖
type Options struct {
	Coordinator  *importer.Coordinator
	Artifacts    *svcstore.ArtifactStore
	Sessions     *svcstore.SessionStore
	Users        Authenticator
	Catalog      *catalog.Catalog
	Logger       *slog.Logger
	RequireLogin bool
	MaxUpload    int64
}

// Handler API 处理器
type Handler struct {
	coordinator  *importer.Coordinator
	artifacts    *svcstore.ArtifactStore
	sessions     *svcstore.SessionStore
	users        Authenticator
	catalog      *catalog.Catalog
	logger       *slog.Logger
	requireLogin bool
	maxUpload    int64
}

// NewHandler 创建 API 处理器
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxUpload := opts.MaxUpload
	if maxUpload <= 0 {
		maxUpload = 32 << 20
	}
	return &Handler{
		coordinator:  opts.Coordinator,
		artifacts:    opts.Artifacts,
		sessions:     opts.Sessions,
		users:        opts.Users,
		catalog:      opts.Catalog,
		logger:       logger,
		requireLogin: opts.RequireLogin,
		maxUpload:    maxUpload,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.Use(NoCache())

	// 无需登录
	router.GET("/health", h.Health)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)

	authed := router.Group("")
	authed.Use(h.RequireSession())
	{
		authed.GET("/catalogs", h.Catalogs)
		authed.POST("/extract_info", h.ExtractInfo)
		authed.POST("/upload", h.Upload)
		authed.GET("/download/:token", h.Download)
	}
}
