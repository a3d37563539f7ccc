package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health 健康检查
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Catalogs 上传表单的参考目录
// GET /api/catalogs
func (h *Handler) Catalogs(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded"})
		return
	}
	c.JSON(http.StatusOK, h.catalog)
}
