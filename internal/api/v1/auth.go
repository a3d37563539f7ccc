package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/store"
)

// SessionCookie 会话 cookie 名称
const SessionCookie = "fx_session"

const ctxUserKey = "user"

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login 登录并下发会话 cookie
// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login request"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	if h.users == nil || h.sessions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "login is not configured"})
		return
	}

	if err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			h.logger.Info("login rejected", "username", req.Username)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		h.logger.Error("login failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	id := h.sessions.Create(req.Username)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	h.logger.Info("user logged in", "username", req.Username)
	c.JSON(http.StatusOK, gin.H{"user": req.Username})
}

// Logout 注销会话
// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	if id, err := c.Cookie(SessionCookie); err == nil && h.sessions != nil {
		h.sessions.Delete(id)
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RequireSession 需要登录的路由；关闭登录时直接放行
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.requireLogin {
			c.Next()
			return
		}

		id, err := c.Cookie(SessionCookie)
		if err != nil || h.sessions == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		user, ok := h.sessions.Lookup(id)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(ctxUserKey)
}
