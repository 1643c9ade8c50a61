package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

// Register mounts the session endpoints. Login and verify are public by
// necessity; session and logout require an existing token.
func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.POST("/auth/login", h.login)
	rg.POST("/auth/verify", h.verify)
	rg.POST("/auth/logout", h.logout)
	rg.GET("/auth/session", h.session)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password are required"})
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrIPBlocked):
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "login is temporarily unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"token":        res.Session.Token,
		"requires_2fa": res.RequiresTwo,
		"expires_at":   res.Session.ExpiresAt,
		"admin": gin.H{
			"email":        res.Admin.Email,
			"display_name": res.Admin.DisplayName,
		},
	})
}

type verifyReq struct {
	Code string `json:"code"`
}

func (h *Handler) verify(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing session token"})
		return
	}

	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "code is required"})
		return
	}

	session, err := h.svc.VerifyCode(c.Request.Context(), token, req.Code)
	if err != nil {
		if errors.Is(err, ErrBadCode) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "expires_at": session.ExpiresAt})
}

func (h *Handler) logout(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing session token"})
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// session is the liveness probe the dashboard polls; an expired or revoked
// token answers 401 so the client can force a re-login.
func (h *Handler) session(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing session token"})
		return
	}

	session, admin, err := h.svc.Check(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid or expired session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"expires_at": session.ExpiresAt,
		"admin": gin.H{
			"email":        admin.Email,
			"display_name": admin.DisplayName,
		},
	})
}
