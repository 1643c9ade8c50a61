package contact

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/starlinemember/portfolio-website/internal/validate"
)

type Handler struct {
	gate   *Gate
	tokens *TokenStore
	repo   *Repo
}

// Register mounts the public form endpoints.
func Register(rg *gin.RouterGroup, gate *Gate, tokens *TokenStore) *Handler {
	h := &Handler{gate: gate, tokens: tokens}

	rg.GET("/contact/token", h.token)
	rg.POST("/contact", h.submit)

	return h
}

// RegisterAdmin mounts the inbox endpoints behind the session middleware.
func RegisterAdmin(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("/messages", h.list)
	rg.PATCH("/messages/:id/read", h.markRead)
	rg.PATCH("/messages/:id/spam", h.markSpam)
}

func (h *Handler) token(c *gin.Context) {
	token, err := h.tokens.Issue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "try again later"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
}

func (h *Handler) submit(c *gin.Context) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	msg, err := h.gate.Submit(c.Request.Context(), sub, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		var verr *validate.Error
		switch {
		case errors.Is(err, ErrBot):
			// Indistinguishable from success on purpose.
			c.JSON(http.StatusAccepted, gin.H{"ok": true})
		case errors.Is(err, ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "Too many messages, please try again later"})
		case errors.Is(err, ErrContentRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "Your message could not be sent"})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Message, "field": verr.Field})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "Message could not be delivered, please try again"})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"ok": true, "message": msg})
}

func (h *Handler) list(c *gin.Context) {
	opt := ListOptions{
		Limit:  atoiDefault(c.Query("limit"), 50),
		Offset: atoiDefault(c.Query("offset"), 0),
	}
	if v, err := strconv.ParseBool(c.Query("read")); err == nil {
		opt.Read = &v
	}
	if v, err := strconv.ParseBool(c.Query("spam")); err == nil {
		opt.Spam = &v
	}

	items, total, err := h.repo.List(c.Request.Context(), opt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": items, "total": total})
}

type flagReq struct {
	Value *bool `json:"value"`
}

func (h *Handler) markRead(c *gin.Context) {
	h.setFlag(c, h.repo.SetRead)
}

func (h *Handler) markSpam(c *gin.Context) {
	h.setFlag(c, h.repo.SetSpam)
}

func (h *Handler) setFlag(c *gin.Context, set func(ctx context.Context, id string, v bool) (bool, error)) {
	value := true
	var req flagReq
	if err := c.ShouldBindJSON(&req); err == nil && req.Value != nil {
		value = *req.Value
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "message not found"})
		return
	}

	ok, err := set(c.Request.Context(), id, value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "message not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
