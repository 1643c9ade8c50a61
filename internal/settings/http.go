package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
}

// Register mounts the settings endpoints behind the session middleware.
func Register(rg *gin.RouterGroup, store *Store) {
	h := &Handler{store: store}

	rg.GET("/settings", h.get)
	rg.PUT("/settings", h.put)
}

func (h *Handler) get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": h.store.Get(c.Request.Context())})
}

func (h *Handler) put(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil || len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.store.SetAll(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": h.store.Get(c.Request.Context())})
}
