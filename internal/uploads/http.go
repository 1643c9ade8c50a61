package uploads

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/starlinemember/portfolio-website/internal/auth"
)

type Handler struct {
	store *Store
}

// Register mounts the admin upload endpoint. The store may be nil when
// object storage is not configured; uploads then answer 503 instead of
// taking the whole service down.
func Register(rg *gin.RouterGroup, store *Store) {
	h := &Handler{store: store}
	rg.POST("/uploads", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "uploads are not configured"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "could not read file"})
		return
	}
	defer src.Close()

	url, err := h.store.Put(c.Request.Context(), src, file.Size,
		file.Header.Get("Content-Type"), auth.AdminID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	log.Printf("uploads: %s stored %s", auth.AdminEmail(c), url)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "url": url})
}
