package portfolio

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/starlinemember/portfolio-website/internal/validate"
)

type Handler struct {
	projects     *ProjectRepo
	certificates *CertificateRepo
}

func NewHandler(projects *ProjectRepo, certificates *CertificateRepo) *Handler {
	return &Handler{projects: projects, certificates: certificates}
}

// RegisterPublic mounts the read-only listings the site renders from.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/projects", h.listProjects)
	rg.GET("/certificates", h.listCertificates)
}

// RegisterAdmin mounts the write operations behind the session middleware.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("/projects", h.createProject)
	rg.PUT("/projects/:id", h.updateProject)
	rg.DELETE("/projects/:id", h.deleteProject)

	rg.POST("/certificates", h.createCertificate)
	rg.PUT("/certificates/:id", h.updateCertificate)
	rg.DELETE("/certificates/:id", h.deleteCertificate)
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.projects.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) createProject(c *gin.Context) {
	var in ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	// Sanitize and validate before the store is ever touched.
	in.sanitize()
	if verr := in.validateFields(); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Message, "field": verr.Field})
		return
	}

	p, err := h.projects.Create(c.Request.Context(), in)
	if err != nil {
		writeRepoErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in.sanitize()
	if verr := in.validateFields(); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Message, "field": verr.Field})
		return
	}

	p, err := h.projects.Update(c.Request.Context(), id, in)
	if err != nil {
		writeRepoErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	found, err := h.projects.SoftDelete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listCertificates(c *gin.Context) {
	items, err := h.certificates.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "certificates": items})
}

func (h *Handler) createCertificate(c *gin.Context) {
	var in CertificateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in.sanitize()
	if verr := in.validateFields(); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Message, "field": verr.Field})
		return
	}

	ct, err := h.certificates.Create(c.Request.Context(), in)
	if err != nil {
		writeRepoErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "certificate": ct})
}

func (h *Handler) updateCertificate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in CertificateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in.sanitize()
	if verr := in.validateFields(); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Message, "field": verr.Field})
		return
	}

	ct, err := h.certificates.Update(c.Request.Context(), id, in)
	if err != nil {
		writeRepoErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "certificate": ct})
}

func (h *Handler) deleteCertificate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	found, err := h.certificates.SoftDelete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "certificate not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
		return "", false
	}
	return id, true
}

func writeRepoErr(c *gin.Context, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": verr.Message, "field": verr.Field})
	case errors.Is(err, pgx.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
