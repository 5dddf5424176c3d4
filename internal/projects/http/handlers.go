package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ishanichuri/portfolio/internal/auth"
	"github.com/ishanichuri/portfolio/internal/logging"
	"github.com/ishanichuri/portfolio/internal/projects/domain"
	"github.com/ishanichuri/portfolio/internal/projects/service"
)

func (h *Handler) list(c *gin.Context) {
	filter := domain.StatusFilter(c.DefaultQuery("status_filter", string(domain.FilterPublished)))
	if !filter.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "status_filter must be published, draft or all"})
		return
	}
	if _, authed := auth.ClaimsFrom(c); filter != domain.FilterPublished && !authed {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "auth required"})
		return
	}

	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	_, authed := auth.ClaimsFrom(c)
	p, err := h.svc.Get(c.Request.Context(), c.Param("project_id"), authed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	var in domain.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) update(c *gin.Context) {
	var patch domain.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("project_id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) setStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.SetStatus(c.Request.Context(), c.Param("project_id"), domain.Status(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("project_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case domain.IsValidation(err), errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.Op(c.Request.Context(), c.HandlerName()).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
