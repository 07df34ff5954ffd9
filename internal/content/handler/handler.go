package handler

import (
	"net/http"

	"erp_backend/internal/content/service"
	"erp_backend/internal/content/transport"
	"erp_backend/platform/httpkit"
	"erp_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for sections and contents
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new content handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterSectionRoutes registers the section routes
func (h *Handler) RegisterSectionRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListSections)
	rg.POST("", h.CreateSection)
	rg.PUT("/:id", h.UpdateSection)
	rg.DELETE("/:id", h.DeleteSection)
}

// RegisterContentRoutes registers the content routes
func (h *Handler) RegisterContentRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListContents)
	rg.POST("", h.CreateContent)
	rg.PUT("/:id", h.UpdateContent)
	rg.DELETE("/:id", h.DeleteContent)
}

// ListSections handles GET /api/v1/sections
func (h *Handler) ListSections(c *gin.Context) {
	result, err := h.svc.ListSections(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateSection handles POST /api/v1/sections
func (h *Handler) CreateSection(c *gin.Context) {
	var req transport.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateSection(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}

// UpdateSection handles PUT /api/v1/sections/:id
func (h *Handler) UpdateSection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateSection(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// DeleteSection handles DELETE /api/v1/sections/:id
func (h *Handler) DeleteSection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.DeleteSection(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}

// ListContents handles GET /api/v1/contents. ?sectionId= scopes the
// result to one section
func (h *Handler) ListContents(c *gin.Context) {
	var sectionID *uuid.UUID
	if raw := c.Query("sectionId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		sectionID = &parsed
	}

	result, err := h.svc.ListContents(c.Request.Context(), sectionID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// CreateContent handles POST /api/v1/contents
func (h *Handler) CreateContent(c *gin.Context) {
	var req transport.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateContent(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}

// UpdateContent handles PUT /api/v1/contents/:id
func (h *Handler) UpdateContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateContent(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// DeleteContent handles DELETE /api/v1/contents/:id
func (h *Handler) DeleteContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.DeleteContent(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}
