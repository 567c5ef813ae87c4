package signals

import (
	"net/http"

	"outreach_backend/platform/httpkit"
	"outreach_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for signal ingest.
type Handler struct {
	collector *Collector
	val       *validator.Validator
}

// NewHandler creates a new signals handler.
func NewHandler(collector *Collector, val *validator.Validator) *Handler {
	return &Handler{collector: collector, val: val}
}

// RegisterRoutes registers the signal ingest routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.RecordEvent)
}

// RegisterPreviewRoutes registers the operator-facing classification preview.
func (h *Handler) RegisterPreviewRoutes(rg *gin.RouterGroup) {
	rg.POST("/preview", h.PreviewClassification)
}

// PreviewRequest is the body for a classification preview.
type PreviewRequest struct {
	Content string `json:"content" validate:"required,max=20000"`
}

func (h *Handler) PreviewClassification(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	httpkit.OK(c, h.collector.Preview(req.Content))
}

func (h *Handler) RecordEvent(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing tenant context", nil)
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.collector.Record(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	if result.Duplicate {
		httpkit.OK(c, result)
		return
	}
	httpkit.Created(c, result)
}
