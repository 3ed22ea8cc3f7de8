package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/clinic-readiness-api/internal/dto"
	"github.com/noah-isme/clinic-readiness-api/internal/middleware"
	"github.com/noah-isme/clinic-readiness-api/pkg/response"
)

type readinessService interface {
	Child(ctx context.Context, clinicianID, childID string) (*dto.ChildReadinessResponse, bool, error)
	History(ctx context.Context, clinicianID, childID string) (*dto.ReadinessHistoryResponse, error)
	Dashboard(ctx context.Context, clinicianID string) (*dto.ClinicianDashboard, bool, error)
}

// ReadinessHandler exposes readiness queries and the clinician dashboard.
type ReadinessHandler struct {
	readiness readinessService
}

// NewReadinessHandler constructs ReadinessHandler.
func NewReadinessHandler(readiness readinessService) *ReadinessHandler {
	return &ReadinessHandler{readiness: readiness}
}

// Child godoc
// @Summary Current readiness of a child
// @Tags Readiness
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/readiness [get]
func (h *ReadinessHandler) Child(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	summary, cacheHit, err := h.readiness.Child(c.Request.Context(), clinicianID, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ResponseMeta(c))
}

// History godoc
// @Summary Readiness timeline of a child
// @Tags Readiness
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/readiness/history [get]
func (h *ReadinessHandler) History(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	history, err := h.readiness.History(c.Request.Context(), clinicianID, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// Dashboard godoc
// @Summary Clinician caseload dashboard
// @Tags Readiness
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *ReadinessHandler) Dashboard(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	dashboard, cacheHit, err := h.readiness.Dashboard(c.Request.Context(), clinicianID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, dashboard, nil, middleware.ResponseMeta(c))
}
