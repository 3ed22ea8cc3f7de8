package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	"github.com/noah-isme/clinic-readiness-api/pkg/response"
)

type childService interface {
	Create(ctx context.Context, clinicianID string, req models.CreateChildRequest) (*models.ChildRecord, error)
	List(ctx context.Context, filter models.ChildFilter) ([]models.ChildSummary, *models.Pagination, error)
	Get(ctx context.Context, clinicianID, childID string) (*models.ChildRecord, error)
	Delete(ctx context.Context, clinicianID, childID string) error
}

// ChildHandler exposes the clinician's roster.
type ChildHandler struct {
	children childService
}

// NewChildHandler constructs ChildHandler.
func NewChildHandler(children childService) *ChildHandler {
	return &ChildHandler{children: children}
}

// List godoc
// @Summary List children
// @Tags Children
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param search query string false "Search by name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /children [get]
func (h *ChildHandler) List(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	filter := models.ChildFilter{ClinicianID: clinicianID, Search: strings.TrimSpace(c.Query("search"))}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	children, pagination, err := h.children.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, children, pagination)
}

// Create godoc
// @Summary Add a child to the roster
// @Tags Children
// @Accept json
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param payload body models.CreateChildRequest true "Child payload"
// @Success 201 {object} response.Envelope
// @Router /children [post]
func (h *ChildHandler) Create(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	var req models.CreateChildRequest
	if !bindJSON(c, &req) {
		return
	}
	child, err := h.children.Create(c.Request.Context(), clinicianID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, child)
}

// Get godoc
// @Summary Get a child record
// @Tags Children
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 200 {object} response.Envelope
// @Router /children/{id} [get]
func (h *ChildHandler) Get(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	child, err := h.children.Get(c.Request.Context(), clinicianID, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, child, nil)
}

// Delete godoc
// @Summary Delete a child record
// @Tags Children
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 204
// @Router /children/{id} [delete]
func (h *ChildHandler) Delete(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	if err := h.children.Delete(c.Request.Context(), clinicianID, childID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
