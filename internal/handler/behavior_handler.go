package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
	"github.com/noah-isme/clinic-readiness-api/pkg/response"
)

type behaviorService interface {
	Record(ctx context.Context, clinicianID, childID string, req models.BehaviorLogRequest) (*models.BehaviorLogResult, error)
	List(ctx context.Context, clinicianID, childID string) (*models.BehaviorOverview, error)
}

type reinforcerService interface {
	Record(ctx context.Context, clinicianID, childID string, req models.ReinforcerRequest) ([]models.Reinforcer, error)
	Top(ctx context.Context, clinicianID, childID string, n int) ([]models.Reinforcer, error)
}

// BehaviorHandler exposes behavior logs and reinforcer tracking.
type BehaviorHandler struct {
	behaviors   behaviorService
	reinforcers reinforcerService
}

// NewBehaviorHandler constructs BehaviorHandler.
func NewBehaviorHandler(behaviors behaviorService, reinforcers reinforcerService) *BehaviorHandler {
	return &BehaviorHandler{behaviors: behaviors, reinforcers: reinforcers}
}

// RecordBehavior godoc
// @Summary Record a behavior log
// @Tags Behavior
// @Accept json
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Param payload body models.BehaviorLogRequest true "Behavior log"
// @Success 201 {object} response.Envelope
// @Router /children/{id}/behaviors [post]
func (h *BehaviorHandler) RecordBehavior(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	var req models.BehaviorLogRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.behaviors.Record(c.Request.Context(), clinicianID, childID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListBehavior godoc
// @Summary List behavior logs with the current penalty
// @Tags Behavior
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/behaviors [get]
func (h *BehaviorHandler) ListBehavior(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	overview, err := h.behaviors.List(c.Request.Context(), clinicianID, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// RecordReinforcer godoc
// @Summary Record reinforcer trials
// @Description Entries with the same name, ignoring case, are merged.
// @Tags Behavior
// @Accept json
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Param payload body models.ReinforcerRequest true "Reinforcer trials"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/reinforcers [post]
func (h *BehaviorHandler) RecordReinforcer(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	var req models.ReinforcerRequest
	if !bindJSON(c, &req) {
		return
	}
	list, err := h.reinforcers.Record(c.Request.Context(), clinicianID, childID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// TopReinforcers godoc
// @Summary Best reinforcers by success rate
// @Tags Behavior
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Param limit query int false "Number of entries (default 3)"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/reinforcers/top [get]
func (h *BehaviorHandler) TopReinforcers(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "3"))
	if err != nil || limit <= 0 || limit > 50 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be between 1 and 50"))
		return
	}
	top, err := h.reinforcers.Top(c.Request.Context(), clinicianID, childID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, top, nil)
}
