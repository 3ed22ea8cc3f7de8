package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/clinic-readiness-api/internal/dto"
	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
	"github.com/noah-isme/clinic-readiness-api/pkg/response"
)

type goalService interface {
	List(ctx context.Context, clinicianID, childID string) ([]dto.GoalView, error)
	Archive(ctx context.Context, clinicianID, childID string) ([]models.GoalArchive, error)
	Update(ctx context.Context, clinicianID, childID, goalID string, patch models.GoalPatch) (*dto.GoalView, error)
	SetStatus(ctx context.Context, clinicianID, childID, goalID string, req models.GoalStatusRequest) (*dto.GoalView, error)
	RecordSession(ctx context.Context, clinicianID, childID, goalID string, in models.SessionInput) (*dto.GoalView, error)
}

// GoalHandler exposes goal editing and session tracking.
type GoalHandler struct {
	goals goalService
}

// NewGoalHandler constructs GoalHandler.
func NewGoalHandler(goals goalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

type goalRoute struct {
	clinicianID string
	childID     string
	goalID      string
}

func goalParams(c *gin.Context) (goalRoute, bool) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return goalRoute{}, false
	}
	childID, ok := childParam(c)
	if !ok {
		return goalRoute{}, false
	}
	goalID := strings.TrimSpace(c.Param("goalId"))
	if goalID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "goal id is required"))
		return goalRoute{}, false
	}
	return goalRoute{clinicianID: clinicianID, childID: childID, goalID: goalID}, true
}

// List godoc
// @Summary List active goals with statements
// @Tags Goals
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	goals, err := h.goals.List(c.Request.Context(), clinicianID, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goals, nil)
}

// Archive godoc
// @Summary List archived goal sets
// @Tags Goals
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/goals/archive [get]
func (h *GoalHandler) Archive(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	archive, err := h.goals.Archive(c.Request.Context(), clinicianID, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, archive, nil)
}

// Update godoc
// @Summary Edit goal fields
// @Tags Goals
// @Accept json
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Param goalId path string true "Goal ID"
// @Param payload body models.GoalPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/goals/{goalId} [patch]
func (h *GoalHandler) Update(c *gin.Context) {
	route, ok := goalParams(c)
	if !ok {
		return
	}
	var patch models.GoalPatch
	if !bindJSON(c, &patch) {
		return
	}
	goal, err := h.goals.Update(c.Request.Context(), route.clinicianID, route.childID, route.goalID, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goal, nil)
}

// SetStatus godoc
// @Summary Manually change goal status
// @Tags Goals
// @Accept json
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Param goalId path string true "Goal ID"
// @Param payload body models.GoalStatusRequest true "Status"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/goals/{goalId}/status [put]
func (h *GoalHandler) SetStatus(c *gin.Context) {
	route, ok := goalParams(c)
	if !ok {
		return
	}
	var req models.GoalStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	goal, err := h.goals.SetStatus(c.Request.Context(), route.clinicianID, route.childID, route.goalID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goal, nil)
}

// RecordSession godoc
// @Summary Record a trial session
// @Description Appends trial data and promotes the goal to Mastered after three sessions at 80% or better.
// @Tags Goals
// @Accept json
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Param goalId path string true "Goal ID"
// @Param payload body models.SessionInput true "Session"
// @Success 201 {object} response.Envelope
// @Router /children/{id}/goals/{goalId}/sessions [post]
func (h *GoalHandler) RecordSession(c *gin.Context) {
	route, ok := goalParams(c)
	if !ok {
		return
	}
	var in models.SessionInput
	if !bindJSON(c, &in) {
		return
	}
	goal, err := h.goals.RecordSession(c.Request.Context(), route.clinicianID, route.childID, route.goalID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, goal)
}
