package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	"github.com/noah-isme/clinic-readiness-api/pkg/response"
)

type assessmentService interface {
	Questions() []models.Question
	List(ctx context.Context, clinicianID, childID string) ([]models.Assessment, error)
	SetResponse(ctx context.Context, clinicianID, childID string, req models.SetResponseRequest) (*models.Assessment, error)
	Finalize(ctx context.Context, clinicianID, childID string) (*models.FinalizeResult, error)
}

// AssessmentHandler exposes the readiness questionnaire.
type AssessmentHandler struct {
	assessments assessmentService
}

// NewAssessmentHandler constructs AssessmentHandler.
func NewAssessmentHandler(assessments assessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

// Questions godoc
// @Summary Assessment question bank
// @Tags Assessments
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/questions [get]
func (h *AssessmentHandler) Questions(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.assessments.Questions(), nil)
}

// List godoc
// @Summary List assessments of a child
// @Tags Assessments
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/assessments [get]
func (h *AssessmentHandler) List(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	assessments, err := h.assessments.List(c.Request.Context(), clinicianID, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessments, nil)
}

// SetResponse godoc
// @Summary Record an answer on the draft assessment
// @Description Creates the draft when none is open. An empty value clears the answer.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Param payload body models.SetResponseRequest true "Answer"
// @Success 200 {object} response.Envelope
// @Router /children/{id}/assessments/draft/responses [put]
func (h *AssessmentHandler) SetResponse(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	var req models.SetResponseRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.assessments.SetResponse(c.Request.Context(), clinicianID, childID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft, nil)
}

// Finalize godoc
// @Summary Finalize the draft assessment
// @Description Regenerates the goal set and appends a readiness point. 409 when no draft is open.
// @Tags Assessments
// @Produce json
// @Param X-Clinician-ID header string true "Clinician ID"
// @Param id path string true "Child ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /children/{id}/assessments/finalize [post]
func (h *AssessmentHandler) Finalize(c *gin.Context) {
	clinicianID, ok := clinicianFromContext(c)
	if !ok {
		return
	}
	childID, ok := childParam(c)
	if !ok {
		return
	}
	result, err := h.assessments.Finalize(c.Request.Context(), clinicianID, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
