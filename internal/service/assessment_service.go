package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/clinic-readiness-api/internal/engine"
	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
	"github.com/noah-isme/clinic-readiness-api/pkg/validation"
)

// AssessmentService records questionnaire answers and finalizes drafts.
type AssessmentService struct {
	store     *RecordStore
	engine    *engine.Engine
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService constructs the assessment service.
func NewAssessmentService(store *RecordStore, eng *engine.Engine, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{store: store, engine: eng, metrics: metrics, validator: validate, logger: logger}
}

// Questions returns the static question bank.
func (s *AssessmentService) Questions() []models.Question {
	return s.engine.Catalog().AllQuestions()
}

// List returns every assessment of a child, oldest first.
func (s *AssessmentService) List(ctx context.Context, clinicianID, childID string) ([]models.Assessment, error) {
	record, err := s.store.Load(ctx, clinicianID, childID)
	if err != nil {
		return nil, err
	}
	if record.Assessments == nil {
		return []models.Assessment{}, nil
	}
	return record.Assessments, nil
}

// SetResponse records one answer on the open draft and returns the rescored draft.
func (s *AssessmentService) SetResponse(ctx context.Context, clinicianID, childID string, req models.SetResponseRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid response payload")
	}
	var draft *models.Assessment
	_, err := s.store.Mutate(ctx, clinicianID, childID, func(record *models.ChildRecord) error {
		updated, err := s.engine.SetResponse(record, req.Domain, req.QuestionID, req.Value)
		if err != nil {
			return err
		}
		draft = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// Finalize closes the open draft and regenerates the goal set.
func (s *AssessmentService) Finalize(ctx context.Context, clinicianID, childID string) (*models.FinalizeResult, error) {
	var result *models.FinalizeResult
	_, err := s.store.Mutate(ctx, clinicianID, childID, func(record *models.ChildRecord) error {
		res, err := s.engine.FinalizeAssessment(record)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordFinalize(result.Goals, result.ReadinessPoint)
	s.logger.Info("assessment finalized",
		zap.String("child_id", childID),
		zap.Int("goals_generated", len(result.Goals)),
		zap.Int("readiness", result.ReadinessPoint.Score),
	)
	return result, nil
}
