package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/clinic-readiness-api/internal/dto"
	"github.com/noah-isme/clinic-readiness-api/internal/engine"
	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
	"github.com/noah-isme/clinic-readiness-api/pkg/validation"
)

// GoalService edits goals and records trial sessions.
type GoalService struct {
	store     *RecordStore
	engine    *engine.Engine
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGoalService constructs the goal service.
func NewGoalService(store *RecordStore, eng *engine.Engine, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *GoalService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{store: store, engine: eng, metrics: metrics, validator: validate, logger: logger}
}

// List returns the active goal set with composed statements.
func (s *GoalService) List(ctx context.Context, clinicianID, childID string) ([]dto.GoalView, error) {
	record, err := s.store.Load(ctx, clinicianID, childID)
	if err != nil {
		return nil, err
	}
	views := make([]dto.GoalView, 0, len(record.Goals))
	for _, g := range record.Goals {
		views = append(views, dto.NewGoalView(g, record.Name))
	}
	return views, nil
}

// Archive returns the replaced goal sets, oldest first.
func (s *GoalService) Archive(ctx context.Context, clinicianID, childID string) ([]models.GoalArchive, error) {
	record, err := s.store.Load(ctx, clinicianID, childID)
	if err != nil {
		return nil, err
	}
	if record.PastGoals == nil {
		return []models.GoalArchive{}, nil
	}
	return record.PastGoals, nil
}

func (s *GoalService) mutateGoal(ctx context.Context, clinicianID, childID string, fn func(*models.ChildRecord) (*models.Goal, error)) (*dto.GoalView, error) {
	var goal models.Goal
	record, err := s.store.Mutate(ctx, clinicianID, childID, func(record *models.ChildRecord) error {
		updated, err := fn(record)
		if err != nil {
			return err
		}
		goal = *updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := dto.NewGoalView(goal, record.Name)
	return &view, nil
}

// Update applies clinician edits to a goal.
func (s *GoalService) Update(ctx context.Context, clinicianID, childID, goalID string, patch models.GoalPatch) (*dto.GoalView, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid goal payload")
	}
	return s.mutateGoal(ctx, clinicianID, childID, func(record *models.ChildRecord) (*models.Goal, error) {
		return s.engine.UpdateGoal(record, goalID, patch)
	})
}

// SetStatus is the clinician's manual status change.
func (s *GoalService) SetStatus(ctx context.Context, clinicianID, childID, goalID string, req models.GoalStatusRequest) (*dto.GoalView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	view, err := s.mutateGoal(ctx, clinicianID, childID, func(record *models.ChildRecord) (*models.Goal, error) {
		return s.engine.SetGoalStatus(record, goalID, req.Status)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("goal status changed", zap.String("child_id", childID), zap.String("goal_id", goalID), zap.String("status", string(req.Status)))
	return view, nil
}

// RecordSession appends trial data and reports automatic mastery.
func (s *GoalService) RecordSession(ctx context.Context, clinicianID, childID, goalID string, in models.SessionInput) (*dto.GoalView, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	promoted := false
	view, err := s.mutateGoal(ctx, clinicianID, childID, func(record *models.ChildRecord) (*models.Goal, error) {
		goal, mastered, err := s.engine.RecordSession(record, goalID, in)
		if err != nil {
			return nil, err
		}
		promoted = mastered
		return goal, nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSession(promoted)
	if promoted {
		s.logger.Info("goal mastered", zap.String("child_id", childID), zap.String("goal_id", goalID))
	}
	return view, nil
}
