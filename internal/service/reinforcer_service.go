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

// ReinforcerService maintains a child's reinforcer table.
type ReinforcerService struct {
	store     *RecordStore
	engine    *engine.Engine
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReinforcerService constructs the reinforcer service.
func NewReinforcerService(store *RecordStore, eng *engine.Engine, validate *validator.Validate, logger *zap.Logger) *ReinforcerService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReinforcerService{store: store, engine: eng, validator: validate, logger: logger}
}

// Record merges reinforcer trials and returns the updated table.
func (s *ReinforcerService) Record(ctx context.Context, clinicianID, childID string, req models.ReinforcerRequest) ([]models.Reinforcer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reinforcer payload")
	}
	var list []models.Reinforcer
	_, err := s.store.Mutate(ctx, clinicianID, childID, func(record *models.ChildRecord) error {
		merged, err := s.engine.RecordReinforcer(record, req.Name, req.Successes, req.Attempts)
		if err != nil {
			return err
		}
		list = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Top returns the best n reinforcers by success rate.
func (s *ReinforcerService) Top(ctx context.Context, clinicianID, childID string, n int) ([]models.Reinforcer, error) {
	record, err := s.store.Load(ctx, clinicianID, childID)
	if err != nil {
		return nil, err
	}
	top := s.engine.TopReinforcers(record, n)
	if top == nil {
		top = []models.Reinforcer{}
	}
	return top, nil
}
