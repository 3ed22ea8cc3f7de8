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

// BehaviorService records behavior logs.
type BehaviorService struct {
	store     *RecordStore
	engine    *engine.Engine
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBehaviorService constructs the behavior service.
func NewBehaviorService(store *RecordStore, eng *engine.Engine, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BehaviorService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BehaviorService{store: store, engine: eng, metrics: metrics, validator: validate, logger: logger}
}

// Record appends a behavior log and the readiness point it produces.
func (s *BehaviorService) Record(ctx context.Context, clinicianID, childID string, req models.BehaviorLogRequest) (*models.BehaviorLogResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid behavior payload")
	}
	var result *models.BehaviorLogResult
	_, err := s.store.Mutate(ctx, clinicianID, childID, func(record *models.ChildRecord) error {
		res, err := s.engine.RecordBehaviorLog(record, req)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordBehaviorLog(result.ReadinessPoint)
	s.logger.Info("behavior logged",
		zap.String("child_id", childID),
		zap.String("type", req.Type),
		zap.Int("frequency", *req.Frequency),
		zap.Int("readiness", result.ReadinessPoint.Score),
	)
	return result, nil
}

// List returns the behavior logs with the current penalty.
func (s *BehaviorService) List(ctx context.Context, clinicianID, childID string) (*models.BehaviorOverview, error) {
	record, err := s.store.Load(ctx, clinicianID, childID)
	if err != nil {
		return nil, err
	}
	logs := record.BehaviorLogs
	if logs == nil {
		logs = []models.BehaviorLog{}
	}
	return &models.BehaviorOverview{BehaviorLogs: logs, Penalty: engine.BehaviorBurdenPenalty(logs)}, nil
}
