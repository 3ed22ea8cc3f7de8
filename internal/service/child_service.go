package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
	"github.com/noah-isme/clinic-readiness-api/pkg/validation"
)

// ChildService manages a clinician's roster.
type ChildService struct {
	store     *RecordStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewChildService constructs the child service.
func NewChildService(store *RecordStore, validate *validator.Validate, logger *zap.Logger) *ChildService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChildService{store: store, validator: validate, logger: logger, now: time.Now}
}

// Create adds an empty child record to the clinician's roster.
func (s *ChildService) Create(ctx context.Context, clinicianID string, req models.CreateChildRequest) (*models.ChildRecord, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Grade = strings.TrimSpace(req.Grade)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid child payload")
	}
	now := s.now().UTC()
	record := &models.ChildRecord{
		ID:               uuid.NewString(),
		ClinicianID:      clinicianID,
		Name:             req.Name,
		Age:              req.Age,
		Grade:            req.Grade,
		Assessments:      []models.Assessment{},
		Goals:            []models.Goal{},
		PastGoals:        []models.GoalArchive{},
		BehaviorLogs:     []models.BehaviorLog{},
		Reinforcers:      []models.Reinforcer{},
		ReadinessHistory: []models.ReadinessPoint{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Create(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info("child created", zap.String("child_id", record.ID), zap.String("clinician_id", clinicianID))
	return record, nil
}

// List returns the roster page and pagination metadata.
func (s *ChildService) List(ctx context.Context, filter models.ChildFilter) ([]models.ChildSummary, *models.Pagination, error) {
	children, total, err := s.store.Roster(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	if children == nil {
		children = []models.ChildSummary{}
	}
	return children, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a full child record.
func (s *ChildService) Get(ctx context.Context, clinicianID, childID string) (*models.ChildRecord, error) {
	return s.store.Load(ctx, clinicianID, childID)
}

// Delete removes a child record.
func (s *ChildService) Delete(ctx context.Context, clinicianID, childID string) error {
	if err := s.store.Remove(ctx, clinicianID, childID); err != nil {
		return err
	}
	s.logger.Info("child deleted", zap.String("child_id", childID), zap.String("clinician_id", clinicianID))
	return nil
}
