package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	"github.com/noah-isme/clinic-readiness-api/pkg/cache"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

// ChildRepository persists whole child records.
type ChildRepository interface {
	List(ctx context.Context, filter models.ChildFilter) ([]models.ChildSummary, int, error)
	ListRecords(ctx context.Context, clinicianID string) ([]models.ChildRecord, error)
	FindByID(ctx context.Context, id string) (*models.ChildRecord, error)
	Save(ctx context.Context, child *models.ChildRecord) error
	Delete(ctx context.Context, id string) error
}

// RecordStore owns child record access: it checks ownership, serializes
// edits to the same child and invalidates cached readiness after writes.
type RecordStore struct {
	repo   ChildRepository
	locks  *keyedMutex
	cache  *CacheService
	logger *zap.Logger

	afterInvalidate func(clinicianID string)
}

// NewRecordStore constructs a RecordStore. cache may be nil.
func NewRecordStore(repo ChildRepository, cacheSvc *CacheService, logger *zap.Logger) *RecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordStore{repo: repo, locks: newKeyedMutex(), cache: cacheSvc, logger: logger}
}

func storeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func requireClinician(clinicianID string) error {
	if strings.TrimSpace(clinicianID) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "clinician id is required")
	}
	return nil
}

func (s *RecordStore) find(ctx context.Context, clinicianID, childID string) (*models.ChildRecord, error) {
	if err := requireClinician(clinicianID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(childID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "child id is required")
	}
	record, err := s.repo.FindByID(ctx, childID)
	if err != nil {
		return nil, storeError(err, "failed to load child")
	}
	if record.ClinicianID != clinicianID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "child belongs to another clinician")
	}
	return record, nil
}

// Load returns a child record owned by clinicianID.
func (s *RecordStore) Load(ctx context.Context, clinicianID, childID string) (*models.ChildRecord, error) {
	return s.find(ctx, clinicianID, childID)
}

// View runs fn against the stored record under the child's lock, so work
// derived from the record cannot interleave with a concurrent write.
func (s *RecordStore) View(ctx context.Context, clinicianID, childID string, fn func(*models.ChildRecord) error) error {
	release := s.locks.Lock(childID)
	defer release()

	record, err := s.find(ctx, clinicianID, childID)
	if err != nil {
		return err
	}
	return fn(record)
}

// Mutate runs fn against the stored record under the child's lock and saves
// the result only when fn succeeds.
func (s *RecordStore) Mutate(ctx context.Context, clinicianID, childID string, fn func(*models.ChildRecord) error) (*models.ChildRecord, error) {
	release := s.locks.Lock(childID)
	defer release()

	record, err := s.find(ctx, clinicianID, childID)
	if err != nil {
		return nil, err
	}
	if err := fn(record); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, storeError(err, "failed to save child")
	}
	s.invalidate(ctx, clinicianID, childID)
	return record, nil
}

// Create persists a brand new record.
func (s *RecordStore) Create(ctx context.Context, record *models.ChildRecord) error {
	if err := requireClinician(record.ClinicianID); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return storeError(err, "failed to create child")
	}
	s.invalidate(ctx, record.ClinicianID, record.ID)
	return nil
}

// Remove deletes a record owned by clinicianID.
func (s *RecordStore) Remove(ctx context.Context, clinicianID, childID string) error {
	release := s.locks.Lock(childID)
	defer release()

	if _, err := s.find(ctx, clinicianID, childID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, childID); err != nil {
		return storeError(err, "failed to delete child")
	}
	s.invalidate(ctx, clinicianID, childID)
	return nil
}

// Roster lists a clinician's children.
func (s *RecordStore) Roster(ctx context.Context, filter models.ChildFilter) ([]models.ChildSummary, int, error) {
	if err := requireClinician(filter.ClinicianID); err != nil {
		return nil, 0, err
	}
	children, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, storeError(err, "failed to list children")
	}
	return children, total, nil
}

// Records loads every full record of a clinician.
func (s *RecordStore) Records(ctx context.Context, clinicianID string) ([]models.ChildRecord, error) {
	if err := requireClinician(clinicianID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListRecords(ctx, clinicianID)
	if err != nil {
		return nil, storeError(err, "failed to load caseload")
	}
	return records, nil
}

// OnInvalidate registers fn to run after a write has dropped cached readiness.
func (s *RecordStore) OnInvalidate(fn func(clinicianID string)) {
	s.afterInvalidate = fn
}

func (s *RecordStore) invalidate(ctx context.Context, clinicianID, childID string) {
	if !s.cache.Enabled() {
		return
	}
	s.cache.Invalidate(ctx, cache.ChildReadinessKey(childID), cache.DashboardKey(clinicianID))
	if s.afterInvalidate != nil {
		s.afterInvalidate(clinicianID)
	}
}
