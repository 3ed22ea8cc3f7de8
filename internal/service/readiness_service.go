package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/clinic-readiness-api/internal/dto"
	"github.com/noah-isme/clinic-readiness-api/internal/engine"
	"github.com/noah-isme/clinic-readiness-api/internal/models"
	"github.com/noah-isme/clinic-readiness-api/pkg/cache"
)

// ReadinessServiceConfig tunes readiness caching.
type ReadinessServiceConfig struct {
	ChildTTL     time.Duration
	DashboardTTL time.Duration
}

// ReadinessService answers readiness, history and dashboard queries.
type ReadinessService struct {
	store  *RecordStore
	engine *engine.Engine
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
	cfg    ReadinessServiceConfig
}

// cachedReadiness keeps the owner next to the payload so hits can be
// authorised without loading the record.
type cachedReadiness struct {
	ClinicianID string                     `json:"clinician_id"`
	Readiness   dto.ChildReadinessResponse `json:"readiness"`
}

// NewReadinessService constructs the readiness service. cacheSvc may be nil.
func NewReadinessService(store *RecordStore, eng *engine.Engine, cacheSvc *CacheService, logger *zap.Logger, cfg ReadinessServiceConfig) *ReadinessService {
	if cfg.ChildTTL <= 0 {
		cfg.ChildTTL = 5 * time.Minute
	}
	if cfg.DashboardTTL <= 0 {
		cfg.DashboardTTL = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadinessService{store: store, engine: eng, cache: cacheSvc, logger: logger, now: time.Now, cfg: cfg}
}

// Child returns the readiness breakdown of a child and whether it came from cache.
func (s *ReadinessService) Child(ctx context.Context, clinicianID, childID string) (*dto.ChildReadinessResponse, bool, error) {
	key := cache.ChildReadinessKey(childID)
	var cached cachedReadiness
	if s.cache.Get(ctx, key, &cached) && cached.ClinicianID == clinicianID {
		return &cached.Readiness, true, nil
	}

	// The entry is written under the child's lock; a write that lands after
	// the load invalidates after this Set, never before it.
	var resp dto.ChildReadinessResponse
	err := s.store.View(ctx, clinicianID, childID, func(record *models.ChildRecord) error {
		resp = dto.ChildReadinessResponse{
			ChildID:          record.ID,
			ReadinessSummary: s.engine.ComputeReadiness(record),
			GeneratedAt:      s.now().UTC(),
		}
		s.cache.Set(ctx, key, cachedReadiness{ClinicianID: clinicianID, Readiness: resp}, s.cfg.ChildTTL)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &resp, false, nil
}

// History returns the readiness timeline of a child.
func (s *ReadinessService) History(ctx context.Context, clinicianID, childID string) (*dto.ReadinessHistoryResponse, error) {
	record, err := s.store.Load(ctx, clinicianID, childID)
	if err != nil {
		return nil, err
	}
	points := record.ReadinessHistory
	if points == nil {
		points = []models.ReadinessPoint{}
	}
	return &dto.ReadinessHistoryResponse{ChildID: record.ID, Points: points}, nil
}

// Dashboard summarises the clinician's caseload.
func (s *ReadinessService) Dashboard(ctx context.Context, clinicianID string) (*dto.ClinicianDashboard, bool, error) {
	if err := requireClinician(clinicianID); err != nil {
		return nil, false, err
	}
	key := cache.DashboardKey(clinicianID)
	var cached dto.ClinicianDashboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	records, err := s.store.Records(ctx, clinicianID)
	if err != nil {
		return nil, false, err
	}
	dashboard := s.composeDashboard(clinicianID, records)
	s.cache.Set(ctx, key, dashboard, s.cfg.DashboardTTL)
	return dashboard, false, nil
}

func (s *ReadinessService) composeDashboard(clinicianID string, records []models.ChildRecord) *dto.ClinicianDashboard {
	dashboard := &dto.ClinicianDashboard{
		ClinicianID:      clinicianID,
		TotalChildren:    len(records),
		ReadinessByChild: make([]dto.ChildReadiness, 0, len(records)),
		GeneratedAt:      s.now().UTC(),
	}
	scores := make([]int, 0, len(records))
	for i := range records {
		record := &records[i]
		for _, g := range record.Goals {
			switch g.Status {
			case models.GoalStatusActive:
				dashboard.GoalMix.Active++
			case models.GoalStatusMastered:
				dashboard.GoalMix.Mastered++
			case models.GoalStatusMaintenance:
				dashboard.GoalMix.Maintenance++
			}
		}
		for _, a := range record.Assessments {
			if !a.IsDraft {
				dashboard.CompletedAssessments++
			}
		}
		summary := s.engine.ComputeReadiness(record)
		scores = append(scores, summary.CombinedPercent)
		dashboard.ReadinessByChild = append(dashboard.ReadinessByChild, dto.ChildReadiness{
			ChildID: record.ID,
			Name:    record.Name,
			Score:   summary.CombinedPercent,
			Level:   summary.Level,
		})
	}
	dashboard.ActiveGoals = dashboard.GoalMix.Active
	dashboard.MasteredGoals = dashboard.GoalMix.Mastered
	dashboard.AverageReadiness = engine.AverageReadiness(scores)
	return dashboard
}
