package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	"github.com/noah-isme/clinic-readiness-api/pkg/cache"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

func newReadinessFixture(t *testing.T) (*ReadinessService, *fakeChildRepo, *fakeCacheRepo) {
	t.Helper()
	repo := newFakeChildRepo(
		models.ChildRecord{
			ID: "c1", ClinicianID: "clin", Name: "Ava",
			Assessments: []models.Assessment{{OverallPercent: 80}, {OverallPercent: 10, IsDraft: true}},
			Goals: []models.Goal{
				{ID: "g1", Status: models.GoalStatusMastered},
				{ID: "g2", Status: models.GoalStatusActive},
			},
			ReadinessHistory: []models.ReadinessPoint{{Score: 40}, {Score: 62}},
		},
		models.ChildRecord{
			ID: "c2", ClinicianID: "clin", Name: "Ben",
			Goals:        []models.Goal{{ID: "g3", Status: models.GoalStatusMaintenance}},
			BehaviorLogs: []models.BehaviorLog{{Type: "SIB", Frequency: 10}},
		},
		models.ChildRecord{ID: "c3", ClinicianID: "someone-else", Name: "Cy"},
	)
	cacheRepo := newFakeCacheRepo()
	cacheSvc := NewCacheService(cacheRepo, NewMetricsService(), 0, nil, true)
	store := NewRecordStore(repo, cacheSvc, nil)
	return NewReadinessService(store, newTestEngine(), cacheSvc, nil, ReadinessServiceConfig{}), repo, cacheRepo
}

func TestReadinessChildUsesCache(t *testing.T) {
	svc, _, cacheRepo := newReadinessFixture(t)
	ctx := context.Background()

	resp, hit, err := svc.Child(ctx, "clin", "c1")
	require.NoError(t, err)
	assert.False(t, hit)
	// goal 50, assessment 80 (draft ignored): round(30 + 32) = 62
	assert.Equal(t, 50, resp.GoalPercent)
	assert.Equal(t, 80, resp.AssessmentPercent)
	assert.Equal(t, 62, resp.CombinedPercent)
	assert.Equal(t, models.ReadinessEmerging, resp.Level)
	assert.Contains(t, cacheRepo.data, cache.ChildReadinessKey("c1"))

	cached, hit, err := svc.Child(ctx, "clin", "c1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, resp.CombinedPercent, cached.CombinedPercent)

	_, _, err = svc.Child(ctx, "intruder", "c1")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestReadinessCacheFailureFallsThrough(t *testing.T) {
	svc, _, cacheRepo := newReadinessFixture(t)
	cacheRepo.getErr = errBoom

	resp, hit, err := svc.Child(context.Background(), "clin", "c1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 62, resp.CombinedPercent)
}

func TestReadinessHistory(t *testing.T) {
	svc, _, _ := newReadinessFixture(t)

	history, err := svc.History(context.Background(), "clin", "c1")
	require.NoError(t, err)
	require.Len(t, history.Points, 2)
	assert.Equal(t, 62, history.Points[1].Score)

	empty, err := svc.History(context.Background(), "clin", "c2")
	require.NoError(t, err)
	assert.NotNil(t, empty.Points)
}

func TestDashboardComposition(t *testing.T) {
	svc, _, _ := newReadinessFixture(t)
	ctx := context.Background()

	dash, hit, err := svc.Dashboard(ctx, "clin")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, dash.TotalChildren)
	assert.Equal(t, 1, dash.ActiveGoals)
	assert.Equal(t, 1, dash.MasteredGoals)
	assert.Equal(t, 1, dash.GoalMix.Maintenance)
	assert.Equal(t, 1, dash.CompletedAssessments)
	require.Len(t, dash.ReadinessByChild, 2)
	assert.Equal(t, 62, dash.ReadinessByChild[0].Score)
	// Ben: no mastered goals, no assessment, penalty 20 -> 0
	assert.Equal(t, 0, dash.ReadinessByChild[1].Score)
	assert.Equal(t, 31, dash.AverageReadiness)

	_, hit, err = svc.Dashboard(ctx, "clin")
	require.NoError(t, err)
	assert.True(t, hit)

	_, _, err = svc.Dashboard(ctx, "")
	assert.True(t, appErrors.IsValidation(err))
}

func TestDashboardInvalidatedByMutation(t *testing.T) {
	svc, repo, _ := newReadinessFixture(t)
	ctx := context.Background()
	behaviors := NewBehaviorService(svc.store, svc.engine, nil, nil, nil)

	_, _, err := svc.Dashboard(ctx, "clin")
	require.NoError(t, err)

	_, err = behaviors.Record(ctx, "clin", "c1", models.BehaviorLogRequest{Type: "Tantrum", Frequency: intPtr(10)})
	require.NoError(t, err)
	assert.Len(t, repo.get(t, "c1").BehaviorLogs, 1)

	dash, hit, err := svc.Dashboard(ctx, "clin")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42, dash.ReadinessByChild[0].Score)
}

func TestDashboardEmptyCaseload(t *testing.T) {
	svc, _, _ := newReadinessFixture(t)

	dash, _, err := svc.Dashboard(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, dash.TotalChildren)
	assert.Zero(t, dash.AverageReadiness)
	assert.NotNil(t, dash.ReadinessByChild)
}

func TestReadinessChildCacheWriteWaitsForConcurrentWrite(t *testing.T) {
	svc, _, cacheRepo := newReadinessFixture(t)
	key := cache.ChildReadinessKey("c1")

	var once sync.Once
	writeDone := make(chan error, 1)
	wroteDuringSet := false
	cacheRepo.beforeSet = func(string) {
		once.Do(func() {
			go func() {
				_, err := svc.store.Mutate(context.Background(), "clin", "c1", func(r *models.ChildRecord) error {
					r.Goals[1].Status = models.GoalStatusMastered
					return nil
				})
				writeDone <- err
			}()
			select {
			case err := <-writeDone:
				wroteDuringSet = true
				writeDone <- err
			case <-time.After(50 * time.Millisecond):
			}
		})
	}

	_, hit, err := svc.Child(context.Background(), "clin", "c1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, wroteDuringSet, "write must wait for the readiness entry")

	require.NoError(t, <-writeDone)
	assert.False(t, cacheRepo.has(key), "entry computed before the write must be dropped")

	fresh, hit, err := svc.Child(context.Background(), "clin", "c1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 100, fresh.GoalPercent)
}
