package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

type workflow struct {
	repo        *fakeChildRepo
	store       *RecordStore
	children    *ChildService
	assessments *AssessmentService
	goals       *GoalService
	behaviors   *BehaviorService
	reinforcers *ReinforcerService
	metrics     *MetricsService
}

func newWorkflow() *workflow {
	repo := newFakeChildRepo()
	store := NewRecordStore(repo, nil, nil)
	eng := newTestEngine()
	metrics := NewMetricsService()
	return &workflow{
		repo:        repo,
		store:       store,
		children:    NewChildService(store, nil, nil),
		assessments: NewAssessmentService(store, eng, metrics, nil, nil),
		goals:       NewGoalService(store, eng, metrics, nil, nil),
		behaviors:   NewBehaviorService(store, eng, metrics, nil, nil),
		reinforcers: NewReinforcerService(store, eng, nil, nil),
		metrics:     metrics,
	}
}

func TestChildServiceCreateValidates(t *testing.T) {
	w := newWorkflow()

	_, err := w.children.Create(context.Background(), "clin", models.CreateChildRequest{Name: "  ", Age: 6, Grade: "K"})
	assert.True(t, appErrors.IsValidation(err))

	_, err = w.children.Create(context.Background(), "", models.CreateChildRequest{Name: "Ava", Age: 6, Grade: "K"})
	assert.True(t, appErrors.IsValidation(err))

	child, err := w.children.Create(context.Background(), "clin", models.CreateChildRequest{Name: " Ava ", Age: 6, Grade: "K"})
	require.NoError(t, err)
	assert.Equal(t, "Ava", child.Name)
	assert.NotEmpty(t, child.ID)

	list, pagination, err := w.children.List(context.Background(), models.ChildFilter{ClinicianID: "clin"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, pagination.TotalCount)
	assert.Equal(t, 20, pagination.PageSize)
}

func TestAssessmentFinalizeFlow(t *testing.T) {
	w := newWorkflow()
	ctx := context.Background()
	child, err := w.children.Create(ctx, "clin", models.CreateChildRequest{Name: "Ava", Age: 6, Grade: "K"})
	require.NoError(t, err)

	_, err = w.assessments.Finalize(ctx, "clin", child.ID)
	assert.True(t, appErrors.IsNoOp(err))

	draft, err := w.assessments.SetResponse(ctx, "clin", child.ID, models.SetResponseRequest{Domain: "Communication", QuestionID: "c1", Value: "Yes"})
	require.NoError(t, err)
	assert.True(t, draft.IsDraft)
	assert.Equal(t, 100, draft.Scores[models.DomainCommunication])

	_, err = w.assessments.SetResponse(ctx, "clin", child.ID, models.SetResponseRequest{Domain: "Communication"})
	assert.True(t, appErrors.IsValidation(err))

	result, err := w.assessments.Finalize(ctx, "clin", child.ID)
	require.NoError(t, err)
	// Communication is 100, the other four are low
	assert.Len(t, result.Goals, 12)
	for _, g := range result.Goals {
		assert.NotEqual(t, models.DomainCommunication, g.Domain)
	}
	assert.Equal(t, 8, result.ReadinessPoint.Score)

	stored := w.repo.get(t, child.ID)
	assert.Len(t, stored.Goals, 12)
	assert.Len(t, stored.ReadinessHistory, 1)
	assert.False(t, stored.Assessments[0].IsDraft)

	_, err = w.assessments.Finalize(ctx, "clin", child.ID)
	assert.True(t, appErrors.IsNoOp(err))
	assert.Len(t, w.repo.get(t, child.ID).ReadinessHistory, 1)

	list, err := w.assessments.List(ctx, "clin", child.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Len(t, w.assessments.Questions(), 12)
}

func TestGoalServiceSessionsAndStatus(t *testing.T) {
	w := newWorkflow()
	ctx := context.Background()
	require.NoError(t, w.repo.Save(ctx, &models.ChildRecord{
		ID: "c1", ClinicianID: "clin", Name: "Ben",
		Goals: []models.Goal{{ID: "g1", Domain: models.DomainSocial, Condition: "During free play", Behavior: "join a peer activity appropriately", Criteria: "in 4/5 opportunities", MasteryRule: "across 2 settings", Status: models.GoalStatusActive}},
	}))

	for i := 0; i < 3; i++ {
		got, err := w.goals.RecordSession(ctx, "clin", "c1", "g1", models.SessionInput{TrialsCorrect: intPtr(4), TrialsTotal: intPtr(5)})
		require.NoError(t, err)
		if i == 2 {
			assert.Equal(t, models.GoalStatusMastered, got.Status)
			assert.Equal(t, "By the next annual ARD, During free play, Ben will join a peer activity appropriately, in 4/5 opportunities, across 2 settings.", got.Statement)
		}
	}
	assert.Equal(t, float64(3), testutil.ToFloat64(w.metrics.sessionsRecorded))
	assert.Equal(t, float64(1), testutil.ToFloat64(w.metrics.goalsMastered))

	_, err := w.goals.RecordSession(ctx, "clin", "c1", "g1", models.SessionInput{TrialsCorrect: intPtr(6), TrialsTotal: intPtr(5)})
	assert.True(t, appErrors.IsValidation(err))
	_, err = w.goals.RecordSession(ctx, "clin", "c1", "g1", models.SessionInput{TrialsCorrect: intPtr(1)})
	assert.True(t, appErrors.IsValidation(err))
	assert.Len(t, w.repo.get(t, "c1").Goals[0].Sessions, 3)

	got, err := w.goals.SetStatus(ctx, "clin", "c1", "g1", models.GoalStatusRequest{Status: models.GoalStatusMaintenance})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusMaintenance, got.Status)

	_, err = w.goals.SetStatus(ctx, "clin", "c1", "g1", models.GoalStatusRequest{Status: "Paused"})
	assert.True(t, appErrors.IsValidation(err))

	behavior := "greet a peer"
	got, err = w.goals.Update(ctx, "clin", "c1", "g1", models.GoalPatch{Behavior: &behavior})
	require.NoError(t, err)
	assert.Equal(t, "greet a peer", got.Behavior)

	_, err = w.goals.Update(ctx, "clin", "c1", "nope", models.GoalPatch{Behavior: &behavior})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	goals, err := w.goals.List(ctx, "clin", "c1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Contains(t, goals[0].Statement, "Ben will greet a peer")

	archive, err := w.goals.Archive(ctx, "clin", "c1")
	require.NoError(t, err)
	assert.Empty(t, archive)
}

func TestBehaviorServiceRecordAndList(t *testing.T) {
	w := newWorkflow()
	ctx := context.Background()
	require.NoError(t, w.repo.Save(ctx, &models.ChildRecord{
		ID: "c1", ClinicianID: "clin",
		Assessments: []models.Assessment{{OverallPercent: 100}},
	}))

	result, err := w.behaviors.Record(ctx, "clin", "c1", models.BehaviorLogRequest{Type: "Elopement", Frequency: intPtr(5)})
	require.NoError(t, err)
	// base round(0.4*100) = 40, penalty 10
	assert.Equal(t, 30, result.ReadinessPoint.Score)

	_, err = w.behaviors.Record(ctx, "clin", "c1", models.BehaviorLogRequest{Type: "Elopement"})
	assert.True(t, appErrors.IsValidation(err))

	overview, err := w.behaviors.List(ctx, "clin", "c1")
	require.NoError(t, err)
	assert.Len(t, overview.BehaviorLogs, 1)
	assert.Equal(t, 10, overview.Penalty)
	assert.Len(t, w.repo.get(t, "c1").ReadinessHistory, 1)
}

func TestReinforcerServiceMergeAndTop(t *testing.T) {
	w := newWorkflow()
	ctx := context.Background()
	require.NoError(t, w.repo.Save(ctx, &models.ChildRecord{ID: "c1", ClinicianID: "clin"}))

	_, err := w.reinforcers.Record(ctx, "clin", "c1", models.ReinforcerRequest{Name: "Stickers", Successes: 3, Attempts: 4})
	require.NoError(t, err)
	list, err := w.reinforcers.Record(ctx, "clin", "c1", models.ReinforcerRequest{Name: "stickers", Successes: 2, Attempts: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 83, list[0].RatePercent)

	_, err = w.reinforcers.Record(ctx, "clin", "c1", models.ReinforcerRequest{Name: "Bubbles", Successes: 0, Attempts: 0})
	assert.True(t, appErrors.IsValidation(err))

	_, err = w.reinforcers.Record(ctx, "clin", "c1", models.ReinforcerRequest{Name: "iPad", Successes: 5, Attempts: 5})
	require.NoError(t, err)

	top, err := w.reinforcers.Top(ctx, "clin", "c1", 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "iPad", top[0].Name)
}
