package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

// Engine applies readiness rules to a single child record. It holds no
// per-child state; callers serialize access to a record.
type Engine struct {
	catalog *Catalog
	rng     RandomSource
	now     func() time.Time
	newID   func() string
}

// EngineOption customises engine collaborators.
type EngineOption func(*Engine)

// WithRandomSource overrides the template sampler's random source.
func WithRandomSource(rng RandomSource) EngineOption {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithClock overrides the engine clock.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides goal and assessment id generation.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// New constructs an engine. A nil catalog loads the embedded one.
func New(catalog *Catalog, opts ...EngineOption) *Engine {
	if catalog == nil {
		catalog = MustLoadCatalog()
	}
	e := &Engine{
		catalog: catalog,
		rng:     globalSource{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog exposes the static question bank and goal library.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// openDraft returns the index of the trailing draft assessment or -1.
func openDraft(child *models.ChildRecord) int {
	n := len(child.Assessments)
	if n > 0 && child.Assessments[n-1].IsDraft {
		return n - 1
	}
	return -1
}

func (e *Engine) normalizeAnswer(q models.Question, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	switch q.Kind {
	case models.QuestionYesNo:
		yn, ok := normalizeYesNo(value)
		if !ok {
			return "", appErrors.Validation("answer to " + q.ID + " must be Yes or No")
		}
		return yn, nil
	case models.QuestionScale:
		if _, ok := parseScale(value); !ok {
			return "", appErrors.Validation("answer to " + q.ID + " must be an integer from 1 to 5")
		}
	}
	return value, nil
}

// SetResponse records one answer on the open draft, creating the draft when
// none is open, and rescores it. An empty value clears the answer.
func (e *Engine) SetResponse(child *models.ChildRecord, domainName, questionID, value string) (*models.Assessment, error) {
	domain, ok := models.ParseDomain(domainName)
	if !ok {
		return nil, appErrors.Validation("unknown domain " + domainName)
	}
	q, ok := e.catalog.Question(domain, questionID)
	if !ok {
		return nil, appErrors.Validation("unknown question " + questionID + " in " + string(domain))
	}
	answer, err := e.normalizeAnswer(q, value)
	if err != nil {
		return nil, err
	}

	idx := openDraft(child)
	if idx < 0 {
		child.Assessments = append(child.Assessments, models.Assessment{
			ID:        e.newID(),
			Date:      e.now(),
			IsDraft:   true,
			Responses: map[models.Domain]map[string]string{},
		})
		idx = len(child.Assessments) - 1
	}
	draft := &child.Assessments[idx]
	if draft.Responses == nil {
		draft.Responses = map[models.Domain]map[string]string{}
	}
	if answer == "" {
		delete(draft.Responses[domain], questionID)
		if len(draft.Responses[domain]) == 0 {
			delete(draft.Responses, domain)
		}
	} else {
		if draft.Responses[domain] == nil {
			draft.Responses[domain] = map[string]string{}
		}
		draft.Responses[domain][questionID] = answer
	}
	e.catalog.Rescore(draft)
	return draft, nil
}

// FinalizeAssessment closes the open draft, replaces the goal set with a
// generated one, archives the previous goals and appends a readiness point.
func (e *Engine) FinalizeAssessment(child *models.ChildRecord) (*models.FinalizeResult, error) {
	idx := openDraft(child)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNoOp, "no draft assessment to finalize")
	}
	now := e.now()

	assessment := child.Assessments[idx]
	e.catalog.Rescore(&assessment)
	assessment.IsDraft = false

	goals, note := e.GenerateGoals(assessment.Scores, now)
	assessment.Notes = note

	previous := child.Goals
	if previous == nil {
		previous = []models.Goal{}
	}
	point := models.ReadinessPoint{
		Date:  now,
		Score: CombinedReadiness(GoalMasteryPercent(goals), assessment.OverallPercent, child.BehaviorLogs),
	}

	child.Assessments[idx] = assessment
	child.PastGoals = append(child.PastGoals, models.GoalArchive{Date: now, Goals: previous})
	child.Goals = goals
	child.ReadinessHistory = append(child.ReadinessHistory, point)

	return &models.FinalizeResult{
		Assessments:    child.Assessments,
		Goals:          child.Goals,
		PastGoals:      child.PastGoals,
		ReadinessPoint: point,
	}, nil
}

func findGoal(child *models.ChildRecord, goalID string) (*models.Goal, error) {
	for i := range child.Goals {
		if child.Goals[i].ID == goalID {
			return &child.Goals[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
}

// RecordSession appends trial data to a goal and runs the mastery check. The
// flag reports whether this session promoted the goal to Mastered.
func (e *Engine) RecordSession(child *models.ChildRecord, goalID string, in models.SessionInput) (*models.Goal, bool, error) {
	goal, err := findGoal(child, goalID)
	if err != nil {
		return nil, false, err
	}
	session, err := NewSession(in, e.now())
	if err != nil {
		return nil, false, err
	}
	promoted := AppendSession(goal, session)
	return goal, promoted, nil
}

// RecordBehaviorLog appends a behavior entry and a readiness point reflecting it.
func (e *Engine) RecordBehaviorLog(child *models.ChildRecord, req models.BehaviorLogRequest) (*models.BehaviorLogResult, error) {
	now := e.now()
	entry, err := NewBehaviorLog(req, now)
	if err != nil {
		return nil, err
	}
	child.BehaviorLogs = append(child.BehaviorLogs, entry)

	point := models.ReadinessPoint{Date: now, Score: Summarize(child).CombinedPercent}
	child.ReadinessHistory = append(child.ReadinessHistory, point)

	return &models.BehaviorLogResult{BehaviorLogs: child.BehaviorLogs, ReadinessPoint: point}, nil
}

// RecordReinforcer merges reinforcer trials into the child's table.
func (e *Engine) RecordReinforcer(child *models.ChildRecord, name string, successes, attempts int) ([]models.Reinforcer, error) {
	merged, err := MergeReinforcer(child.Reinforcers, name, successes, attempts)
	if err != nil {
		return nil, err
	}
	child.Reinforcers = merged
	return merged, nil
}

// TopReinforcers returns the best performing reinforcers.
func (e *Engine) TopReinforcers(child *models.ChildRecord, n int) []models.Reinforcer {
	return RankReinforcers(child.Reinforcers, n)
}

// ComputeReadiness is a read-only readiness breakdown.
func (e *Engine) ComputeReadiness(child *models.ChildRecord) models.ReadinessSummary {
	return Summarize(child)
}

// UpdateGoal applies clinician edits to a goal's text fields and flags.
func (e *Engine) UpdateGoal(child *models.ChildRecord, goalID string, patch models.GoalPatch) (*models.Goal, error) {
	goal, err := findGoal(child, goalID)
	if err != nil {
		return nil, err
	}
	fields := []struct {
		name  string
		value *string
		dest  *string
	}{
		{"condition", patch.Condition, &goal.Condition},
		{"behavior", patch.Behavior, &goal.Behavior},
		{"criteria", patch.Criteria, &goal.Criteria},
		{"mastery_rule", patch.MasteryRule, &goal.MasteryRule},
	}
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return nil, appErrors.Validation(f.name + " cannot be empty")
		}
	}
	for _, f := range fields {
		if f.value != nil {
			*f.dest = strings.TrimSpace(*f.value)
		}
	}
	if patch.Generalization != nil {
		goal.Generalization = *patch.Generalization
	}
	if patch.MaintenanceFlag != nil {
		goal.MaintenanceFlag = *patch.MaintenanceFlag
	}
	return goal, nil
}

// SetGoalStatus is the clinician's manual status writer. The automatic
// mastery check may overwrite it on the next recorded session.
func (e *Engine) SetGoalStatus(child *models.ChildRecord, goalID string, status models.GoalStatus) (*models.Goal, error) {
	if !status.Valid() {
		return nil, appErrors.Validation("unknown goal status " + string(status))
	}
	goal, err := findGoal(child, goalID)
	if err != nil {
		return nil, err
	}
	goal.Status = status
	return goal, nil
}
