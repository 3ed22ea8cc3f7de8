package engine

import "github.com/noah-isme/clinic-readiness-api/internal/models"

// GoalMasteryPercent is the share of mastered goals, 0 for an empty set.
func GoalMasteryPercent(goals []models.Goal) int {
	if len(goals) == 0 {
		return 0
	}
	mastered := 0
	for _, g := range goals {
		if g.Status == models.GoalStatusMastered {
			mastered++
		}
	}
	return roundHalfUp(100 * float64(mastered) / float64(len(goals)))
}

// CombinedBase weights goal mastery at 60% and the assessment at 40%.
func CombinedBase(goalPct, assessPct int) int {
	return roundHalfUp(float64(goalPct)*0.6 + float64(assessPct)*0.4)
}

// CombinedReadiness subtracts the behavior penalty from the base, never below 0.
func CombinedReadiness(goalPct, assessPct int, logs []models.BehaviorLog) int {
	score := CombinedBase(goalPct, assessPct) - BehaviorBurdenPenalty(logs)
	if score < 0 {
		return 0
	}
	return score
}

// ReadinessLevel buckets a readiness percent.
func ReadinessLevel(pct int) string {
	switch {
	case pct >= 80:
		return models.ReadinessReady
	case pct >= 50:
		return models.ReadinessEmerging
	default:
		return models.ReadinessNotReady
	}
}

// LatestFinalizedPercent is the overall percent of the newest finalized
// assessment, or 0. Drafts never count.
func LatestFinalizedPercent(assessments []models.Assessment) int {
	for i := len(assessments) - 1; i >= 0; i-- {
		if !assessments[i].IsDraft {
			return assessments[i].OverallPercent
		}
	}
	return 0
}

// Summarize computes the full readiness breakdown for a child.
func Summarize(child *models.ChildRecord) models.ReadinessSummary {
	goalPct := GoalMasteryPercent(child.Goals)
	assessPct := LatestFinalizedPercent(child.Assessments)
	penalty := BehaviorBurdenPenalty(child.BehaviorLogs)
	combined := CombinedReadiness(goalPct, assessPct, child.BehaviorLogs)
	return models.ReadinessSummary{
		GoalPercent:       goalPct,
		AssessmentPercent: assessPct,
		Penalty:           penalty,
		CombinedPercent:   combined,
		Level:             ReadinessLevel(combined),
	}
}

// AverageReadiness is the rounded mean of several readiness scores, 0 when empty.
func AverageReadiness(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return roundHalfUp(float64(sum) / float64(len(scores)))
}
