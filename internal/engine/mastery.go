package engine

import (
	"time"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

const (
	// MasteryWindow is how many trailing sessions decide mastery.
	MasteryWindow = 3
	// MasteryAccuracy is the minimum accuracy of every session in the window.
	MasteryAccuracy = 80
)

// AccuracyPercent is round(100 * correct / total).
func AccuracyPercent(correct, total int) int {
	return roundHalfUp(100 * float64(correct) / float64(total))
}

// NewSession validates trial counts and builds the session to append.
func NewSession(in models.SessionInput, now time.Time) (models.Session, error) {
	if in.TrialsTotal == nil {
		return models.Session{}, appErrors.Validation("trials_total is required")
	}
	total := *in.TrialsTotal
	correct := 0
	if in.TrialsCorrect != nil {
		correct = *in.TrialsCorrect
	}
	if total <= 0 {
		return models.Session{}, appErrors.Validation("trials_total must be greater than zero")
	}
	if correct < 0 {
		return models.Session{}, appErrors.Validation("trials_correct must not be negative")
	}
	if correct > total {
		return models.Session{}, appErrors.Validation("trials_correct cannot exceed trials_total")
	}
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	return models.Session{
		Date:            date,
		TrialsCorrect:   correct,
		TrialsTotal:     total,
		AccuracyPercent: AccuracyPercent(correct, total),
		Notes:           in.Notes,
	}, nil
}

// MeetsMastery reports whether the last three sessions are all at or above 80%.
func MeetsMastery(sessions []models.Session) bool {
	if len(sessions) < MasteryWindow {
		return false
	}
	for _, s := range sessions[len(sessions)-MasteryWindow:] {
		if s.AccuracyPercent < MasteryAccuracy {
			return false
		}
	}
	return true
}

// AppendSession adds a session to the goal and promotes it to Mastered when
// the trailing window qualifies. It never demotes. The return value reports a
// promotion made by this call.
func AppendSession(goal *models.Goal, session models.Session) bool {
	goal.Sessions = append(goal.Sessions, session)
	if goal.Status != models.GoalStatusMastered && MeetsMastery(goal.Sessions) {
		goal.Status = models.GoalStatusMastered
		return true
	}
	return false
}
