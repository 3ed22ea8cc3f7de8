package models

import "time"

// Assessment captures one run of the readiness questionnaire.
type Assessment struct {
	ID             string                       `json:"id"`
	Date           time.Time                    `json:"date"`
	IsDraft        bool                         `json:"is_draft"`
	Responses      map[Domain]map[string]string `json:"responses"`
	Scores         map[Domain]int               `json:"scores"`
	OverallPercent int                          `json:"overall_percent"`
	Notes          string                       `json:"notes,omitempty"`
}

// SetResponseRequest records or clears a single answer on the open draft.
type SetResponseRequest struct {
	Domain     string `json:"domain" validate:"required"`
	QuestionID string `json:"question_id" validate:"required"`
	Value      string `json:"value"`
}

// FinalizeResult is returned when a draft assessment is finalized.
type FinalizeResult struct {
	Assessments    []Assessment   `json:"assessments"`
	Goals          []Goal         `json:"goals"`
	PastGoals      []GoalArchive  `json:"past_goals"`
	ReadinessPoint ReadinessPoint `json:"readiness_point"`
}
