package models

import "time"

// Readiness levels.
const (
	ReadinessReady    = "Ready"
	ReadinessEmerging = "Emerging"
	ReadinessNotReady = "Not Ready"
)

// ReadinessPoint is one entry of a child's readiness timeline.
type ReadinessPoint struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// ReadinessSummary breaks down the combined readiness score.
type ReadinessSummary struct {
	GoalPercent       int    `json:"goal_percent"`
	AssessmentPercent int    `json:"assessment_percent"`
	Penalty           int    `json:"penalty"`
	CombinedPercent   int    `json:"combined_percent"`
	Level             string `json:"level"`
}
