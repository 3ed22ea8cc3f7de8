package dto

import "time"

// ChildReadiness is one bar of the readiness-by-child chart.
type ChildReadiness struct {
	ChildID string `json:"child_id"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Level   string `json:"level"`
}

// GoalMix counts goals by status across a caseload.
type GoalMix struct {
	Mastered    int `json:"mastered"`
	Active      int `json:"active"`
	Maintenance int `json:"maintenance"`
}

// ClinicianDashboard summarises a clinician's caseload.
type ClinicianDashboard struct {
	ClinicianID          string           `json:"clinician_id"`
	TotalChildren        int              `json:"total_children"`
	ActiveGoals          int              `json:"active_goals"`
	MasteredGoals        int              `json:"mastered_goals"`
	CompletedAssessments int              `json:"completed_assessments"`
	AverageReadiness     int              `json:"average_readiness"`
	ReadinessByChild     []ChildReadiness `json:"readiness_by_child"`
	GoalMix              GoalMix          `json:"goal_mix"`
	GeneratedAt          time.Time        `json:"generated_at"`
}
