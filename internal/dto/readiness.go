package dto

import (
	"time"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
)

// ChildReadinessResponse is the readiness breakdown of one child.
type ChildReadinessResponse struct {
	ChildID string `json:"child_id"`
	models.ReadinessSummary
	GeneratedAt time.Time `json:"generated_at"`
}

// ReadinessHistoryResponse is the readiness timeline of one child.
type ReadinessHistoryResponse struct {
	ChildID string                  `json:"child_id"`
	Points  []models.ReadinessPoint `json:"points"`
}

// GoalView decorates a goal with its composed statement.
type GoalView struct {
	models.Goal
	Statement string `json:"statement"`
}

// NewGoalView renders the statement of g for the named child.
func NewGoalView(g models.Goal, childName string) GoalView {
	return GoalView{Goal: g, Statement: g.Statement(childName)}
}
