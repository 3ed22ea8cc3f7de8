package models

import "time"

// ChildRecord is the unit of storage: everything the engine knows about one child.
type ChildRecord struct {
	ID               string           `json:"id"`
	ClinicianID      string           `json:"clinician_id"`
	Name             string           `json:"name"`
	Age              int              `json:"age"`
	Grade            string           `json:"grade"`
	Assessments      []Assessment     `json:"assessments"`
	Goals            []Goal           `json:"goals"`
	PastGoals        []GoalArchive    `json:"past_goals"`
	BehaviorLogs     []BehaviorLog    `json:"behavior_logs"`
	Reinforcers      []Reinforcer     `json:"reinforcers"`
	ReadinessHistory []ReadinessPoint `json:"readiness_history"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ChildSummary is the roster view of a child record.
type ChildSummary struct {
	ID          string    `db:"id" json:"id"`
	ClinicianID string    `db:"clinician_id" json:"clinician_id"`
	Name        string    `db:"name" json:"name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ChildFilter narrows roster listings.
type ChildFilter struct {
	ClinicianID string
	Search      string
	Page        int
	PageSize    int
}

// CreateChildRequest is the payload for adding a child to the roster.
type CreateChildRequest struct {
	Name  string `json:"name" validate:"required,max=150"`
	Age   int    `json:"age" validate:"required,min=1,max=30"`
	Grade string `json:"grade" validate:"required,max=50"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
