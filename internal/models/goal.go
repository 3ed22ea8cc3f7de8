package models

import (
	"fmt"
	"time"
)

// GoalStatus enumerates goal lifecycle states.
type GoalStatus string

const (
	GoalStatusActive      GoalStatus = "Active"
	GoalStatusMastered    GoalStatus = "Mastered"
	GoalStatusMaintenance GoalStatus = "Maintenance"
)

// Valid reports whether s is a known status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusMastered, GoalStatusMaintenance:
		return true
	}
	return false
}

// Goal is a treatment goal owned by a single child.
type Goal struct {
	ID              string     `json:"id"`
	Domain          Domain     `json:"domain"`
	Condition       string     `json:"condition"`
	Behavior        string     `json:"behavior"`
	Criteria        string     `json:"criteria"`
	MasteryRule     string     `json:"mastery_rule"`
	Status          GoalStatus `json:"status"`
	Generalization  bool       `json:"generalization"`
	MaintenanceFlag bool       `json:"maintenance_flag"`
	Sessions        []Session  `json:"sessions"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Statement renders the goal as written in the child's plan.
func (g Goal) Statement(childName string) string {
	name := childName
	if name == "" {
		name = "the student"
	}
	return fmt.Sprintf("By the next annual ARD, %s, %s will %s, %s, %s.",
		g.Condition, name, g.Behavior, g.Criteria, g.MasteryRule)
}

// Session is one trial record appended to a goal.
type Session struct {
	Date            time.Time `json:"date"`
	TrialsCorrect   int       `json:"trials_correct"`
	TrialsTotal     int       `json:"trials_total"`
	AccuracyPercent int       `json:"accuracy_percent"`
	Notes           string    `json:"notes,omitempty"`
}

// SessionInput is the payload for recording a session. Pointers distinguish
// missing values from zero.
type SessionInput struct {
	Date          *time.Time `json:"date"`
	TrialsCorrect *int       `json:"trials_correct" validate:"omitempty,min=0"`
	TrialsTotal   *int       `json:"trials_total" validate:"required"`
	Notes         string     `json:"notes" validate:"max=2000"`
}

// GoalPatch carries clinician edits; nil fields are left untouched.
type GoalPatch struct {
	Condition       *string `json:"condition" validate:"omitempty,min=1"`
	Behavior        *string `json:"behavior" validate:"omitempty,min=1"`
	Criteria        *string `json:"criteria" validate:"omitempty,min=1"`
	MasteryRule     *string `json:"mastery_rule" validate:"omitempty,min=1"`
	Generalization  *bool   `json:"generalization"`
	MaintenanceFlag *bool   `json:"maintenance_flag"`
}

// GoalStatusRequest is the payload for a manual status change.
type GoalStatusRequest struct {
	Status GoalStatus `json:"status" validate:"required,oneof=Active Mastered Maintenance"`
}

// GoalArchive is a snapshot of a replaced goal set.
type GoalArchive struct {
	Date  time.Time `json:"date"`
	Goals []Goal    `json:"goals"`
}
