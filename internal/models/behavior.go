package models

import "time"

// BehaviorLog is one observed behavior entry.
type BehaviorLog struct {
	Date                time.Time `json:"date"`
	Type                string    `json:"type"`
	Frequency           int       `json:"frequency"`
	Antecedent          string    `json:"antecedent,omitempty"`
	BehaviorDescription string    `json:"behavior_description,omitempty"`
	Consequence         string    `json:"consequence,omitempty"`
}

// BehaviorLogRequest is the payload for recording a behavior log.
type BehaviorLogRequest struct {
	Date                *time.Time `json:"date"`
	Type                string     `json:"type" validate:"required,max=100"`
	Frequency           *int       `json:"frequency" validate:"required,min=0,max=10000"`
	Antecedent          string     `json:"antecedent" validate:"max=2000"`
	BehaviorDescription string     `json:"behavior_description" validate:"max=2000"`
	Consequence         string     `json:"consequence" validate:"max=2000"`
}

// BehaviorLogResult is returned after a behavior log is recorded.
type BehaviorLogResult struct {
	BehaviorLogs   []BehaviorLog  `json:"behavior_logs"`
	ReadinessPoint ReadinessPoint `json:"readiness_point"`
}

// BehaviorOverview lists a child's logs together with the current penalty.
type BehaviorOverview struct {
	BehaviorLogs []BehaviorLog `json:"behavior_logs"`
	Penalty      int           `json:"penalty"`
}
