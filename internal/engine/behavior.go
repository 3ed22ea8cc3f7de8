package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

const (
	// PenaltyWindow is how many trailing logs feed the penalty.
	PenaltyWindow = 7
	// MaxPenalty caps the behavior burden deduction.
	MaxPenalty = 20
	// MaxFrequency bounds the count recorded by one behavior log.
	MaxFrequency = 10000
)

// BehaviorBurdenPenalty pools the frequencies of the last seven logs, whatever
// their type, and scales the average so 10 per entry saturates at 20 points.
func BehaviorBurdenPenalty(logs []models.BehaviorLog) int {
	if len(logs) == 0 {
		return 0
	}
	window := logs
	if len(window) > PenaltyWindow {
		window = window[len(window)-PenaltyWindow:]
	}
	sum := 0.0
	for _, l := range window {
		sum += float64(l.Frequency)
	}
	avg := sum / float64(len(window))
	penalty := roundHalfUp(avg / 10 * MaxPenalty)
	switch {
	case penalty < 0:
		return 0
	case penalty > MaxPenalty:
		return MaxPenalty
	}
	return penalty
}

// NewBehaviorLog validates a request and builds the log entry.
func NewBehaviorLog(req models.BehaviorLogRequest, now time.Time) (models.BehaviorLog, error) {
	kind := strings.TrimSpace(req.Type)
	if kind == "" {
		return models.BehaviorLog{}, appErrors.Validation("type is required")
	}
	if req.Frequency == nil {
		return models.BehaviorLog{}, appErrors.Validation("frequency is required")
	}
	if *req.Frequency < 0 {
		return models.BehaviorLog{}, appErrors.Validation("frequency must not be negative")
	}
	if *req.Frequency > MaxFrequency {
		return models.BehaviorLog{}, appErrors.Validation(fmt.Sprintf("frequency must not exceed %d", MaxFrequency))
	}
	date := now
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}
	return models.BehaviorLog{
		Date:                date,
		Type:                kind,
		Frequency:           *req.Frequency,
		Antecedent:          req.Antecedent,
		BehaviorDescription: req.BehaviorDescription,
		Consequence:         req.Consequence,
	}, nil
}
