package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
)

const (
	// LowDomainThreshold is the highest score that still triggers goal generation.
	LowDomainThreshold = 50
	minGoalsPerDomain  = 3
	maxGoalsPerDomain  = 5
	extensionGoals     = 3
)

// RandomSource draws integers in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// sampleTemplates draws k distinct templates without replacement.
func sampleTemplates(rng RandomSource, templates []models.GoalTemplate, k int) []models.GoalTemplate {
	pool := append([]models.GoalTemplate(nil), templates...)
	if k > len(pool) {
		k = len(pool)
	}
	out := make([]models.GoalTemplate, 0, k)
	for i := 0; i < k; i++ {
		idx := rng.IntN(len(pool))
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}

// LowDomains lists the domains scoring at or below the threshold, in domain order.
func LowDomains(scores map[models.Domain]int) []models.Domain {
	var low []models.Domain
	for _, d := range models.Domains() {
		if scores[d] <= LowDomainThreshold {
			low = append(low, d)
		}
	}
	return low
}

// BestDomain returns the strictly highest scoring domain; ties keep domain order.
func BestDomain(scores map[models.Domain]int) models.Domain {
	domains := models.Domains()
	best := domains[0]
	for _, d := range domains[1:] {
		if scores[d] > scores[best] {
			best = d
		}
	}
	return best
}

// GenerateGoals builds a fresh goal set from finalized scores and the note
// describing it.
func (e *Engine) GenerateGoals(scores map[models.Domain]int, now time.Time) ([]models.Goal, string) {
	var goals []models.Goal
	var parts []string

	low := LowDomains(scores)
	for _, d := range low {
		k := minGoalsPerDomain + e.rng.IntN(maxGoalsPerDomain-minGoalsPerDomain+1)
		picks := sampleTemplates(e.rng, e.catalog.Templates(d), k)
		parts = append(parts, fmt.Sprintf("%s: %d goals", d, len(picks)))
		goals = append(goals, e.instantiate(d, picks, now)...)
	}

	if len(low) == 0 {
		best := BestDomain(scores)
		picks := sampleTemplates(e.rng, e.catalog.Templates(best), extensionGoals)
		parts = append(parts, fmt.Sprintf("%s: %d extension goals", best, len(picks)))
		goals = append(goals, e.instantiate(best, picks, now)...)
	}

	return goals, "Auto-added goals → " + strings.Join(parts, ", ")
}

func (e *Engine) instantiate(domain models.Domain, templates []models.GoalTemplate, now time.Time) []models.Goal {
	goals := make([]models.Goal, 0, len(templates))
	for _, tpl := range templates {
		goals = append(goals, models.Goal{
			ID:          e.newID(),
			Domain:      domain,
			Condition:   tpl.Condition,
			Behavior:    tpl.Behavior,
			Criteria:    tpl.Criteria,
			MasteryRule: tpl.MasteryRule,
			Status:      models.GoalStatusActive,
			Sessions:    []models.Session{},
			CreatedAt:   now,
		})
	}
	return goals
}
