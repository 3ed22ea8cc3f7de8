package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

const (
	// DefaultTopReinforcers is the size of the "top reinforcers" list.
	DefaultTopReinforcers = 3
	// MaxTrialsPerEntry bounds the attempts recorded in one reinforcer entry.
	MaxTrialsPerEntry = 10000
	// MaxTotalAttempts bounds the running attempt count of one reinforcer.
	MaxTotalAttempts = math.MaxInt32
)

func ratePercent(successes, attempts int) int {
	return roundHalfUp(100 * float64(successes) / float64(attempts))
}

// MergeReinforcer folds new trials into list, matching names case-insensitively.
// The input slice is not modified.
func MergeReinforcer(list []models.Reinforcer, name string, successes, attempts int) ([]models.Reinforcer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Validation("name is required")
	}
	if attempts <= 0 {
		return nil, appErrors.Validation("attempts must be greater than zero")
	}
	if successes < 0 {
		return nil, appErrors.Validation("successes must not be negative")
	}
	if successes > attempts {
		return nil, appErrors.Validation("successes cannot exceed attempts")
	}
	if attempts > MaxTrialsPerEntry {
		return nil, appErrors.Validation(fmt.Sprintf("attempts must not exceed %d", MaxTrialsPerEntry))
	}

	out := append([]models.Reinforcer(nil), list...)
	for i := range out {
		if strings.EqualFold(out[i].Name, name) {
			if out[i].Attempts > MaxTotalAttempts-attempts {
				return nil, appErrors.Validation("reinforcer " + out[i].Name + " has reached its attempt limit")
			}
			out[i].Successes += successes
			out[i].Attempts += attempts
			out[i].RatePercent = ratePercent(out[i].Successes, out[i].Attempts)
			return out, nil
		}
	}
	return append(out, models.Reinforcer{
		Name:        name,
		Successes:   successes,
		Attempts:    attempts,
		RatePercent: ratePercent(successes, attempts),
	}), nil
}

// RankReinforcers sorts by rate descending, keeping insertion order on ties,
// and truncates to n. n <= 0 uses the default of three.
func RankReinforcers(list []models.Reinforcer, n int) []models.Reinforcer {
	if n <= 0 {
		n = DefaultTopReinforcers
	}
	ranked := append([]models.Reinforcer(nil), list...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RatePercent > ranked[j].RatePercent
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
