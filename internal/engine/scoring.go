package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
)

// roundHalfUp matches the rounding used for every percentage in the engine.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ScaleToPercent converts a 1-5 scale answer to a 0-100 point.
func ScaleToPercent(value int) int {
	return roundHalfUp(float64(value-1) / 4 * 100)
}

// normalizeYesNo returns "Yes" or "No" for any casing, or false.
func normalizeYesNo(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		return "Yes", true
	case "no":
		return "No", true
	}
	return "", false
}

func parseScale(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 || v > 5 {
		return 0, false
	}
	return v, true
}

// QuestionPoint maps one recorded answer to its 0-100 contribution. The second
// return value is false when the answer contributes nothing.
func QuestionPoint(q models.Question, answer string) (int, bool) {
	if strings.TrimSpace(answer) == "" {
		return 0, false
	}
	switch q.Kind {
	case models.QuestionYesNo:
		yn, ok := normalizeYesNo(answer)
		if !ok {
			return 0, false
		}
		if yn == "Yes" {
			return 100, true
		}
		return 0, true
	case models.QuestionScale:
		v, ok := parseScale(answer)
		if !ok {
			return 0, false
		}
		return ScaleToPercent(v), true
	case models.QuestionMultipleChoice:
		for _, opt := range q.Options {
			if opt.Value == answer {
				return opt.Score, true
			}
		}
	}
	return 0, false
}

// ScoreDomain is the rounded mean of the domain's contributed points, 0 when
// nothing was answered.
func (c *Catalog) ScoreDomain(domain models.Domain, answers map[string]string) int {
	total, count := 0, 0
	for _, q := range c.Questions(domain) {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		point, ok := QuestionPoint(q, answer)
		if !ok {
			continue
		}
		total += point
		count++
	}
	if count == 0 {
		return 0
	}
	return roundHalfUp(float64(total) / float64(count))
}

// Score computes per-domain scores and the overall percent for a response set.
func (c *Catalog) Score(responses map[models.Domain]map[string]string) (map[models.Domain]int, int) {
	scores := make(map[models.Domain]int, len(models.Domains()))
	sum := 0
	for _, d := range models.Domains() {
		s := c.ScoreDomain(d, responses[d])
		scores[d] = s
		sum += s
	}
	return scores, roundHalfUp(float64(sum) / float64(len(models.Domains())))
}

// Rescore recomputes an assessment's scores in place.
func (c *Catalog) Rescore(a *models.Assessment) {
	a.Scores, a.OverallPercent = c.Score(a.Responses)
}
