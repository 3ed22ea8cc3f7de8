package models

import "strings"

// Domain is one of the five developmental categories scored by an assessment.
type Domain string

const (
	DomainCommunication Domain = "Communication"
	DomainSocial        Domain = "Social"
	DomainAdaptive      Domain = "Adaptive"
	DomainAcademic      Domain = "Academic"
	DomainBehavior      Domain = "Behavior"
)

var domainOrder = []Domain{
	DomainCommunication,
	DomainSocial,
	DomainAdaptive,
	DomainAcademic,
	DomainBehavior,
}

// Domains returns every domain in display order.
func Domains() []Domain {
	out := make([]Domain, len(domainOrder))
	copy(out, domainOrder)
	return out
}

// ParseDomain resolves a domain name case-insensitively.
func ParseDomain(raw string) (Domain, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, d := range domainOrder {
		if strings.EqualFold(string(d), trimmed) {
			return d, true
		}
	}
	return "", false
}

// QuestionKind determines how an answer is converted into points.
type QuestionKind string

const (
	QuestionYesNo          QuestionKind = "yes_no"
	QuestionScale          QuestionKind = "scale_1_5"
	QuestionMultipleChoice QuestionKind = "multiple_choice"
)

// QuestionOption is a selectable multiple choice answer.
type QuestionOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Score int    `json:"score" yaml:"score"`
}

// Question is a static assessment item.
type Question struct {
	ID      string           `json:"id" yaml:"id"`
	Domain  Domain           `json:"domain" yaml:"domain"`
	Kind    QuestionKind     `json:"kind" yaml:"kind"`
	Text    string           `json:"text" yaml:"text"`
	Options []QuestionOption `json:"options,omitempty" yaml:"options,omitempty"`
}

// GoalTemplate is a goal library entry a generated goal is instantiated from.
type GoalTemplate struct {
	Condition   string `json:"condition" yaml:"condition"`
	Behavior    string `json:"behavior" yaml:"behavior"`
	Criteria    string `json:"criteria" yaml:"criteria"`
	MasteryRule string `json:"mastery_rule" yaml:"mastery"`
}
