package engine

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
)

// TemplatesPerDomain is the fixed size of each domain's goal library.
const TemplatesPerDomain = 5

//go:embed catalog/*.yaml
var catalogFS embed.FS

type questionGroup struct {
	Domain    models.Domain     `yaml:"domain"`
	Questions []models.Question `yaml:"questions"`
}

// Catalog holds the static question bank and goal library.
type Catalog struct {
	questions map[models.Domain][]models.Question
	templates map[models.Domain][]models.GoalTemplate
}

// LoadCatalog parses the embedded question bank and goal library.
func LoadCatalog() (*Catalog, error) {
	rawQuestions, err := catalogFS.ReadFile("catalog/questions.yaml")
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	rawGoals, err := catalogFS.ReadFile("catalog/goals.yaml")
	if err != nil {
		return nil, fmt.Errorf("read goal library: %w", err)
	}
	return ParseCatalog(rawQuestions, rawGoals)
}

// MustLoadCatalog is LoadCatalog for package initialisation paths.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCatalog builds a catalog from YAML documents and checks its shape.
func ParseCatalog(questionsYAML, goalsYAML []byte) (*Catalog, error) {
	var groups []questionGroup
	if err := yaml.Unmarshal(questionsYAML, &groups); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	var library map[models.Domain][]models.GoalTemplate
	if err := yaml.Unmarshal(goalsYAML, &library); err != nil {
		return nil, fmt.Errorf("parse goal library: %w", err)
	}

	c := &Catalog{
		questions: make(map[models.Domain][]models.Question, len(groups)),
		templates: make(map[models.Domain][]models.GoalTemplate, len(library)),
	}
	seen := make(map[string]struct{})
	for _, group := range groups {
		domain, ok := models.ParseDomain(string(group.Domain))
		if !ok {
			return nil, fmt.Errorf("question bank: unknown domain %q", group.Domain)
		}
		for _, q := range group.Questions {
			if _, dup := seen[q.ID]; dup {
				return nil, fmt.Errorf("question bank: duplicate question id %q", q.ID)
			}
			seen[q.ID] = struct{}{}
			switch q.Kind {
			case models.QuestionYesNo, models.QuestionScale:
			case models.QuestionMultipleChoice:
				if len(q.Options) == 0 {
					return nil, fmt.Errorf("question bank: %s has no options", q.ID)
				}
			default:
				return nil, fmt.Errorf("question bank: %s has unknown kind %q", q.ID, q.Kind)
			}
			q.Domain = domain
			c.questions[domain] = append(c.questions[domain], q)
		}
	}

	for raw, templates := range library {
		domain, ok := models.ParseDomain(string(raw))
		if !ok {
			return nil, fmt.Errorf("goal library: unknown domain %q", raw)
		}
		c.templates[domain] = templates
	}
	for _, domain := range models.Domains() {
		if n := len(c.templates[domain]); n != TemplatesPerDomain {
			return nil, fmt.Errorf("goal library: %s has %d templates, want %d", domain, n, TemplatesPerDomain)
		}
	}

	return c, nil
}

// Questions returns the questions of a domain in catalog order.
func (c *Catalog) Questions(domain models.Domain) []models.Question {
	return c.questions[domain]
}

// AllQuestions returns the full bank grouped in domain order.
func (c *Catalog) AllQuestions() []models.Question {
	var out []models.Question
	for _, d := range models.Domains() {
		out = append(out, c.questions[d]...)
	}
	return out
}

// Question looks up a question within a domain.
func (c *Catalog) Question(domain models.Domain, id string) (models.Question, bool) {
	for _, q := range c.questions[domain] {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

// Templates returns a domain's goal library.
func (c *Catalog) Templates(domain models.Domain) []models.GoalTemplate {
	return c.templates[domain]
}
