// Package vocabulary holds the static skill, title, job keyword and certification
// tables. The tables are decoded once from an embedded YAML document at init
// and never mutated afterwards, so they are safe for concurrent use.
package vocabulary

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jonathan/resume-scorer/internal/types"
)

//go:embed vocabulary.yaml
var embedded []byte

// Skill is a vocabulary term and its category.
type Skill struct {
	Term     string              `yaml:"term"`
	Category types.SkillCategory `yaml:"category"`
}

// Tables is the decoded vocabulary document.
type Tables struct {
	Skills         []Skill           `yaml:"skills"`
	SkillAliases   map[string]string `yaml:"skill_aliases"`
	TitleAliases   map[string]string `yaml:"title_aliases"`
	JobKeywords    JobKeywords       `yaml:"job_keywords"`
	Certifications []string          `yaml:"certifications"`
	USStates       []string          `yaml:"us_states"`

	states map[string]bool
}

// JobKeywords are the terms searched for in job descriptions.
type JobKeywords struct {
	Technical []string `yaml:"technical"`
	Soft      []string `yaml:"soft"`
}

var defaultTables = mustLoad(embedded)

// Load decodes and validates a vocabulary document.
func Load(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}

	t.states = make(map[string]bool, len(t.USStates))
	for _, s := range t.USStates {
		t.states[strings.ToUpper(s)] = true
	}
	return &t, nil
}

func mustLoad(data []byte) *Tables {
	t, err := Load(data)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tables) validate() error {
	if len(t.Skills) == 0 {
		return fmt.Errorf("vocabulary has no skills")
	}
	seen := make(map[string]bool, len(t.Skills))
	for i, s := range t.Skills {
		if s.Term == "" || s.Term != strings.ToLower(s.Term) {
			return fmt.Errorf("skill %d: term %q must be non-empty lowercase", i, s.Term)
		}
		if !s.Category.Valid() {
			return fmt.Errorf("skill %q: unknown category %q", s.Term, s.Category)
		}
		if seen[s.Term] {
			return fmt.Errorf("skill %q listed twice", s.Term)
		}
		seen[s.Term] = true
	}
	for _, list := range [][]string{t.JobKeywords.Technical, t.JobKeywords.Soft} {
		for _, k := range list {
			if k == "" || k != strings.ToLower(k) {
				return fmt.Errorf("job keyword %q must be non-empty lowercase", k)
			}
		}
	}
	for k := range t.SkillAliases {
		if k != strings.ToLower(k) {
			return fmt.Errorf("skill alias key %q must be lowercase", k)
		}
	}
	for k := range t.TitleAliases {
		if k != strings.ToLower(k) {
			return fmt.Errorf("title alias key %q must be lowercase", k)
		}
	}
	return nil
}

// Skills returns a copy of the skill vocabulary in declaration order.
func Skills() []Skill {
	return append([]Skill(nil), defaultTables.Skills...)
}

// CanonicalSkill looks up the canonical display name for a lowercase skill variant.
func CanonicalSkill(lower string) (string, bool) {
	name, ok := defaultTables.SkillAliases[lower]
	return name, ok
}

// CanonicalTitle looks up the canonical job title for a lowercase title variant.
func CanonicalTitle(lower string) (string, bool) {
	title, ok := defaultTables.TitleAliases[lower]
	return title, ok
}

// JobTerms returns the technical then soft job keyword vocabulary.
func JobTerms() []string {
	terms := make([]string, 0, len(defaultTables.JobKeywords.Technical)+len(defaultTables.JobKeywords.Soft))
	terms = append(terms, defaultTables.JobKeywords.Technical...)
	return append(terms, defaultTables.JobKeywords.Soft...)
}

// IsSoftJobTerm reports whether term comes from the soft-skill job vocabulary.
func IsSoftJobTerm(term string) bool {
	for _, s := range defaultTables.JobKeywords.Soft {
		if s == term {
			return true
		}
	}
	return false
}

// Certifications returns a copy of the certification vocabulary.
func Certifications() []string {
	return append([]string(nil), defaultTables.Certifications...)
}

// IsUSState reports whether code is a US state or territory abbreviation.
func IsUSState(code string) bool {
	return defaultTables.states[strings.ToUpper(code)]
}
