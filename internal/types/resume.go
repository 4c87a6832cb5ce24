// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillCategory classifies a vocabulary skill.
type SkillCategory string

// Skill categories.
const (
	CategoryTechnical SkillCategory = "technical"
	CategorySoft      SkillCategory = "soft"
	CategoryTool      SkillCategory = "tool"
	CategoryLanguage  SkillCategory = "language"
)

// Valid reports whether c is one of the known categories.
func (c SkillCategory) Valid() bool {
	switch c {
	case CategoryTechnical, CategorySoft, CategoryTool, CategoryLanguage:
		return true
	}
	return false
}

// SeniorityLevel is a coarse career-stage classification.
type SeniorityLevel string

// Seniority levels, lowest first.
const (
	SeniorityEntry     SeniorityLevel = "entry"
	SeniorityMid       SeniorityLevel = "mid"
	SenioritySenior    SeniorityLevel = "senior"
	SeniorityLead      SeniorityLevel = "lead"
	SeniorityExecutive SeniorityLevel = "executive"
)

// ParsedContact holds contact fields found in resume text. Missing fields are empty strings.
type ParsedContact struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// ParsedSkill is a vocabulary skill found in resume text.
type ParsedSkill struct {
	Name           string        `json:"name"`            // As found in the text
	NormalizedName string        `json:"normalized_name"` // Canonical display name
	Category       SkillCategory `json:"category"`
	Confidence     int           `json:"confidence"`  // 0-100
	IsExplicit     bool          `json:"is_explicit"` // Found inside a skills section
}

// ParsedExperience is a single experience entry.
type ParsedExperience struct {
	Title           string   `json:"title"`
	NormalizedTitle string   `json:"normalized_title"`
	Company         string   `json:"company"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Duration        int      `json:"duration"` // Months, 0 when unknown
	IsCurrent       bool     `json:"is_current"`
	Bullets         []string `json:"bullets"`
	Keywords        []string `json:"keywords"`
}

// ParsedEducation is a single education entry. All fields are empty when not detected.
type ParsedEducation struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	StartYear   string `json:"start_year"`
	EndYear     string `json:"end_year"`
	GPA         string `json:"gpa,omitempty"`
}

// ParsedProject is a project entry. Only populated from structured content.
type ParsedProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ParsedResume is the structured result of parsing a resume.
type ParsedResume struct {
	Contact              ParsedContact      `json:"contact"`
	Summary              string             `json:"summary"`
	Skills               []ParsedSkill      `json:"skills"` // Descending confidence
	Experience           []ParsedExperience `json:"experience"`
	Education            []ParsedEducation  `json:"education"`
	Certifications       []string           `json:"certifications"`
	Projects             []ParsedProject    `json:"projects"`
	TotalYearsExperience float64            `json:"total_years_experience"`
	SeniorityLevel       SeniorityLevel     `json:"seniority_level"`
	DetectedSections     []string           `json:"detected_sections"`
	ParsingConfidence    int                `json:"parsing_confidence"` // 0-100
}

// NewParsedResume returns an empty resume with all sequences non-nil.
func NewParsedResume() *ParsedResume {
	return &ParsedResume{
		Skills:           []ParsedSkill{},
		Experience:       []ParsedExperience{},
		Education:        []ParsedEducation{},
		Certifications:   []string{},
		Projects:         []ParsedProject{},
		SeniorityLevel:   SeniorityEntry,
		DetectedSections: []string{},
	}
}

// HasExplicitSkill reports whether any skill was found inside a skills section.
func (r *ParsedResume) HasExplicitSkill() bool {
	for _, s := range r.Skills {
		if s.IsExplicit {
			return true
		}
	}
	return false
}
