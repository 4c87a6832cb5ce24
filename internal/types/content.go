// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeContent is the canonical structured resume shape. Variant JSON payloads
// are mapped into it at the boundary before reaching the parser.
type ResumeContent struct {
	Contact        ParsedContact      `json:"contact"`
	Summary        string             `json:"summary"`
	Skills         []string           `json:"skills"`
	Experience     []ContentPosition  `json:"experience"`
	Education      []ContentEducation `json:"education"`
	Certifications []string           `json:"certifications"`
	Projects       []ParsedProject    `json:"projects"`
}

// ContentPosition is one job in structured resume content.
type ContentPosition struct {
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Current   bool     `json:"current,omitempty"`
	Bullets   []string `json:"bullets"`
}

// ContentEducation is one education entry in structured resume content.
type ContentEducation struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GPA         string `json:"gpa,omitempty"`
}

// NewResumeContent returns empty content with all sequences non-nil.
func NewResumeContent() *ResumeContent {
	return &ResumeContent{
		Skills:         []string{},
		Experience:     []ContentPosition{},
		Education:      []ContentEducation{},
		Certifications: []string{},
		Projects:       []ParsedProject{},
	}
}
