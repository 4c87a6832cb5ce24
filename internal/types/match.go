// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// KeywordMatch is the result of testing a keyword set against resume text or skills.
type KeywordMatch struct {
	Score   int      `json:"score"` // 0-100
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// MatchResult scores a resume against a job description.
type MatchResult struct {
	OverallScore        int      `json:"overall_score"`
	KeywordMatch        int      `json:"keyword_match"`
	SkillCoverage       int      `json:"skill_coverage"`
	ExperienceAlignment int      `json:"experience_alignment"`
	FormattingScore     int      `json:"formatting_score"`
	MatchedKeywords     []string `json:"matched_keywords"`
	MissingKeywords     []string `json:"missing_keywords"`
	MatchedSkills       []string `json:"matched_skills"`
	MissingSkills       []string `json:"missing_skills"`
	ExperienceGaps      []string `json:"experience_gaps"`
	Strengths           []string `json:"strengths"`
	Recommendations     []string `json:"recommendations"`
}

// Clone returns a deep copy of the result.
func (m *MatchResult) Clone() *MatchResult {
	if m == nil {
		return nil
	}
	c := *m
	c.MatchedKeywords = append([]string{}, m.MatchedKeywords...)
	c.MissingKeywords = append([]string{}, m.MissingKeywords...)
	c.MatchedSkills = append([]string{}, m.MatchedSkills...)
	c.MissingSkills = append([]string{}, m.MissingSkills...)
	c.ExperienceGaps = append([]string{}, m.ExperienceGaps...)
	c.Strengths = append([]string{}, m.Strengths...)
	c.Recommendations = append([]string{}, m.Recommendations...)
	return &c
}
