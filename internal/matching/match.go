package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/jonathan/resume-scorer/internal/vocabulary"
)

// Neutral placeholders used when no external scorer refines the result.
const (
	DefaultExperienceAlignment = 70
	DefaultFormattingScore     = 85
)

const (
	maxKeywordRecommendations = 5
	maxExperienceGaps         = 5
	maxStrengthKeywords       = 5
	strongKeywordMatch        = 70
)

var genericRecommendations = []string{
	"Quantify achievements with numbers such as revenue, latency, or team size",
	"Mirror the job description's terminology in your summary and skills section",
	"Use standard section headings and simple formatting so applicant tracking systems can read your resume",
}

// ComputeMatch scores a resume against a job description using heuristics only.
// When parsed is nil the raw text is parsed first. A job description without
// recognizable keywords yields an all-zero result.
func ComputeMatch(parsed *types.ParsedResume, rawText, jobDescription string) *types.MatchResult {
	keywords := ExtractJobKeywords(jobDescription)
	if len(keywords) == 0 {
		return emptyResult()
	}

	if parsed == nil {
		parsed = parsing.ParseResume(rawText)
	}
	if strings.TrimSpace(rawText) == "" {
		rawText = resumeText(parsed)
	}

	kw := MatchKeywords(rawText, keywords)
	skills := MatchSkillCoverage(parsed.Skills, keywords)

	return &types.MatchResult{
		OverallScore:        int(math.Round(float64(kw.Score+skills.Score) / 2)),
		KeywordMatch:        kw.Score,
		SkillCoverage:       skills.Score,
		ExperienceAlignment: DefaultExperienceAlignment,
		FormattingScore:     DefaultFormattingScore,
		MatchedKeywords:     kw.Matched,
		MissingKeywords:     kw.Missing,
		MatchedSkills:       skills.Matched,
		MissingSkills:       skills.Missing,
		ExperienceGaps:      experienceGaps(parsed, skills.Missing),
		Strengths:           strengths(parsed, kw, skills, len(keywords)),
		Recommendations:     recommendations(kw.Missing),
	}
}

func emptyResult() *types.MatchResult {
	return &types.MatchResult{
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		ExperienceGaps:  []string{},
		Strengths:       []string{},
		Recommendations: []string{},
	}
}

// resumeText rebuilds searchable text from a parsed resume.
func resumeText(r *types.ParsedResume) string {
	parts := []string{r.Summary}
	for _, s := range r.Skills {
		parts = append(parts, s.Name, s.NormalizedName)
	}
	for _, e := range r.Experience {
		parts = append(parts, e.Title)
		parts = append(parts, e.Bullets...)
	}
	for _, e := range r.Education {
		parts = append(parts, e.Degree, e.Field, e.Institution)
	}
	parts = append(parts, r.Certifications...)
	return strings.Join(parts, "\n")
}

func recommendations(missing []string) []string {
	recs := make([]string, 0, maxKeywordRecommendations+len(genericRecommendations))
	for i, k := range missing {
		if i == maxKeywordRecommendations {
			break
		}
		recs = append(recs, fmt.Sprintf("Add %q to your resume if applicable", k))
	}
	return append(recs, genericRecommendations...)
}

func strengths(r *types.ParsedResume, kw, skills types.KeywordMatch, total int) []string {
	out := make([]string, 0)

	if len(kw.Matched) > 0 {
		shown := kw.Matched
		if len(shown) > maxStrengthKeywords {
			shown = shown[:maxStrengthKeywords]
		}
		out = append(out, fmt.Sprintf("Matches %d of %d job keywords (%s)", len(kw.Matched), total, strings.Join(shown, ", ")))
	}
	if kw.Score >= strongKeywordMatch {
		out = append(out, "Strong keyword alignment with the job description")
	}
	if len(skills.Matched) > 0 && r.HasExplicitSkill() {
		out = append(out, fmt.Sprintf("Skills section covers %d required skills", len(skills.Matched)))
	}
	for _, e := range r.Experience {
		if len(e.Bullets) > 2 {
			out = append(out, "Experience includes detailed accomplishment bullets")
			break
		}
	}
	if r.Contact.Email != "" && r.Contact.Phone != "" {
		out = append(out, "Complete contact information")
	}
	return out
}

func experienceGaps(r *types.ParsedResume, missingSkills []string) []string {
	gaps := make([]string, 0)
	if len(r.Experience) == 0 {
		gaps = append(gaps, "No work experience entries were detected")
	}
	for _, s := range missingSkills {
		if len(gaps) == maxExperienceGaps {
			break
		}
		if vocabulary.IsSoftJobTerm(s) {
			gaps = append(gaps, fmt.Sprintf("Limited evidence of %s", s))
		} else {
			gaps = append(gaps, fmt.Sprintf("No demonstrated experience with %s", parsing.NormalizeSkillName(s)))
		}
	}
	return gaps
}
