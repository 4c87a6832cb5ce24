package matching

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/types"
)

// MatchInput is what a Refiner sees alongside the heuristic result.
type MatchInput struct {
	ResumeText     string
	JobDescription string
	Resume         *types.ParsedResume
	Keywords       []string
}

// Refinement holds the fields a Refiner wants to override.
// Nil scores and empty lists leave the heuristic values in place.
type Refinement struct {
	OverallScore        *int     `json:"overall_score,omitempty"`
	ExperienceAlignment *int     `json:"experience_alignment,omitempty"`
	FormattingScore     *int     `json:"formatting_score,omitempty"`
	MissingKeywords     []string `json:"missing_keywords,omitempty"`
	Strengths           []string `json:"strengths,omitempty"`
	Recommendations     []string `json:"recommendations,omitempty"`
	ExperienceGaps      []string `json:"experience_gaps,omitempty"`
}

// Refiner adjusts a heuristic match result, typically with an LLM.
type Refiner interface {
	Refine(ctx context.Context, in MatchInput, heuristic *types.MatchResult) (*Refinement, error)
}

// ComputeMatchWithRefiner runs ComputeMatch and then lets refiner adjust the
// result. A nil refiner, a refiner error, or a nil refinement returns the
// heuristic result unchanged.
func ComputeMatchWithRefiner(ctx context.Context, refiner Refiner, parsed *types.ParsedResume, rawText, jobDescription string) *types.MatchResult {
	result, _ := RefineMatch(ctx, refiner, parsed, rawText, jobDescription)
	return result
}

// RefineMatch is ComputeMatchWithRefiner that also reports whether a
// refinement was applied.
func RefineMatch(ctx context.Context, refiner Refiner, parsed *types.ParsedResume, rawText, jobDescription string) (*types.MatchResult, bool) {
	keywords := ExtractJobKeywords(jobDescription)
	if len(keywords) == 0 {
		return emptyResult(), false
	}

	if parsed == nil {
		parsed = parsing.ParseResume(rawText)
	}
	heuristic := ComputeMatch(parsed, rawText, jobDescription)
	if refiner == nil {
		return heuristic, false
	}

	in := MatchInput{
		ResumeText:     rawText,
		JobDescription: jobDescription,
		Resume:         parsed,
		Keywords:       keywords,
	}
	if strings.TrimSpace(in.ResumeText) == "" {
		in.ResumeText = resumeText(parsed)
	}

	refinement, err := refiner.Refine(ctx, in, heuristic.Clone())
	if err != nil {
		slog.Warn("AI refinement failed, using heuristic scores", "error", err)
		return heuristic, false
	}
	if refinement == nil {
		slog.Warn("AI refinement returned no result, using heuristic scores")
		return heuristic, false
	}

	return ApplyRefinement(heuristic, refinement), true
}

// ApplyRefinement merges a refinement into a copy of result.
// Scores are clamped to 0-100 and missing keywords are unioned case-insensitively.
func ApplyRefinement(result *types.MatchResult, r *Refinement) *types.MatchResult {
	out := result.Clone()
	if r == nil {
		return out
	}

	if r.OverallScore != nil {
		out.OverallScore = clampScore(*r.OverallScore)
	}
	if r.ExperienceAlignment != nil {
		out.ExperienceAlignment = clampScore(*r.ExperienceAlignment)
	}
	if r.FormattingScore != nil {
		out.FormattingScore = clampScore(*r.FormattingScore)
	}

	out.MissingKeywords = unionFold(out.MissingKeywords, r.MissingKeywords)

	if items := nonBlank(r.Strengths); len(items) > 0 {
		out.Strengths = items
	}
	if items := nonBlank(r.Recommendations); len(items) > 0 {
		out.Recommendations = items
	}
	if items := nonBlank(r.ExperienceGaps); len(items) > 0 {
		out.ExperienceGaps = items
	}
	return out
}

func clampScore(v int) int {
	return max(0, min(100, v))
}

// unionFold appends extra entries not already present, ignoring case.
func unionFold(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range append(append([]string{}, base...), extra...) {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
