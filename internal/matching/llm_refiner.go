package matching

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-scorer/internal/llm"
	"github.com/jonathan/resume-scorer/internal/prompts"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	refinementPromptFile = "matching.json"
	refinementPromptKey  = "ats-refinement"
	maxPromptChars       = 20000
)

// LLMRefiner asks a language model to refine heuristic match scores.
type LLMRefiner struct {
	client  llm.Client
	timeout time.Duration
}

// NewLLMRefiner creates a refiner over client. A non-positive timeout uses llm.DefaultTimeout.
func NewLLMRefiner(client llm.Client, timeout time.Duration) *LLMRefiner {
	if timeout <= 0 {
		timeout = llm.DefaultTimeout
	}
	return &LLMRefiner{client: client, timeout: timeout}
}

// Refine implements Refiner.
func (r *LLMRefiner) Refine(ctx context.Context, in MatchInput, heuristic *types.MatchResult) (*Refinement, error) {
	if r.client == nil {
		return nil, &RefinementError{Message: "no LLM client configured"}
	}
	if heuristic == nil {
		return nil, &RefinementError{Message: "heuristic result is required"}
	}

	prompt, err := prompts.Render(refinementPromptFile, refinementPromptKey, map[string]string{
		"KeywordMatch":    strconv.Itoa(heuristic.KeywordMatch),
		"SkillCoverage":   strconv.Itoa(heuristic.SkillCoverage),
		"MatchedKeywords": listOrNone(heuristic.MatchedKeywords),
		"MissingKeywords": listOrNone(heuristic.MissingKeywords),
		"JobDescription":  truncate(in.JobDescription, maxPromptChars),
		"ResumeText":      truncate(in.ResumeText, maxPromptChars),
	})
	if err != nil {
		return nil, &RefinementError{Message: "failed to build prompt", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &RefinementError{Message: "model call failed", Cause: err}
	}

	var refinement Refinement
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp)), &refinement); err != nil {
		return nil, &RefinementError{Message: "failed to parse model response", Cause: err}
	}
	return &refinement, nil
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
