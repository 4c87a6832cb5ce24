package matching

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-scorer/internal/llm"
	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing.
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	calls            int
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.calls++
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return `{}`, nil
}

func (m *MockLLMClient) Model(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

// refinerFunc adapts a function to Refiner.
type refinerFunc func(ctx context.Context, in MatchInput, heuristic *types.MatchResult) (*Refinement, error)

func (f refinerFunc) Refine(ctx context.Context, in MatchInput, heuristic *types.MatchResult) (*Refinement, error) {
	return f(ctx, in, heuristic)
}

func intPtr(v int) *int { return &v }

func TestComputeMatchWithRefiner_AppliesRefinement(t *testing.T) {
	refiner := refinerFunc(func(_ context.Context, in MatchInput, heuristic *types.MatchResult) (*Refinement, error) {
		assert.Equal(t, []string{"react", "typescript", "leadership"}, in.Keywords)
		assert.Equal(t, 33, heuristic.KeywordMatch)
		return &Refinement{
			OverallScore:        intPtr(45),
			ExperienceAlignment: intPtr(140),
			FormattingScore:     intPtr(-5),
			MissingKeywords:     []string{"TypeScript", "accessibility"},
			Strengths:           []string{"Hands-on React work"},
		}, nil
	})

	result := ComputeMatchWithRefiner(context.Background(), refiner, nil, reactResume, reactJob)

	assert.Equal(t, 45, result.OverallScore)
	assert.Equal(t, 100, result.ExperienceAlignment)
	assert.Equal(t, 0, result.FormattingScore)
	assert.Equal(t, 33, result.KeywordMatch)
	assert.Equal(t, []string{"typescript", "leadership", "accessibility"}, result.MissingKeywords)
	assert.Equal(t, []string{"Hands-on React work"}, result.Strengths)
	// Empty refinement lists keep the heuristic advice
	assert.Contains(t, result.Recommendations, `Add "typescript" to your resume if applicable`)
}

func TestComputeMatchWithRefiner_Fallbacks(t *testing.T) {
	heuristic := ComputeMatch(nil, reactResume, reactJob)

	tests := []struct {
		name    string
		refiner Refiner
	}{
		{"nil refiner", nil},
		{"refiner error", refinerFunc(func(context.Context, MatchInput, *types.MatchResult) (*Refinement, error) {
			return nil, errors.New("quota exceeded")
		})},
		{"nil refinement", refinerFunc(func(context.Context, MatchInput, *types.MatchResult) (*Refinement, error) {
			return nil, nil
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeMatchWithRefiner(context.Background(), tt.refiner, nil, reactResume, reactJob)
			assert.Equal(t, heuristic, result)
		})
	}
}

func TestRefineMatch_ReportsApplied(t *testing.T) {
	ok := refinerFunc(func(context.Context, MatchInput, *types.MatchResult) (*Refinement, error) {
		return &Refinement{OverallScore: intPtr(70)}, nil
	})
	failing := refinerFunc(func(context.Context, MatchInput, *types.MatchResult) (*Refinement, error) {
		return nil, errors.New("unavailable")
	})

	result, applied := RefineMatch(context.Background(), ok, nil, reactResume, reactJob)
	assert.True(t, applied)
	assert.Equal(t, 70, result.OverallScore)

	_, applied = RefineMatch(context.Background(), failing, nil, reactResume, reactJob)
	assert.False(t, applied)

	_, applied = RefineMatch(context.Background(), nil, nil, reactResume, reactJob)
	assert.False(t, applied)
}

func TestComputeMatchWithRefiner_SkippedWithoutKeywords(t *testing.T) {
	called := false
	refiner := refinerFunc(func(context.Context, MatchInput, *types.MatchResult) (*Refinement, error) {
		called = true
		return &Refinement{OverallScore: intPtr(90)}, nil
	})

	result := ComputeMatchWithRefiner(context.Background(), refiner, nil, reactResume, "We sell flowers")

	assert.False(t, called)
	assert.Equal(t, 0, result.OverallScore)
}

func TestComputeMatchWithRefiner_RefinerCannotMutateHeuristic(t *testing.T) {
	refiner := refinerFunc(func(_ context.Context, _ MatchInput, heuristic *types.MatchResult) (*Refinement, error) {
		heuristic.MatchedKeywords[0] = "tampered"
		return nil, errors.New("fail")
	})

	result := ComputeMatchWithRefiner(context.Background(), refiner, nil, reactResume, reactJob)
	assert.Equal(t, []string{"react"}, result.MatchedKeywords)
}

func TestApplyRefinement(t *testing.T) {
	base := &types.MatchResult{
		OverallScore:    50,
		MissingKeywords: []string{"go"},
		Recommendations: []string{"keep"},
	}

	out := ApplyRefinement(base, &Refinement{
		MissingKeywords: []string{" Go ", "", "rust"},
		Recommendations: []string{"  "},
	})

	assert.Equal(t, 50, out.OverallScore)
	assert.Equal(t, []string{"go", "rust"}, out.MissingKeywords)
	assert.Equal(t, []string{"keep"}, out.Recommendations)
	assert.Equal(t, []string{"go"}, base.MissingKeywords)

	assert.Equal(t, base.Clone(), ApplyRefinement(base, nil))
}

func TestLLMRefiner_Refine(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierLite, tier)
			assert.Contains(t, prompt, reactJob)
			assert.Contains(t, prompt, reactResume)
			assert.Contains(t, prompt, "keyword match: 33%")
			assert.Contains(t, prompt, "missing keywords: typescript, leadership")
			return "```json\n{\"overall_score\": 40, \"experience_alignment\": 55, \"recommendations\": [\"Add a TypeScript project\"]}\n```", nil
		},
	}
	refiner := NewLLMRefiner(client, time.Second)

	result := ComputeMatchWithRefiner(context.Background(), refiner, nil, reactResume, reactJob)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 40, result.OverallScore)
	assert.Equal(t, 55, result.ExperienceAlignment)
	assert.Equal(t, DefaultFormattingScore, result.FormattingScore)
	assert.Equal(t, []string{"Add a TypeScript project"}, result.Recommendations)
}

func TestLLMRefiner_Errors(t *testing.T) {
	heuristic := ComputeMatch(nil, reactResume, reactJob)
	in := MatchInput{ResumeText: reactResume, JobDescription: reactJob}

	tests := []struct {
		name    string
		refiner *LLMRefiner
		errMsg  string
	}{
		{
			name:    "no client",
			refiner: NewLLMRefiner(nil, 0),
			errMsg:  "no LLM client configured",
		},
		{
			name: "model failure",
			refiner: NewLLMRefiner(&MockLLMClient{GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
				return "", errors.New("503")
			}}, 0),
			errMsg: "model call failed",
		},
		{
			name: "invalid JSON",
			refiner: NewLLMRefiner(&MockLLMClient{GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
				return "not json at all", nil
			}}, 0),
			errMsg: "failed to parse model response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refinement, err := tt.refiner.Refine(context.Background(), in, heuristic)
			require.Error(t, err)
			assert.Nil(t, refinement)

			var refErr *RefinementError
			require.ErrorAs(t, err, &refErr)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLLMRefiner_Timeout(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	refiner := NewLLMRefiner(client, 10*time.Millisecond)

	result := ComputeMatchWithRefiner(context.Background(), refiner, nil, reactResume, reactJob)
	assert.Equal(t, 33, result.OverallScore)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll", truncate("héllo", 4))
	assert.Equal(t, "short", truncate("short", 10))
	assert.True(t, strings.HasPrefix(truncate(strings.Repeat("a", 30000), maxPromptChars), "aaa"))
}
