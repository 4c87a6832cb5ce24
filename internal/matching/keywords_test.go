package matching

import (
	"testing"

	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/stretchr/testify/assert"
)

const reactJob = "Looking for a React and TypeScript developer with leadership experience"

func TestExtractJobKeywords(t *testing.T) {
	tests := []struct {
		name     string
		jd       string
		expected []string
	}{
		{
			name:     "ordered by first occurrence",
			jd:       reactJob,
			expected: []string{"react", "typescript", "leadership"},
		},
		{
			name:     "deduplicated and case-insensitive",
			jd:       "DOCKER, docker and Docker. Also Kubernetes.",
			expected: []string{"docker", "kubernetes"},
		},
		{
			name:     "no vocabulary terms",
			jd:       "We sell flowers on weekends",
			expected: []string{},
		},
		{
			name:     "empty",
			jd:       "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJobKeywords(tt.jd))
		})
	}
}

func TestMatchKeywords(t *testing.T) {
	result := MatchKeywords("Frontend engineer building React applications", []string{"react", "typescript", "leadership"})

	assert.Equal(t, 33, result.Score)
	assert.Equal(t, []string{"react"}, result.Matched)
	assert.Equal(t, []string{"typescript", "leadership"}, result.Missing)
}

func TestMatchKeywords_Empty(t *testing.T) {
	result := MatchKeywords("anything", nil)

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Matched)
	assert.NotNil(t, result.Missing)
}

func TestMatchKeywords_ScoreBounds(t *testing.T) {
	keywords := []string{"python", "aws", "docker"}
	texts := []string{"", "python", "Python AWS", "python aws docker", "unrelated"}
	for _, text := range texts {
		result := MatchKeywords(text, keywords)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
		assert.Len(t, append(result.Matched, result.Missing...), len(keywords))
	}
	assert.Equal(t, 100, MatchKeywords("python aws docker", keywords).Score)
}

func TestMatchSkillCoverage(t *testing.T) {
	skills := []types.ParsedSkill{
		{Name: "AWS", NormalizedName: "Amazon Web Services"},
		{Name: "React.js", NormalizedName: "React"},
		{Name: "Postgres", NormalizedName: "PostgreSQL"},
	}

	tests := []struct {
		name    string
		keyword string
		covered bool
	}{
		{"alias not expanded", "aws", false},
		{"exact", "react", true},
		{"skill contains keyword", "postgresql", true},
		{"keyword contains skill", "react native", true},
		{"not covered", "kubernetes", false},
		{"blank keyword", "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchSkillCoverage(skills, []string{tt.keyword})
			if tt.covered {
				assert.Equal(t, []string{tt.keyword}, result.Matched)
				assert.Equal(t, 100, result.Score)
			} else {
				assert.Equal(t, []string{tt.keyword}, result.Missing)
				assert.Equal(t, 0, result.Score)
			}
		})
	}
}

func TestMatchSkillCoverage_NoSkills(t *testing.T) {
	result := MatchSkillCoverage(nil, []string{"go", "docker"})
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, []string{"go", "docker"}, result.Missing)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, percentage(0, 0))
	assert.Equal(t, 33, percentage(1, 3))
	assert.Equal(t, 67, percentage(2, 3))
	assert.Equal(t, 100, percentage(4, 4))
}
