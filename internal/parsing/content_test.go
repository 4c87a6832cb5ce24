package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/types"
)

var referenceNow = time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)

func TestFromContent_DirectorWithOneYear(t *testing.T) {
	c := types.NewResumeContent()
	c.Contact = types.ParsedContact{Name: "Ada Lovelace", Email: "ada@example.com"}
	c.Skills = []string{"Go", "AWS", "Leadership", "aws"}
	c.Experience = []types.ContentPosition{{
		Title:     "Director of Engineering",
		Company:   "Acme",
		StartDate: "2023-01",
		EndDate:   "2024-01",
		Bullets:   []string{"Scaled the AWS platform to 40 services", "  "},
	}}

	r := FromContent(c, referenceNow)

	require.Len(t, r.Experience, 1)
	exp := r.Experience[0]
	assert.Equal(t, 12, exp.Duration)
	assert.False(t, exp.IsCurrent)
	assert.Equal(t, "Director of Engineering", exp.NormalizedTitle)
	assert.Equal(t, []string{"Scaled the AWS platform to 40 services"}, exp.Bullets)
	assert.Equal(t, []string{"aws"}, exp.Keywords)

	assert.Equal(t, 1.0, r.TotalYearsExperience)
	assert.Equal(t, types.SeniorityExecutive, r.SeniorityLevel)

	require.Len(t, r.Skills, 3, "case-insensitive duplicates are dropped")
	for _, s := range r.Skills {
		assert.True(t, s.IsExplicit)
	}
	aws := findSkill(r.Skills, "Amazon Web Services")
	require.NotNil(t, aws)
	assert.Equal(t, types.CategoryTechnical, aws.Category)
	leadership := findSkill(r.Skills, "Leadership")
	require.NotNil(t, leadership)
	assert.Equal(t, types.CategorySoft, leadership.Category)

	assert.Equal(t, []string{SectionExperience, SectionSkills}, r.DetectedSections)
}

func TestFromContent_CurrentPosition(t *testing.T) {
	tests := []struct {
		name     string
		position types.ContentPosition
		months   int
		current  bool
	}{
		{"present marker", types.ContentPosition{StartDate: "2024-03", EndDate: "Present"}, 6, true},
		{"current flag", types.ContentPosition{StartDate: "Mar 2024", Current: true}, 6, true},
		{"slash dates", types.ContentPosition{StartDate: "01/2020", EndDate: "07/2021"}, 18, false},
		{"year only", types.ContentPosition{StartDate: "2018", EndDate: "2020"}, 24, false},
		{"unparseable", types.ContentPosition{StartDate: "a while ago", EndDate: "2020"}, 0, false},
		{"end before start", types.ContentPosition{StartDate: "2021-01", EndDate: "2020-01"}, 0, false},
		{"missing end", types.ContentPosition{StartDate: "2021-01"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := contentExperience(tt.position, referenceNow)
			assert.Equal(t, tt.months, exp.Duration)
			assert.Equal(t, tt.current, exp.IsCurrent)
		})
	}
}

func TestFromContent_Education(t *testing.T) {
	c := types.NewResumeContent()
	c.Education = []types.ContentEducation{{
		Degree:      "BSc",
		Field:       "Physics",
		Institution: "University of Leeds",
		StartDate:   "Sep 2010",
		EndDate:     "2013-06",
	}}

	r := FromContent(c, referenceNow)
	require.Len(t, r.Education, 1)
	assert.Equal(t, "2010", r.Education[0].StartYear)
	assert.Equal(t, "2013", r.Education[0].EndYear)
	assert.Equal(t, []string{SectionEducation}, r.DetectedSections)
}

func TestFromContent_Nil(t *testing.T) {
	assert.Equal(t, types.NewParsedResume(), FromContent(nil, referenceNow))
}
