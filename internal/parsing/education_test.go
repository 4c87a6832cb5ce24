package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-scorer/internal/types"
)

func TestExtractEducation(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []types.ParsedEducation
	}{
		{
			name:     "none",
			text:     "Jane Doe\nExperience\n- Built things at scale",
			expected: []types.ParsedEducation{},
		},
		{
			name: "state abbreviation is not a degree",
			text: "Boston, MA\nBachelor of Science in Mathematics, Boston University, 2010 - 2014, GPA: 3.8",
			expected: []types.ParsedEducation{{
				Degree:      "Bachelor of Science",
				Field:       "Mathematics",
				Institution: "Boston University",
				StartYear:   "2010",
				EndYear:     "2014",
				GPA:         "3.8",
			}},
		},
		{
			name: "abbreviated degree with lone year",
			text: "EDUCATION\nMBA, Harvard Business School, 2019",
			expected: []types.ParsedEducation{{
				Degree:      "MBA",
				Institution: "Harvard Business School",
				EndYear:     "2019",
			}},
		},
		{
			name: "gpa out of four",
			text: "Education\nPhD, Massachusetts Institute of Technology\n3.9/4.0",
			expected: []types.ParsedEducation{{
				Degree:      "PhD",
				Institution: "Massachusetts Institute of Technology",
				GPA:         "3.9",
			}},
		},
		{
			name: "institution only",
			text: "Studied at University of Michigan",
			expected: []types.ParsedEducation{{
				Institution: "University of Michigan",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractEducation(tt.text))
		})
	}
}

func TestExtractCertifications(t *testing.T) {
	assert.Equal(t, []string{}, ExtractCertifications("no certs"))
	assert.Equal(t,
		[]string{"AWS Certified", "Scrum Master", "CISSP", "CompTIA"},
		ExtractCertifications("CompTIA Security+, cissp, Certified Scrum Master, AWS Certified Developer"),
	)
}

func TestExtractBullets(t *testing.T) {
	lines := []string{
		"• Shipped the billing service",
		"- short",
		"– Reduced latency by 40 percent",
		"> Quoted but long enough line",
		"▸ Automated release pipeline",
		"◆ Owned incident response",
		"Plain line without a marker",
		"-",
	}
	assert.Equal(t, []string{
		"Shipped the billing service",
		"Reduced latency by 40 percent",
		"Quoted but long enough line",
		"Automated release pipeline",
		"Owned incident response",
	}, ExtractBullets(lines))
}

func TestExtractSkills_InferredVsExplicit(t *testing.T) {
	text := "Skills: Docker\nUsed docker and kubernetes daily. Kubernetes, k8s everywhere."
	skills := ExtractSkills(text, "Docker")

	docker := findSkill(skills, "Docker")
	if assert.NotNil(t, docker) {
		assert.True(t, docker.IsExplicit)
		assert.Equal(t, 70, docker.Confidence)
		assert.Equal(t, "Docker", docker.Name)
	}

	k8s := findSkill(skills, "Kubernetes")
	if assert.NotNil(t, k8s) {
		assert.False(t, k8s.IsExplicit)
		assert.Equal(t, "kubernetes", k8s.Name)
		assert.Equal(t, 40, k8s.Confidence)
	}

	count := 0
	for _, s := range skills {
		if s.NormalizedName == "Kubernetes" {
			count++
		}
	}
	assert.Equal(t, 2, count, "each vocabulary term is its own entry")
}

func TestExtractSkills_ConfidenceCapped(t *testing.T) {
	text := "python python python python python python python python python python"
	skills := ExtractSkills(text, text)
	python := findSkill(skills, "Python")
	if assert.NotNil(t, python) {
		assert.Equal(t, 100, python.Confidence)
	}
}
