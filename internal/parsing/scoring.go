package parsing

import (
	"math"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Parsing confidence points.
const (
	pointsName            = 5
	pointsEmail           = 10
	pointsPhone           = 5
	pointsProfile         = 5 // LinkedIn or GitHub
	pointsAnySkills       = 10
	pointsManySkills      = 10
	pointsExplicitSkill   = 5
	pointsAnyExperience   = 15
	pointsDetailedEntry   = 10
	pointsEducation       = 10
	pointsPerSection      = 3
	maxSectionPoints      = 15
	manySkillsThreshold   = 5
	detailedBulletMinimum = 2
	maxParsingConfidence  = 100
)

// Seniority thresholds in years.
const (
	seniorYears = 5.0
	midYears    = 2.0
)

// TotalYears sums experience durations and converts months to years, rounded to one decimal.
func TotalYears(experience []types.ParsedExperience) float64 {
	months := 0
	for _, e := range experience {
		months += e.Duration
	}
	return math.Round(float64(months)/12*10) / 10
}

// DetermineSeniority classifies career stage. Title keywords win over years,
// checked in order executive, lead, senior.
func DetermineSeniority(experience []types.ParsedExperience, totalYears float64) types.SeniorityLevel {
	titles := make([]string, 0, len(experience))
	for _, e := range experience {
		titles = append(titles, e.Title)
	}
	allTitles := strings.ToLower(strings.Join(titles, " "))

	switch {
	case containsAny(allTitles, "chief", "vp", "director"):
		return types.SeniorityExecutive
	case containsAny(allTitles, "lead", "principal", "staff"):
		return types.SeniorityLead
	case containsAny(allTitles, "senior", "sr") || totalYears >= seniorYears:
		return types.SenioritySenior
	case totalYears >= midYears:
		return types.SeniorityMid
	default:
		return types.SeniorityEntry
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ComputeParsingConfidence estimates how completely the resume was extracted, 0-100.
func ComputeParsingConfidence(r *types.ParsedResume) int {
	score := 0

	if r.Contact.Name != "" {
		score += pointsName
	}
	if r.Contact.Email != "" {
		score += pointsEmail
	}
	if r.Contact.Phone != "" {
		score += pointsPhone
	}
	if r.Contact.LinkedIn != "" || r.Contact.GitHub != "" {
		score += pointsProfile
	}

	if len(r.Skills) > 0 {
		score += pointsAnySkills
	}
	if len(r.Skills) > manySkillsThreshold {
		score += pointsManySkills
	}
	if r.HasExplicitSkill() {
		score += pointsExplicitSkill
	}

	if len(r.Experience) > 0 {
		score += pointsAnyExperience
	}
	for _, e := range r.Experience {
		if len(e.Bullets) > detailedBulletMinimum {
			score += pointsDetailedEntry
			break
		}
	}

	if len(r.Education) > 0 {
		score += pointsEducation
	}

	score += min(maxSectionPoints, pointsPerSection*len(r.DetectedSections))

	return min(maxParsingConfidence, score)
}
