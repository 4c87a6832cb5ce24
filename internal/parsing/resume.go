package parsing

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// ParseResume turns raw resume text into a ParsedResume. It never fails:
// text without recognizable structure yields empty fields and a low confidence.
func ParseResume(rawText string) *types.ParsedResume {
	text := strings.TrimSpace(strings.ReplaceAll(rawText, "\r\n", "\n"))
	lines := splitLines(text)

	r := types.NewParsedResume()
	r.DetectedSections = DetectSections(text)
	r.Contact = ExtractContact(text, lines)
	r.Summary = extractSummary(text)
	r.Skills = ExtractSkills(text, extractBlock(text, skillsHeader))
	r.Experience = ExtractExperience(lines)
	r.Education = ExtractEducation(text)
	r.Certifications = ExtractCertifications(text)

	r.TotalYearsExperience = TotalYears(r.Experience)
	r.SeniorityLevel = DetermineSeniority(r.Experience, r.TotalYearsExperience)
	r.ParsingConfidence = ComputeParsingConfidence(r)

	return r
}
