// Package parsing extracts structured resume data from plain text.
//
// Extraction is a bag-of-patterns classifier: a section or field counts as
// present when its pattern matches anywhere in the text. Every function in
// this package is pure and safe for concurrent use.
package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Section names, in the order DetectSections reports them.
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionAwards         = "awards"
)

const maxSummaryLength = 500

type sectionPattern struct {
	name    string
	pattern *regexp.Regexp
}

// sectionPatterns match anywhere in the text, not only in heading position.
var sectionPatterns = []sectionPattern{
	{SectionSummary, regexp.MustCompile(`(?i)\b(summary|objective|profile|about me)\b`)},
	{SectionExperience, regexp.MustCompile(`(?i)\b(experience|work history|employment|career history)\b`)},
	{SectionEducation, regexp.MustCompile(`(?i)\b(education|academic background|academics|qualifications)\b`)},
	{SectionSkills, regexp.MustCompile(`(?i)\b(skills|competencies|technologies|tech stack|expertise)\b`)},
	{SectionProjects, regexp.MustCompile(`(?i)\b(projects?|portfolio)\b`)},
	{SectionCertifications, regexp.MustCompile(`(?i)\b(certifications?|certificates?|licenses?)\b`)},
	{SectionAwards, regexp.MustCompile(`(?i)\b(awards?|honors|honours|achievements)\b`)},
}

// Block headers must start a line. The header text may be followed by a colon
// and content on the same line ("Skills: Go, SQL").
var (
	summaryHeader   = regexp.MustCompile(`(?im)^[ \t]*(?:professional summary|career summary|executive summary|summary|career objective|objective|professional profile|profile|about me)\b[ \t]*:?`)
	skillsHeader    = regexp.MustCompile(`(?im)^[ \t]*(?:technical skills|core skills|key skills|skills|core competencies|competencies|technologies|tech stack)\b[ \t]*:?`)
	educationHeader = regexp.MustCompile(`(?im)^[ \t]*(?:education|academic background|academics)\b[ \t]*:?`)

	// anyHeaderLine ends a block: a known header alone on its line or followed by a colon
	anyHeaderLine = regexp.MustCompile(`(?im)^[ \t]*(?:professional summary|career summary|executive summary|summary|career objective|objective|professional profile|profile|about me|` +
		`work experience|professional experience|experience|work history|employment history|employment|career history|` +
		`education|academic background|academics|` +
		`technical skills|core skills|key skills|skills|core competencies|competencies|technologies|tech stack|` +
		`projects|personal projects|certifications|certificates|licenses|awards|honors|honours|achievements|` +
		`volunteer experience|volunteering|publications|languages|interests|references)[ \t]*(?::|$)`)
)

// DetectSections returns the names of sections whose pattern appears anywhere in text.
func DetectSections(text string) []string {
	found := make([]string, 0, len(sectionPatterns))
	for _, sp := range sectionPatterns {
		if sp.pattern.MatchString(text) {
			found = append(found, sp.name)
		}
	}
	return found
}

// extractBlock returns the text following the first match of header, up to the
// next header line, a triple newline, or the end of the text.
func extractBlock(text string, header *regexp.Regexp) string {
	loc := header.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]

	end := len(rest)
	if next := anyHeaderLine.FindStringIndex(rest); next != nil && next[0] < end {
		end = next[0]
	}
	if idx := strings.Index(rest, "\n\n\n"); idx >= 0 && idx < end {
		end = idx
	}
	return strings.TrimSpace(rest[:end])
}

// extractSummary returns the summary block, truncated to maxSummaryLength characters.
func extractSummary(text string) string {
	return truncateRunes(extractBlock(text, summaryHeader), maxSummaryLength)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit]))
}

// splitLines trims each line and drops empty ones.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
