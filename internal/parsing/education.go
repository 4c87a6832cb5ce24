package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/jonathan/resume-scorer/internal/vocabulary"
)

var (
	// Long forms are case-insensitive. Abbreviations are case-sensitive so that
	// words like "ma" or "ms" in prose do not count as degrees.
	degreePattern = regexp.MustCompile(`(?:^|[^A-Za-z])(` +
		`(?i:bachelor(?:'s)?(?: of (?:science|arts|engineering|business administration|fine arts))?` +
		`|master(?:'s)?(?: of (?:science|arts|engineering|business administration|fine arts))?` +
		`|doctor of philosophy|doctorate|ph\.d\.?|phd|associate(?:'s)? degree)` +
		`|B\.S\.?|B\.A\.?|M\.S\.?|M\.A\.?|B\.Sc\.?|M\.Sc\.?|BSc|MSc|MBA|BS|BA|MS|MA)(?:[^A-Za-z]|$)`)
	fieldPattern       = regexp.MustCompile(`^[ \t]*,?[ \t]*(?i:in|of)[ \t]+([A-Z][A-Za-z&]*(?:[ \t]+(?:and[ \t]+)?[A-Z][A-Za-z&]*)*)`)
	institutionPattern = regexp.MustCompile(`\b((?:[A-Z][A-Za-z.&'-]*[ \t]+){0,4}(?:University|College|Institute|School|Academy)(?:[ \t]+of(?:[ \t]+[A-Z][A-Za-z.&'-]*)+)?)`)
	yearPattern        = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	gpaPattern         = regexp.MustCompile(`(?i)\bGPA[ \t]*:?[ \t]*([0-4]\.\d{1,2})|\b([0-4]\.\d{1,2})[ \t]*/[ \t]*4\.0\b`)
)

// ExtractEducation returns at most one education entry found by keyword heuristics.
// The education block is searched first, then the whole text.
func ExtractEducation(text string) []types.ParsedEducation {
	scope := extractBlock(text, educationHeader)
	if scope == "" {
		scope = text
	}

	edu := types.ParsedEducation{}
	edu.Degree, edu.Field = findDegree(scope)
	if edu.Degree == "" && scope != text {
		edu.Degree, edu.Field = findDegree(text)
	}

	edu.Institution = findInstitution(scope)
	if edu.Institution == "" && scope != text {
		edu.Institution = findInstitution(text)
	}

	if edu.Degree == "" && edu.Institution == "" {
		return []types.ParsedEducation{}
	}

	years := yearPattern.FindAllString(scope, 2)
	switch len(years) {
	case 2:
		edu.StartYear, edu.EndYear = years[0], years[1]
	case 1:
		// With one year it is unclear whether it starts or ends the degree; read it as graduation
		edu.EndYear = years[0]
	}

	if m := gpaPattern.FindStringSubmatch(scope); m != nil {
		edu.GPA = m[1]
		if edu.GPA == "" {
			edu.GPA = m[2]
		}
	}

	return []types.ParsedEducation{edu}
}

func findDegree(text string) (degree, field string) {
	// Matches consume their surrounding separators, so scan from the end of
	// each rejected match rather than using FindAll.
	for offset := 0; offset < len(text); {
		loc := degreePattern.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[2], offset+loc[3]
		offset = end
		match := text[start:end]
		if isStateAbbreviation(text, start, match) {
			continue
		}
		if m := fieldPattern.FindStringSubmatch(text[end:]); m != nil {
			field = strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(match), field
	}
	return "", ""
}

// isStateAbbreviation reports whether a two-letter match such as "MA" is really
// the state in a "City, MA" location.
func isStateAbbreviation(text string, start int, match string) bool {
	if len(match) != 2 || !vocabulary.IsUSState(match) {
		return false
	}
	before := strings.TrimRight(text[:start], " \t")
	return strings.HasSuffix(before, ",")
}

func findInstitution(text string) string {
	m := institutionPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ExtractCertifications returns the certification vocabulary entries mentioned in text.
func ExtractCertifications(text string) []string {
	lower := strings.ToLower(text)
	certs := make([]string, 0)
	seen := make(map[string]bool)
	for _, c := range vocabulary.Certifications() {
		key := strings.ToLower(c)
		if seen[key] || !strings.Contains(lower, key) {
			continue
		}
		seen[key] = true
		certs = append(certs, c)
	}
	return certs
}
