package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/jonathan/resume-scorer/internal/vocabulary"
)

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+?1[-.\s]?)?(?:\(\d{3}\)|\b\d{3})[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	linkedInPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/[A-Za-z0-9_\-/%.]+`)
	gitHubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_\-/.]+`)
	locationPattern = regexp.MustCompile(`\b([A-Z][A-Za-z.'-]+(?:[ \t][A-Z][A-Za-z.'-]+){0,2}),[ \t]*([A-Z]{2})\b`)
	portfolioLabel  = regexp.MustCompile(`(?i)\b(?:portfolio|website)[ \t]*:[ \t]*(\S+)`)
	urlPattern      = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s|,;]+`)
	digitRun        = regexp.MustCompile(`\d{3,}`)
)

// ExtractContact pulls contact fields out of text. lines are the trimmed,
// non-empty lines of text and are used for the name heuristic.
func ExtractContact(text string, lines []string) types.ParsedContact {
	contact := types.ParsedContact{
		Email:    emailPattern.FindString(text),
		LinkedIn: trimURL(linkedInPattern.FindString(text)),
		GitHub:   trimURL(gitHubPattern.FindString(text)),
	}

	if m := phonePattern.FindString(text); m != "" {
		contact.Phone = strings.TrimSpace(m)
	}
	contact.Location = extractLocation(text)
	contact.Portfolio = extractPortfolio(text)
	contact.Name = extractName(lines)

	return contact
}

func extractLocation(text string) string {
	for _, m := range locationPattern.FindAllStringSubmatch(text, -1) {
		if vocabulary.IsUSState(m[2]) {
			return m[1] + ", " + m[2]
		}
	}
	return ""
}

func extractPortfolio(text string) string {
	if m := portfolioLabel.FindStringSubmatch(text); m != nil {
		return trimURL(m[1])
	}
	for _, u := range urlPattern.FindAllString(text, -1) {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		return trimURL(u)
	}
	return ""
}

// extractName treats the first non-trivial line as the candidate's name.
// Templates that open with a tagline or heading defeat this.
func extractName(lines []string) string {
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n < 3 || n >= 50 {
			continue
		}
		if strings.Contains(line, "@") || strings.Contains(strings.ToLower(line), "http") || digitRun.MatchString(line) {
			continue
		}
		return line
	}
	return ""
}

func trimURL(s string) string {
	return strings.TrimRight(s, ".,;:)/")
}
