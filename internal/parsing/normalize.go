package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-scorer/internal/vocabulary"
)

// NormalizeSkillName normalizes a skill name to its canonical form.
// Names missing from the alias table are title-cased word by word.
func NormalizeSkillName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	if canonical, ok := vocabulary.CanonicalSkill(strings.ToLower(normalized)); ok {
		return canonical
	}

	return titleCase(normalized, false)
}

// NormalizeTitle normalizes a job title to its canonical form.
func NormalizeTitle(title string) string {
	normalized := strings.Join(strings.Fields(title), " ")
	if normalized == "" {
		return ""
	}

	if canonical, ok := vocabulary.CanonicalTitle(strings.ToLower(normalized)); ok {
		return canonical
	}

	return titleCase(normalized, true)
}

// lowercase connectives inside titles ("Director of Engineering").
var titleSmallWords = map[string]bool{
	"of": true, "and": true, "the": true, "for": true, "in": true, "at": true, "to": true,
}

// titleCase capitalizes each space-separated word and lowercases the rest of it.
// With keepAcronyms set, short all-caps words such as "VP" or "QA" are left alone.
func titleCase(s string, keepAcronyms bool) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		lower := strings.ToLower(w)
		if keepAcronyms && i > 0 && titleSmallWords[lower] {
			words[i] = lower
			continue
		}
		if keepAcronyms && utf8.RuneCountInString(w) <= 3 && w == strings.ToUpper(w) {
			continue
		}
		r, size := utf8.DecodeRuneInString(lower)
		words[i] = string(unicode.ToUpper(r)) + lower[size:]
	}
	return strings.Join(words, " ")
}
