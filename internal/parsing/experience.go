package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	aggregateExperienceTitle = "Professional Experience"
	maxAggregateBullets      = 10
	minBulletLength          = 10
)

var bulletMarkers = []string{"•", "-", "–", ">", "▸", "◆"}

// ExtractBullets returns bullet-like lines with their marker removed.
func ExtractBullets(lines []string) []string {
	bullets := make([]string, 0)
	for _, line := range lines {
		if b, ok := bulletText(line); ok {
			bullets = append(bullets, b)
		}
	}
	return bullets
}

func bulletText(line string) (string, bool) {
	line = strings.TrimSpace(line)
	for _, marker := range bulletMarkers {
		if !strings.HasPrefix(line, marker) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, marker))
		if utf8.RuneCountInString(rest) < minBulletLength {
			return "", false
		}
		return rest, true
	}
	return "", false
}

// ExtractExperience collapses all bullet lines into a single aggregate entry.
// Free text gives no reliable job boundaries, so several jobs end up in one entry.
func ExtractExperience(lines []string) []types.ParsedExperience {
	bullets := ExtractBullets(lines)
	if len(bullets) == 0 {
		return []types.ParsedExperience{}
	}
	if len(bullets) > maxAggregateBullets {
		bullets = bullets[:maxAggregateBullets]
	}

	return []types.ParsedExperience{{
		Title:           aggregateExperienceTitle,
		NormalizedTitle: NormalizeTitle(aggregateExperienceTitle),
		Bullets:         bullets,
		Keywords:        vocabularyTermsIn(bullets),
	}}
}
