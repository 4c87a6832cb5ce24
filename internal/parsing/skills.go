package parsing

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/jonathan/resume-scorer/internal/vocabulary"
)

const (
	explicitSkillBase   = 50
	inferredSkillBase   = 20
	occurrenceIncrement = 10
	maxSkillConfidence  = 100
)

// ExtractSkills scans text for every vocabulary skill. A skill is explicit when it
// also appears inside skillsBlock. Results are sorted by descending confidence.
func ExtractSkills(text, skillsBlock string) []types.ParsedSkill {
	lowerText := strings.ToLower(text)
	lowerBlock := strings.ToLower(skillsBlock)

	skills := make([]types.ParsedSkill, 0)
	seen := make(map[string]bool)

	for _, v := range vocabulary.Skills() {
		idx := strings.Index(lowerText, v.Term)
		if idx < 0 {
			continue
		}

		name := v.Term
		// Byte offsets only line up when lowercasing kept the length
		if len(lowerText) == len(text) {
			name = text[idx : idx+len(v.Term)]
		}

		explicit := lowerBlock != "" && strings.Contains(lowerBlock, v.Term)
		base := inferredSkillBase
		if explicit {
			base = explicitSkillBase
		}
		confidence := min(maxSkillConfidence, base+occurrenceIncrement*strings.Count(lowerText, v.Term))

		skill := types.ParsedSkill{
			Name:           name,
			NormalizedName: NormalizeSkillName(name),
			Category:       v.Category,
			Confidence:     confidence,
			IsExplicit:     explicit,
		}

		// Aliases such as "k8s" and "kubernetes" stay separate entries
		if seen[v.Term] {
			continue
		}
		seen[v.Term] = true
		skills = append(skills, skill)
	}

	sortByConfidence(skills)
	return skills
}

// sortByConfidence orders skills by descending confidence, keeping vocabulary order on ties.
func sortByConfidence(skills []types.ParsedSkill) {
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Confidence > skills[j].Confidence
	})
}

// vocabularyTermsIn returns the skill vocabulary terms found in any of texts, in vocabulary order.
func vocabularyTermsIn(texts []string) []string {
	joined := strings.ToLower(strings.Join(texts, "\n"))
	terms := make([]string, 0)
	if joined == "" {
		return terms
	}
	for _, v := range vocabulary.Skills() {
		if strings.Contains(joined, v.Term) {
			terms = append(terms, v.Term)
		}
	}
	return terms
}
