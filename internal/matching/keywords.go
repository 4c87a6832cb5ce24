// Package matching scores how well a resume covers the keywords of a job description.
package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/jonathan/resume-scorer/internal/vocabulary"
)

// ExtractJobKeywords returns the lowercase vocabulary terms found in a job description,
// ordered by where they first appear.
func ExtractJobKeywords(jobDescription string) []string {
	lower := strings.ToLower(jobDescription)

	type hit struct {
		term  string
		index int
	}
	hits := make([]hit, 0)
	for _, term := range vocabulary.JobTerms() {
		if idx := strings.Index(lower, term); idx >= 0 {
			hits = append(hits, hit{term: term, index: idx})
		}
	}

	// Stable keeps vocabulary order for terms starting at the same index
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].index < hits[j].index
	})

	keywords := make([]string, 0, len(hits))
	seen := make(map[string]bool, len(hits))
	for _, h := range hits {
		if !seen[h.term] {
			seen[h.term] = true
			keywords = append(keywords, h.term)
		}
	}
	return keywords
}

// MatchKeywords tests each keyword as a case-insensitive substring of the resume text.
func MatchKeywords(resumeText string, keywords []string) types.KeywordMatch {
	lower := strings.ToLower(resumeText)
	return partition(keywords, func(keyword string) bool {
		return strings.Contains(lower, strings.ToLower(keyword))
	})
}

// MatchSkillCoverage counts a keyword as covered when a resume skill's normalized
// name contains it or is contained by it.
func MatchSkillCoverage(skills []types.ParsedSkill, keywords []string) types.KeywordMatch {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		if n := strings.ToLower(strings.TrimSpace(s.NormalizedName)); n != "" {
			names = append(names, n)
		}
	}

	return partition(keywords, func(keyword string) bool {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			return false
		}
		for _, n := range names {
			if strings.Contains(kw, n) || strings.Contains(n, kw) {
				return true
			}
		}
		return false
	})
}

// partition splits keywords by match and scores the matched share, 0 when there are none.
func partition(keywords []string, matches func(string) bool) types.KeywordMatch {
	result := types.KeywordMatch{
		Matched: make([]string, 0, len(keywords)),
		Missing: make([]string, 0),
	}
	for _, k := range keywords {
		if matches(k) {
			result.Matched = append(result.Matched, k)
		} else {
			result.Missing = append(result.Missing, k)
		}
	}
	result.Score = percentage(len(result.Matched), len(keywords))
	return result
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
