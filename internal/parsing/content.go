package parsing

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-scorer/internal/content"
	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/jonathan/resume-scorer/internal/vocabulary"
)

var dateLayouts = []string{
	"2006-01",
	"2006-01-02",
	"01/2006",
	"1/2006",
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
	"2006",
}

var currentMarkers = map[string]bool{"present": true, "current": true, "now": true, "ongoing": true}

// FromContent builds a ParsedResume from structured content. Unlike the text
// path it keeps one experience entry per job and derives durations from dates.
// now is the reference time for current positions.
func FromContent(c *types.ResumeContent, now time.Time) *types.ParsedResume {
	r := types.NewParsedResume()
	if c == nil {
		return r
	}
	text := content.Render(c)

	r.Contact = c.Contact
	r.Summary = truncateRunes(strings.TrimSpace(c.Summary), maxSummaryLength)
	r.Skills = contentSkills(c.Skills, strings.ToLower(text))

	for _, p := range c.Experience {
		r.Experience = append(r.Experience, contentExperience(p, now))
	}
	for _, e := range c.Education {
		r.Education = append(r.Education, types.ParsedEducation{
			Degree:      e.Degree,
			Field:       e.Field,
			Institution: e.Institution,
			StartYear:   yearOf(e.StartDate),
			EndYear:     yearOf(e.EndDate),
			GPA:         e.GPA,
		})
	}

	seen := make(map[string]bool)
	for _, cert := range c.Certifications {
		if key := strings.ToLower(strings.TrimSpace(cert)); key != "" && !seen[key] {
			seen[key] = true
			r.Certifications = append(r.Certifications, strings.TrimSpace(cert))
		}
	}
	for _, p := range c.Projects {
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		r.Projects = append(r.Projects, p)
	}

	r.DetectedSections = contentSections(c)
	r.TotalYearsExperience = TotalYears(r.Experience)
	r.SeniorityLevel = DetermineSeniority(r.Experience, r.TotalYearsExperience)
	r.ParsingConfidence = ComputeParsingConfidence(r)
	return r
}

// contentSkills treats every listed skill as explicit.
func contentSkills(names []string, lowerText string) []types.ParsedSkill {
	categories := make(map[string]types.SkillCategory)
	for _, v := range vocabulary.Skills() {
		categories[v.Term] = v.Category
	}

	skills := make([]types.ParsedSkill, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		lower := strings.ToLower(name)
		if name == "" || seen[lower] {
			continue
		}
		seen[lower] = true

		category, ok := categories[lower]
		if !ok {
			category = types.CategoryTechnical
		}
		skills = append(skills, types.ParsedSkill{
			Name:           name,
			NormalizedName: NormalizeSkillName(name),
			Category:       category,
			Confidence:     min(maxSkillConfidence, explicitSkillBase+occurrenceIncrement*strings.Count(lowerText, lower)),
			IsExplicit:     true,
		})
	}
	sortByConfidence(skills)
	return skills
}

func contentExperience(p types.ContentPosition, now time.Time) types.ParsedExperience {
	bullets := make([]string, 0, len(p.Bullets))
	for _, b := range p.Bullets {
		if b = strings.TrimSpace(b); b != "" {
			bullets = append(bullets, b)
		}
	}

	current := p.Current || currentMarkers[strings.ToLower(strings.TrimSpace(p.EndDate))]
	duration := 0
	if start, ok := parseDate(p.StartDate); ok {
		end, endOK := parseDate(p.EndDate)
		if current {
			end, endOK = now, true
		}
		if endOK {
			duration = monthsBetween(start, end)
		}
	}

	return types.ParsedExperience{
		Title:           p.Title,
		NormalizedTitle: NormalizeTitle(p.Title),
		Company:         p.Company,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Duration:        duration,
		IsCurrent:       current,
		Bullets:         bullets,
		Keywords:        vocabularyTermsIn(bullets),
	}
}

func contentSections(c *types.ResumeContent) []string {
	sections := make([]string, 0)
	add := func(present bool, name string) {
		if present {
			sections = append(sections, name)
		}
	}
	add(strings.TrimSpace(c.Summary) != "", SectionSummary)
	add(len(c.Experience) > 0, SectionExperience)
	add(len(c.Education) > 0, SectionEducation)
	add(len(c.Skills) > 0, SectionSkills)
	add(len(c.Projects) > 0, SectionProjects)
	add(len(c.Certifications) > 0, SectionCertifications)
	return sections
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// monthsBetween returns whole calendar months from start to end, never negative.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	return max(0, months)
}

var fourDigitYear = regexp.MustCompile(`\b(19|20)\d{2}\b`)

func yearOf(date string) string {
	return fourDigitYear.FindString(date)
}
