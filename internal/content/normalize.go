// Package content maps the variant resume-content JSON shapes stored by the
// product ("contact" vs "personalInfo", "bullets" vs "responsibilities", and so
// on) into the single canonical types.ResumeContent.
package content

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Alternative keys for each canonical field, most common first.
var (
	wrapperKeys     = []string{"content", "resume", "data"}
	contactKeys     = []string{"contact", "personalInfo", "personal_info", "personal", "basics"}
	nameKeys        = []string{"name", "fullName", "full_name"}
	locationKeys    = []string{"location", "address", "city"}
	linkedInKeys    = []string{"linkedin", "linkedIn", "linkedinUrl", "linkedin_url"}
	gitHubKeys      = []string{"github", "gitHub", "githubUrl", "github_url"}
	portfolioKeys   = []string{"portfolio", "website", "url", "portfolioUrl"}
	summaryKeys     = []string{"summary", "objective", "profile", "about"}
	experienceKeys  = []string{"experience", "workExperience", "work_experience", "work", "employment", "positions"}
	titleKeys       = []string{"title", "position", "role", "jobTitle", "job_title"}
	companyKeys     = []string{"company", "employer", "organization", "name"}
	startKeys       = []string{"startDate", "start_date", "start", "from"}
	endKeys         = []string{"endDate", "end_date", "end", "to"}
	graduationKeys  = []string{"endDate", "end_date", "end", "to", "graduationDate", "graduation_date", "year"}
	currentKeys     = []string{"current", "isCurrent", "is_current"}
	bulletKeys      = []string{"bullets", "responsibilities", "highlights", "achievements"}
	degreeKeys      = []string{"degree", "studyType", "study_type"}
	fieldKeys       = []string{"field", "fieldOfStudy", "field_of_study", "major", "area"}
	institutionKeys = []string{"institution", "school", "university"}
	certKeys        = []string{"certifications", "certificates"}
	projectNameKeys = []string{"name", "title"}
	techKeys        = []string{"technologies", "techStack", "tech_stack", "tech", "keywords"}
)

// Normalize reads a resume content payload in any supported shape.
func Normalize(data []byte) (*types.ResumeContent, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Message: "payload is not valid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Message: "payload must be a JSON object"}
	}
	for _, k := range wrapperKeys {
		if inner := root.Get(k); inner.IsObject() {
			root = inner
			break
		}
	}

	c := types.NewResumeContent()
	c.Contact = readContact(root)
	c.Summary = readText(first(root, summaryKeys...))
	c.Skills = readSkills(root.Get("skills"))

	first(root, experienceKeys...).ForEach(func(_, v gjson.Result) bool {
		if p, ok := readPosition(v); ok {
			c.Experience = append(c.Experience, p)
		}
		return true
	})
	root.Get("education").ForEach(func(_, v gjson.Result) bool {
		if e, ok := readEducation(v); ok {
			c.Education = append(c.Education, e)
		}
		return true
	})
	c.Certifications = readNames(first(root, certKeys...))
	root.Get("projects").ForEach(func(_, v gjson.Result) bool {
		if p, ok := readProject(v); ok {
			c.Projects = append(c.Projects, p)
		}
		return true
	})

	return c, nil
}

// first returns the first key of obj that exists and is not null.
func first(obj gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := obj.Get(k); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func str(obj gjson.Result, keys ...string) string {
	return strings.TrimSpace(first(obj, keys...).String())
}

// readText accepts a string or an object carrying the text under a common key.
func readText(v gjson.Result) string {
	if v.IsObject() {
		return str(v, "text", "content", "value")
	}
	return strings.TrimSpace(v.String())
}

func readContact(root gjson.Result) types.ParsedContact {
	obj := first(root, contactKeys...)
	if !obj.IsObject() {
		obj = root
	}

	name := str(obj, nameKeys...)
	if name == "" {
		name = strings.TrimSpace(str(obj, "firstName", "first_name") + " " + str(obj, "lastName", "last_name"))
	}

	location := first(obj, locationKeys...)
	loc := strings.TrimSpace(location.String())
	if location.IsObject() {
		loc = joinNonEmpty(", ", str(location, "city"), str(location, "region", "state"))
	}

	return types.ParsedContact{
		Name:      name,
		Email:     str(obj, "email"),
		Phone:     str(obj, "phone", "phoneNumber", "phone_number"),
		Location:  loc,
		LinkedIn:  str(obj, linkedInKeys...),
		GitHub:    str(obj, gitHubKeys...),
		Portfolio: str(obj, portfolioKeys...),
	}
}

// readSkills flattens a string, a list of strings or objects, or a map of categories.
func readSkills(v gjson.Result) []string {
	skills := make([]string, 0)
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			return
		}
		seen[strings.ToLower(s)] = true
		skills = append(skills, s)
	}

	var walk func(gjson.Result)
	walk = func(r gjson.Result) {
		switch {
		case r.IsArray():
			r.ForEach(func(_, item gjson.Result) bool {
				walk(item)
				return true
			})
		case r.IsObject():
			// {"name": "Web", "keywords": [...]} groups list their members
			if items := first(r, "items", "skills", "keywords"); items.Exists() {
				walk(items)
				return
			}
			if name := str(r, "name", "skill"); name != "" {
				add(name)
				return
			}
			r.ForEach(func(_, item gjson.Result) bool {
				walk(item)
				return true
			})
		case r.Type == gjson.String:
			for _, part := range strings.FieldsFunc(r.String(), func(c rune) bool { return c == ',' || c == '\n' || c == ';' }) {
				add(part)
			}
		}
	}
	walk(v)
	return skills
}

func readPosition(v gjson.Result) (types.ContentPosition, bool) {
	if !v.IsObject() {
		return types.ContentPosition{}, false
	}
	p := types.ContentPosition{
		Title:     str(v, titleKeys...),
		Company:   str(v, companyKeys...),
		Location:  str(v, "location"),
		StartDate: str(v, startKeys...),
		EndDate:   str(v, endKeys...),
		Current:   first(v, currentKeys...).Bool(),
		Bullets:   readLines(first(v, bulletKeys...)),
	}
	if len(p.Bullets) == 0 {
		p.Bullets = readLines(v.Get("description"))
	}
	return p, p.Title != "" || p.Company != "" || len(p.Bullets) > 0
}

// readLines accepts a list of strings or a newline-separated string.
func readLines(v gjson.Result) []string {
	lines := make([]string, 0)
	add := func(s string) {
		s = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "•-–*▸◆>"))
		if s != "" {
			lines = append(lines, s)
		}
	}
	if v.IsArray() {
		v.ForEach(func(_, item gjson.Result) bool {
			add(readText(item))
			return true
		})
		return lines
	}
	for _, l := range strings.Split(v.String(), "\n") {
		add(l)
	}
	return lines
}

func readEducation(v gjson.Result) (types.ContentEducation, bool) {
	if !v.IsObject() {
		return types.ContentEducation{}, false
	}
	e := types.ContentEducation{
		Degree:      str(v, degreeKeys...),
		Field:       str(v, fieldKeys...),
		Institution: str(v, institutionKeys...),
		StartDate:   str(v, startKeys...),
		EndDate:     str(v, graduationKeys...),
		GPA:         str(v, "gpa", "score"),
	}
	return e, e.Degree != "" || e.Institution != ""
}

func readProject(v gjson.Result) (types.ParsedProject, bool) {
	if !v.IsObject() {
		return types.ParsedProject{}, false
	}
	p := types.ParsedProject{
		Name:         str(v, projectNameKeys...),
		Description:  readText(first(v, "description", "summary")),
		Technologies: readSkills(first(v, techKeys...)),
	}
	return p, p.Name != ""
}

// readNames accepts a list of strings or of objects with a name or title.
func readNames(v gjson.Result) []string {
	names := make([]string, 0)
	v.ForEach(func(_, item gjson.Result) bool {
		name := strings.TrimSpace(item.String())
		if item.IsObject() {
			name = str(item, "name", "title")
		}
		if name != "" {
			names = append(names, name)
		}
		return true
	})
	return names
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
