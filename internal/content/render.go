package content

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Render writes structured content as plain resume text with section headers
// and "- " bullets, the shape the text parser and keyword matcher expect.
func Render(c *types.ResumeContent) string {
	if c == nil {
		return ""
	}
	var b strings.Builder

	writeLine(&b, c.Contact.Name)
	writeLine(&b, joinNonEmpty(" | ", c.Contact.Email, c.Contact.Phone, c.Contact.Location))
	writeLine(&b, joinNonEmpty(" | ", c.Contact.LinkedIn, c.Contact.GitHub, c.Contact.Portfolio))

	if c.Summary != "" {
		writeSection(&b, "SUMMARY")
		writeLine(&b, c.Summary)
	}

	if len(c.Skills) > 0 {
		writeSection(&b, "SKILLS")
		writeLine(&b, strings.Join(c.Skills, ", "))
	}

	if len(c.Experience) > 0 {
		writeSection(&b, "EXPERIENCE")
		for _, p := range c.Experience {
			heading := p.Title
			if p.Company != "" {
				heading = joinNonEmpty(" at ", p.Title, p.Company)
			}
			if dates := dateRange(p.StartDate, p.EndDate, p.Current); dates != "" {
				heading += " (" + dates + ")"
			}
			writeLine(&b, heading)
			for _, bullet := range p.Bullets {
				writeLine(&b, "- "+bullet)
			}
		}
	}

	if len(c.Education) > 0 {
		writeSection(&b, "EDUCATION")
		for _, e := range c.Education {
			degree := e.Degree
			if e.Field != "" {
				degree = joinNonEmpty(" in ", e.Degree, e.Field)
			}
			line := joinNonEmpty(", ", degree, e.Institution)
			if dates := dateRange(e.StartDate, e.EndDate, false); dates != "" {
				line += " (" + dates + ")"
			}
			writeLine(&b, line)
			if e.GPA != "" {
				writeLine(&b, "GPA: "+e.GPA)
			}
		}
	}

	if len(c.Certifications) > 0 {
		writeSection(&b, "CERTIFICATIONS")
		for _, cert := range c.Certifications {
			writeLine(&b, "- "+cert)
		}
	}

	if len(c.Projects) > 0 {
		writeSection(&b, "PROJECTS")
		for _, p := range c.Projects {
			line := p.Name
			if p.Description != "" {
				line += ": " + p.Description
			}
			if len(p.Technologies) > 0 {
				line += fmt.Sprintf(" (%s)", strings.Join(p.Technologies, ", "))
			}
			writeLine(&b, line)
		}
	}

	return strings.TrimSpace(b.String())
}

func writeSection(b *strings.Builder, header string) {
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n")
}

func writeLine(b *strings.Builder, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	b.WriteString(line)
	b.WriteString("\n")
}

func dateRange(start, end string, current bool) string {
	if current && end == "" {
		end = "Present"
	}
	return joinNonEmpty(" - ", start, end)
}
