// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the box's inner width, counting runes.
func pad(line string) string {
	width := boxWidth - 4
	if utf8.RuneCountInString(line) > width {
		runes := []rune(line)
		line = string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-utf8.RuneCountInString(line))
}

// writeList writes up to maxItemsToShow items under label, noting how many were hidden.
func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s (%d):\n", label, len(items))
	for i, item := range items {
		if i >= maxItemsToShow {
			fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
			break
		}
		fmt.Fprintf(sb, "  • %s\n", item)
	}
}

// PrintParsedResume outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintParsedResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	name := resume.Contact.Name
	if name == "" {
		name = "(not detected)"
	}
	fmt.Fprintf(&sb, "Name:        %s\n", name)
	if resume.Contact.Email != "" {
		fmt.Fprintf(&sb, "Email:       %s\n", resume.Contact.Email)
	}
	fmt.Fprintf(&sb, "Seniority:   %s (%.1f years)\n", resume.SeniorityLevel, resume.TotalYearsExperience)
	fmt.Fprintf(&sb, "Confidence:  %d/100\n", resume.ParsingConfidence)
	if len(resume.DetectedSections) > 0 {
		fmt.Fprintf(&sb, "Sections:    %s\n", strings.Join(resume.DetectedSections, ", "))
	}
	sb.WriteString("\n")

	skills := make([]string, 0, len(resume.Skills))
	for _, s := range resume.Skills {
		marker := ""
		if s.IsExplicit {
			marker = ", listed"
		}
		skills = append(skills, fmt.Sprintf("%s [%s] %d%%%s", s.NormalizedName, s.Category, s.Confidence, marker))
	}
	writeList(&sb, "Skills", skills)

	experience := make([]string, 0, len(resume.Experience))
	for _, e := range resume.Experience {
		line := e.Title
		if line == "" {
			line = "(untitled)"
		}
		if e.Company != "" {
			line += " @ " + e.Company
		}
		if len(e.Bullets) > 0 {
			line += fmt.Sprintf(" (%d bullets)", len(e.Bullets))
		}
		experience = append(experience, line)
	}
	writeList(&sb, "Experience", experience)

	education := make([]string, 0, len(resume.Education))
	for _, e := range resume.Education {
		parts := make([]string, 0, 3)
		for _, s := range []string{e.Degree, e.Institution, e.EndYear} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			education = append(education, strings.Join(parts, ", "))
		}
	}
	writeList(&sb, "Education", education)
	writeList(&sb, "Certifications", resume.Certifications)

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs a human-readable summary of a match result.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:      %3d/100\n", result.OverallScore)
	fmt.Fprintf(&sb, "Keywords:     %3d/100\n", result.KeywordMatch)
	fmt.Fprintf(&sb, "Skills:       %3d/100\n", result.SkillCoverage)
	fmt.Fprintf(&sb, "Experience:   %3d/100\n", result.ExperienceAlignment)
	fmt.Fprintf(&sb, "Formatting:   %3d/100\n", result.FormattingScore)
	sb.WriteString("\n")

	writeList(&sb, "Matched keywords", result.MatchedKeywords)
	writeList(&sb, "Missing keywords", result.MissingKeywords)
	writeList(&sb, "Strengths", result.Strengths)
	writeList(&sb, "Gaps", result.ExperienceGaps)
	writeList(&sb, "Recommendations", result.Recommendations)

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs the keywords extracted from a job description.
func (p *Printer) PrintKeywords(keywords []string) {
	if len(keywords) == 0 {
		p.printBox("JOB KEYWORDS", "No technical keywords found")
		return
	}
	p.printBox("JOB KEYWORDS", fmt.Sprintf("%d keywords:\n%s", len(keywords), wrap(keywords, boxWidth-4)))
}

// PrintBatchSummary outputs the totals of a batch parse.
func (p *Printer) PrintBatchSummary(parsed int, failed []string) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Parsed:  %d\n", parsed)
	fmt.Fprintf(&sb, "Failed:  %d\n", len(failed))
	if len(failed) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Failures", failed)
	}
	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap joins words with ", " into lines no wider than width.
func wrap(words []string, width int) string {
	var lines []string
	var line string
	for i, w := range words {
		piece := w
		if i < len(words)-1 {
			piece += ","
		}
		switch {
		case line == "":
			line = piece
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(piece) > width:
			lines = append(lines, line)
			line = piece
		default:
			line += " " + piece
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
