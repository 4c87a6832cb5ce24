// Package ingestion turns resume files and job posting URLs into clean plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:br />|<w:cr/>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// SupportedExtensions lists the file extensions ExtractText understands.
func SupportedExtensions() []string {
	return []string{".txt", ".md", ".text", ".pdf", ".docx", ".html", ".htm"}
}

// ExtractText returns the cleaned plain text of a document. The format is chosen
// by the extension of filename.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".txt", ".md", ".text":
		text = string(data)
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	case ".html", ".htm":
		text, err = fetch.ExtractMainText(string(data), fetch.JobPostingSelectors())
		if err != nil {
			err = &ExtractionError{Format: "html", Message: "invalid document", Cause: err}
		}
	default:
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// ReadFile reads and extracts the document at path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractText(filepath.Base(path), data)
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Message: "failed to open document", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", &ExtractionError{Format: "pdf", Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		// Fragments within a row are pieces of the same line
		for _, row := range rows {
			for _, fragment := range row.Content {
				sb.WriteString(fragment.S)
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Message: "failed to open document", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText converts WordprocessingML body XML to plain text, one paragraph per line.
func docxXMLToText(xml string) string {
	xml = docxParagraphEnd.ReplaceAllString(xml, "\n")
	xml = docxTab.ReplaceAllString(xml, "\t")
	return html.UnescapeString(xmlTag.ReplaceAllString(xml, ""))
}
