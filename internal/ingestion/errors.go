package ingestion

import "fmt"

// UnsupportedFormatError is returned for files whose extension has no extractor.
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file format for %q: no extension", e.Filename)
	}
	return fmt.Sprintf("unsupported file format %q for %q", e.Extension, e.Filename)
}

// ExtractionError represents a document that could not be read.
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
