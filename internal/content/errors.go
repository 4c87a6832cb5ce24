package content

import "fmt"

// ParseError represents a resume content payload that could not be read.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("content parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("content parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
