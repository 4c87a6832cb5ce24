package matching

import "fmt"

// RefinementError represents a failed or unusable AI refinement.
type RefinementError struct {
	Message string
	Cause   error
}

func (e *RefinementError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("refinement failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("refinement failed: %s", e.Message)
}

func (e *RefinementError) Unwrap() error {
	return e.Cause
}
