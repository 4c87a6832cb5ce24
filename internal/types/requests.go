// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ParseRequest is the body of a resume parse request.
type ParseRequest struct {
	Text string `json:"text" validate:"required,max=200000"`
}

// NormalizeRequest carries a variant-shaped resume content payload.
type NormalizeRequest struct {
	Content json.RawMessage `json:"content" validate:"required"`
}

// KeywordsRequest is the body of a job keyword extraction request.
type KeywordsRequest struct {
	JobDescription string `json:"job_description" validate:"required,max=100000"`
}

// MatchRequest is the body of a resume/job match request.
type MatchRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,max=200000"`
	JobDescription string `json:"job_description" validate:"required,max=100000"`
	UseAI          bool   `json:"use_ai,omitempty"`
}

// Validate validates the ParseRequest using the validator.
func (r *ParseRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the NormalizeRequest using the validator.
func (r *NormalizeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the KeywordsRequest using the validator.
func (r *KeywordsRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	return validate.Struct(r)
}
