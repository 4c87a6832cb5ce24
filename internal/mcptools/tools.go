// Package mcptools exposes resume parsing and job matching as MCP tools.
package mcptools

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/resume-scorer/internal/matching"
	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName identifies this server to MCP clients.
const ServerName = "resume_scorer"

// ParseResumeInput is the input for the parse_resume tool.
type ParseResumeInput struct {
	Text string `json:"text" jsonschema:"Plain text of the resume"`
}

// ParseResumeOutput is the output for the parse_resume tool.
type ParseResumeOutput struct {
	Resume *types.ParsedResume `json:"resume"`
}

// KeywordsInput is the input for the extract_job_keywords tool.
type KeywordsInput struct {
	JobDescription string `json:"job_description" jsonschema:"Full text of the job description"`
}

// KeywordsOutput is the output for the extract_job_keywords tool.
type KeywordsOutput struct {
	Keywords []string `json:"keywords"`
}

// MatchInput is the input for the match_resume tool.
type MatchInput struct {
	ResumeText     string `json:"resume_text" jsonschema:"Plain text of the resume"`
	JobDescription string `json:"job_description" jsonschema:"Full text of the job description"`
	UseAI          bool   `json:"use_ai,omitempty" jsonschema:"Refine the heuristic scores with the configured model"`
}

// MatchOutput is the output for the match_resume tool.
type MatchOutput struct {
	Result  *types.MatchResult `json:"result"`
	Refined bool               `json:"refined"`
}

// Tools holds the collaborators shared by the tool handlers.
type Tools struct {
	refiner matching.Refiner
}

// New creates the tool set. refiner may be nil, in which case use_ai is ignored.
func New(refiner matching.Refiner) *Tools {
	return &Tools{refiner: refiner}
}

// NewServer creates an MCP server with every tool registered.
func NewServer(version string, refiner matching.Refiner) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)
	New(refiner).Register(server)
	return server
}

// Register adds the tools to server.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "parse_resume",
		Description: "Parse plain resume text into structured data: contact details, skills with " +
			"confidence scores, experience, education, certifications, total years of experience, " +
			"seniority level, and an overall parsing confidence (0-100).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.ParseResume)

	mcp.AddTool(server, &mcp.Tool{
		Name: "extract_job_keywords",
		Description: "Extract the technical skills and notable phrases a job description asks for, " +
			"in order of first appearance.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.ExtractJobKeywords)

	mcp.AddTool(server, &mcp.Tool{
		Name: "match_resume",
		Description: "Score how well a resume matches a job description. Returns keyword match, skill " +
			"coverage, experience alignment, formatting, and overall scores (0-100) with matched and " +
			"missing keywords, strengths, experience gaps, and recommendations.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.MatchResume)
}

// ParseResume handles the parse_resume tool.
func (t *Tools) ParseResume(_ context.Context, _ *mcp.CallToolRequest, input ParseResumeInput) (*mcp.CallToolResult, ParseResumeOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ParseResumeOutput{}, errors.New("text is required")
	}
	return nil, ParseResumeOutput{Resume: parsing.ParseResume(input.Text)}, nil
}

// ExtractJobKeywords handles the extract_job_keywords tool.
func (t *Tools) ExtractJobKeywords(_ context.Context, _ *mcp.CallToolRequest, input KeywordsInput) (*mcp.CallToolResult, KeywordsOutput, error) {
	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, KeywordsOutput{}, errors.New("job_description is required")
	}
	keywords := matching.ExtractJobKeywords(input.JobDescription)
	if keywords == nil {
		keywords = []string{}
	}
	return nil, KeywordsOutput{Keywords: keywords}, nil
}

// MatchResume handles the match_resume tool.
func (t *Tools) MatchResume(ctx context.Context, _ *mcp.CallToolRequest, input MatchInput) (*mcp.CallToolResult, MatchOutput, error) {
	if strings.TrimSpace(input.ResumeText) == "" {
		return nil, MatchOutput{}, errors.New("resume_text is required")
	}
	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, MatchOutput{}, errors.New("job_description is required")
	}

	var refiner matching.Refiner
	if input.UseAI {
		refiner = t.refiner
	}
	result, refined := matching.RefineMatch(ctx, refiner, nil, input.ResumeText, input.JobDescription)
	return nil, MatchOutput{Result: result, Refined: refined}, nil
}
