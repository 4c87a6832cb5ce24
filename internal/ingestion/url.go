package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/resume-scorer/internal/fetch"
)

// ErrEmptyPosting is returned when a fetched page yields no text.
var ErrEmptyPosting = errors.New("job posting has no text")

// URLOptions configures IngestJobURL.
type URLOptions struct {
	Fetch *fetch.Options
	// Renderer re-renders JavaScript pages whose HTTP text is too short. Nil disables it.
	Renderer fetch.Renderer
}

// IngestJobURL fetches a job posting and returns its cleaned text with metadata.
func IngestJobURL(ctx context.Context, urlStr string, opts *URLOptions) (string, *Metadata, error) {
	if opts == nil {
		opts = &URLOptions{}
	}

	text, platform, err := fetch.JobPosting(ctx, urlStr, opts.Fetch, opts.Renderer)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch job posting: %w", err)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%s: %w", urlStr, ErrEmptyPosting)
	}

	metadata := NewMetadata(cleaned, urlStr, time.Now())
	metadata.Platform = string(platform)
	slog.Debug("ingested job posting", "url", urlStr, "platform", platform, "chars", metadata.Chars)
	return cleaned, metadata, nil
}
