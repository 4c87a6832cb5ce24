package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-scorer/internal/db"
	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/llm"
	"github.com/jonathan/resume-scorer/internal/matching"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/spf13/cobra"
)

// readJob returns job description text from exactly one of a file or a URL.
func readJob(ctx context.Context, jobFile, jobURL string) (string, error) {
	if jobFile == "" && jobURL == "" {
		return "", fmt.Errorf("either --job or --job-url must be provided")
	}
	if jobFile != "" && jobURL != "" {
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	if jobFile != "" {
		text, err := ingestion.ReadFile(jobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	}

	opts := &ingestion.URLOptions{}
	if appConfig.UseBrowser {
		opts.Renderer = fetch.NewChromeRenderer()
	}
	text, meta, err := ingestion.IngestJobURL(ctx, jobURL, opts)
	if err != nil {
		return "", err
	}
	slog.Debug("fetched job posting", "url", jobURL, "platform", meta.Platform, "chars", meta.Chars)
	return text, nil
}

// writeJSON validates v against schemaName (when set) and writes it as indented
// JSON to outPath, or to the command's stdout when outPath is empty.
func writeJSON(cmd *cobra.Command, outPath, schemaName string, v any) error {
	if schemaName != "" {
		if err := schemas.Validate(schemaName, v); err != nil {
			return fmt.Errorf("output failed schema validation: %w", err)
		}
	}

	data, err := marshalIndent(v)
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return writeFile(outPath, data)
}

func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return append(data, '\n'), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// saveAnalysis records result in the database at dbURL, falling back to the
// configured DATABASE_URL. With neither set it is a no-op.
func saveAnalysis(ctx context.Context, dbURL string, kind db.Kind, input string, result any) error {
	if dbURL == "" {
		dbURL = appConfig.DatabaseURL
	}
	if dbURL == "" {
		return nil
	}

	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	id, err := database.SaveAnalysis(ctx, kind, input, result)
	if err != nil {
		return err
	}
	slog.Info("analysis saved", "id", id, "kind", kind)
	return nil
}

// newRefiner creates the Gemini-backed refiner. The returned closer releases the client.
func newRefiner(ctx context.Context, apiKey string) (matching.Refiner, io.Closer, error) {
	if apiKey == "" {
		apiKey = appConfig.APIKey
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("AI refinement requires --api-key or GEMINI_API_KEY")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(appConfig.Model), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return matching.NewLLMRefiner(client, appConfig.Timeout()), client, nil
}
