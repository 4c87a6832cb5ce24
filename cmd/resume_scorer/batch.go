package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every resume in a directory",
	Long:  "Parse each supported resume file in --dir concurrently and write <name>.json files to --out. Files that fail are reported and skipped.",
	RunE:  runBatch,
}

var (
	batchDir     string
	batchOut     string
	batchWorkers int
)

func init() {
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory of resume files (required)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Output directory (required)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 4, "Number of files parsed concurrently")

	_ = batchCmd.MarkFlagRequired("dir")
	_ = batchCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(batchCmd)
}

// batchInputs lists the supported files directly inside dir, sorted by name.
func batchInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	supported := ingestion.SupportedExtensions()
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(supported, strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if batchWorkers < 1 {
		return fmt.Errorf("--workers must be at least 1")
	}

	files, err := batchInputs(batchDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported resume files in %s", batchDir)
	}
	if err := os.MkdirAll(batchOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var (
		mu     sync.Mutex
		failed []string
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchWorkers)

	for _, path := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := parseToFile(path, batchOut); err != nil {
				slog.Warn("failed to parse resume", "file", path, "error", err)
				mu.Lock()
				failed = append(failed, fmt.Sprintf("%s: %v", filepath.Base(path), err))
				mu.Unlock()
			}
			// Per-file failures do not cancel the rest of the batch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Strings(failed)
	parsed := len(files) - len(failed)
	observability.NewPrinter(cmd.ErrOrStderr()).PrintBatchSummary(parsed, failed)

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed to parse", len(failed), len(files))
	}
	return nil
}

// parseToFile parses the resume at path and writes <outDir>/<base>.json.
func parseToFile(path, outDir string) error {
	text, err := ingestion.ReadFile(path)
	if err != nil {
		return err
	}

	resume := parsing.ParseResume(text)
	if err := schemas.Validate(schemas.ParsedResume, resume); err != nil {
		return err
	}

	data, err := marshalIndent(resume)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return writeFile(filepath.Join(outDir, base+".json"), data)
}
