package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-scorer/internal/content"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Convert structured resume JSON into a parsed resume",
	Long:  "Read resume content JSON in any supported shape, normalize it, and write the parsed resume together with its plain-text rendering.",
	RunE:  runNormalize,
}

var (
	normalizeInput string
	normalizeOut   string
)

// normalizeOutput is the JSON written by the normalize command.
type normalizeOutput struct {
	Resume *types.ParsedResume `json:"resume"`
	Text   string              `json:"text"`
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInput, "in", "i", "", "Path to the resume content JSON (required)")
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "Output JSON file (default stdout)")

	_ = normalizeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(normalizeInput)
	if err != nil {
		return fmt.Errorf("failed to read content file: %w", err)
	}

	c, err := content.Normalize(data)
	if err != nil {
		return err
	}

	out := normalizeOutput{
		Resume: parsing.FromContent(c, time.Now()),
		Text:   content.Render(c),
	}
	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintParsedResume(out.Resume)
	}
	return writeJSON(cmd, normalizeOut, "", out)
}
