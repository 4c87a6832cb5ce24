package main

import (
	"fmt"

	"github.com/jonathan/resume-scorer/internal/db"
	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume into structured JSON",
	Long:  "Extract text from a resume (txt, md, pdf, docx, html), parse it into structured data, and write schema-validated JSON.",
	RunE:  runParse,
}

var (
	parseInput string
	parseOut   string
	parseDBURL string
)

func init() {
	parseCmd.Flags().StringVarP(&parseInput, "in", "i", "", "Path to the resume file (required)")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Output JSON file (default stdout)")
	parseCmd.Flags().StringVar(&parseDBURL, "db-url", "", "PostgreSQL URL to record the analysis in")

	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	text, err := ingestion.ReadFile(parseInput)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	resume := parsing.ParseResume(text)
	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintParsedResume(resume)
	}

	if err := writeJSON(cmd, parseOut, schemas.ParsedResume, resume); err != nil {
		return err
	}
	return saveAnalysis(cmd.Context(), parseDBURL, db.KindParse, text, resume)
}
