package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-scorer/internal/db"
	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/matching"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a job description",
	Long:  "Parse a resume, extract the job's keywords, and compute keyword, skill, experience, formatting, and overall scores with recommendations. --ai refines the heuristic scores with Gemini.",
	RunE:  runMatch,
}

var (
	matchResume  string
	matchJobFile string
	matchJobURL  string
	matchUseAI   bool
	matchAPIKey  string
	matchOut     string
	matchDBURL   string
)

func init() {
	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to the resume file (required)")
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to the job description file")
	matchCmd.Flags().StringVarP(&matchJobURL, "job-url", "u", "", "URL of the job posting")
	matchCmd.Flags().BoolVar(&matchUseAI, "ai", false, "Refine scores with the Gemini model")
	matchCmd.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	matchCmd.Flags().StringVarP(&matchOut, "out", "o", "", "Output JSON file (default stdout)")
	matchCmd.Flags().StringVar(&matchDBURL, "db-url", "", "PostgreSQL URL to record the analysis in")

	_ = matchCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	resumeText, err := ingestion.ReadFile(matchResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	job, err := readJob(ctx, matchJobFile, matchJobURL)
	if err != nil {
		return err
	}

	var refiner matching.Refiner
	if matchUseAI {
		r, closer, err := newRefiner(ctx, matchAPIKey)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()
		refiner = r
	}

	result, refined := matching.RefineMatch(ctx, refiner, nil, resumeText, job)
	if matchUseAI && !refined {
		slog.Warn("using heuristic scores; AI refinement was not applied")
	}

	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintMatchResult(result)
	}

	if err := writeJSON(cmd, matchOut, schemas.MatchResult, result); err != nil {
		return err
	}
	return saveAnalysis(ctx, matchDBURL, db.KindMatch, resumeText+"\n\n"+job, result)
}
