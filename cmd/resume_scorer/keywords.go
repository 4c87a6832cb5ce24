package main

import (
	"github.com/jonathan/resume-scorer/internal/matching"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract technical keywords from a job description",
	RunE:  runKeywords,
}

var (
	keywordsJobFile string
	keywordsJobURL  string
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsJobFile, "job", "j", "", "Path to the job description file")
	keywordsCmd.Flags().StringVarP(&keywordsJobURL, "job-url", "u", "", "URL of the job posting")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	job, err := readJob(cmd.Context(), keywordsJobFile, keywordsJobURL)
	if err != nil {
		return err
	}

	keywords := matching.ExtractJobKeywords(job)
	if keywords == nil {
		keywords = []string{}
	}
	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintKeywords(keywords)
	}
	return writeJSON(cmd, "", "", map[string][]string{"keywords": keywords})
}
