// Package main provides the resume_scorer CLI: resume parsing, job matching,
// and the HTTP and MCP servers.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	verbose    bool

	// appConfig is loaded once before any command runs
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:           "resume_scorer",
	Short:         "Resume parsing and job match scoring",
	Long:          "resume_scorer parses resumes into structured data and scores them against job descriptions, from the command line, over HTTP, or as MCP tools.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath, os.Getenv)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Verbose = true
		}
		appConfig = cfg
		slog.SetDefault(setupLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.Verbose))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries and debug logs to stderr")
}

// setupLogger builds the process logger. format is "json" or "text".
func setupLogger(w io.Writer, format string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
