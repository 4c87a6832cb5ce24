package main

import (
	"log/slog"

	"github.com/jonathan/resume-scorer/internal/matching"
	"github.com/jonathan/resume-scorer/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the MCP tools over stdio",
	Long:  "Run an MCP server on stdin/stdout exposing parse_resume, extract_job_keywords, and match_resume. match_resume honors use_ai when GEMINI_API_KEY is set.",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var refiner matching.Refiner
	if appConfig.APIKey != "" {
		r, closer, err := newRefiner(ctx, "")
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()
		refiner = r
	}

	server := mcptools.NewServer(version, refiner)
	// stdout carries the protocol, so logs must stay on stderr
	slog.Info("mcp server starting", "transport", "stdio", "ai_refinement", refiner != nil)
	return server.Run(ctx, &mcp.StdioTransport{})
}
