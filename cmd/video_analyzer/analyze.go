package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/video-analyzer/internal/config"
	"github.com/jonathan/video-analyzer/internal/observability"
	"github.com/jonathan/video-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <video-url>",
	Short: "Run one analysis synchronously and print the result",
	Long:  `Run the full pipeline (screenshot, audio extraction, transcription, AI-authorship annotation) for one video URL and print the terminal record.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	ctx := context.Background()
	orch, cleanup, err := newOrchestrator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer cleanup()

	result, err := orch.Analyze(ctx, args[0])
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintJobResult(result)

	if result.State == types.JobStateFailed {
		return fmt.Errorf("analysis failed: %s", result.Error)
	}
	return nil
}
