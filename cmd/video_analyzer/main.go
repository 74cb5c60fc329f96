// Package main provides the entry point for the Video Analyzer HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "video_analyzer",
	Short: "Video AI-speech analyzer",
	Long:  "Video Analyzer captures a video page, extracts and transcribes its audio, and scores every transcript segment for AI authorship via REST API or one-shot CLI runs.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
