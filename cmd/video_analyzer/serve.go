package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/video-analyzer/internal/config"
	"github.com/jonathan/video-analyzer/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts video URLs for analysis and exposes polling endpoints for job status and results.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort != 0 {
		cfg.Port = servePort
	}

	orch, cleanup, err := newOrchestrator(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer cleanup()

	srv := server.New(server.Config{
		Port:         cfg.Port,
		ArtifactsDir: cfg.ArtifactsDir,
	}, orch)

	return srv.Start()
}
