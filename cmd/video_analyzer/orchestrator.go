package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/video-analyzer/internal/annotate"
	"github.com/jonathan/video-analyzer/internal/capture"
	"github.com/jonathan/video-analyzer/internal/config"
	"github.com/jonathan/video-analyzer/internal/detect"
	"github.com/jonathan/video-analyzer/internal/media"
	"github.com/jonathan/video-analyzer/internal/pipeline"
	"github.com/jonathan/video-analyzer/internal/store"
	"github.com/jonathan/video-analyzer/internal/transcribe"
)

// newOrchestrator wires the capability adapters, detection chain, and
// result store from configuration. The returned cleanup releases clients
// that hold connections.
func newOrchestrator(ctx context.Context, cfg *config.Config) (*pipeline.Orchestrator, func(), error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	transcriber, err := transcribe.NewWhisperTranscriber(cfg.OpenAIAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	// Hosted detector first, heuristic fallback always last.
	var detectors []detect.Detector
	var closers []func()
	if cfg.GeminiAPIKey != "" {
		gemini, err := detect.NewGeminiDetector(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create hosted detector: %w", err)
		}
		detectors = append(detectors, gemini)
		closers = append(closers, func() { _ = gemini.Close() })
	} else {
		log.Println("GEMINI_API_KEY not set; detection runs on the heuristic fallback only")
	}
	detectors = append(detectors, detect.NewHeuristicDetector())
	chain := detect.NewChain(cfg.MinDetectChars, detectors...)

	var resultStore store.Store
	if cfg.RedisAddr != "" {
		redisStore, err := store.NewRedisStore(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		resultStore = redisStore
		closers = append(closers, func() { _ = redisStore.Close() })
	} else {
		fileStore, err := store.NewFileStore(cfg.ResultsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create file store: %w", err)
		}
		resultStore = fileStore
	}

	orch := &pipeline.Orchestrator{
		Screenshots:  capture.NewChromeScreenshotter(cfg.CaptureTimeout),
		Audio:        media.NewYtDlpExtractor(cfg.YtDlpPath, cfg.FFmpegPath),
		Transcripts:  transcriber,
		Annotator:    annotate.New(chain, cfg.DetectPause),
		Store:        resultStore,
		ArtifactsDir: cfg.ArtifactsDir,
	}

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}
	return orch, cleanup, nil
}
