// Package media downloads a video's audio track and transcodes it into the
// format the transcription capability expects.
package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Extractor is the boundary interface for the audio-extraction capability:
// video URL in, transcoded audio file out.
type Extractor interface {
	Extract(ctx context.Context, url, outDir, baseName string) (string, error)
}

// commandResult is an internal process execution response.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner executes commands via os/exec.
type execRunner struct{}

// Run executes one command and captures stdout/stderr and exit code.
func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		}
	}
	return result, err
}

// YtDlpExtractor downloads audio with yt-dlp and transcodes with ffmpeg.
type YtDlpExtractor struct {
	YtDlpPath  string
	FFmpegPath string
	runner     commandRunner
}

// NewYtDlpExtractor creates an extractor using the given binary paths.
func NewYtDlpExtractor(ytDlpPath, ffmpegPath string) *YtDlpExtractor {
	if ytDlpPath == "" {
		ytDlpPath = "yt-dlp"
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &YtDlpExtractor{
		YtDlpPath:  ytDlpPath,
		FFmpegPath: ffmpegPath,
		runner:     &execRunner{},
	}
}

// Extract downloads the best audio track for url and transcodes it to
// 16 kHz mono MP3 at outDir/baseName.mp3. The intermediate download is
// removed on success.
func (e *YtDlpExtractor) Extract(ctx context.Context, url, outDir, baseName string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifacts directory: %w", err)
	}

	rawPath := filepath.Join(outDir, baseName+".raw.m4a")
	result, err := e.runner.Run(ctx, e.YtDlpPath,
		"-f", "bestaudio",
		"--no-playlist",
		"-o", rawPath,
		url,
	)
	if err != nil {
		return "", fmt.Errorf("audio download failed (exit=%d): %s", result.ExitCode, firstLine(result.Stderr))
	}

	audioPath := filepath.Join(outDir, baseName+".mp3")
	result, err = e.runner.Run(ctx, e.FFmpegPath,
		"-y",
		"-i", rawPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-b:a", "64k",
		audioPath,
	)
	if err != nil {
		return "", fmt.Errorf("audio transcode failed (exit=%d): %s", result.ExitCode, firstLine(result.Stderr))
	}

	if err := os.Remove(rawPath); err != nil && !os.IsNotExist(err) {
		log.Printf("[media] Failed to remove intermediate download %s: %v", rawPath, err)
	}

	return audioPath, nil
}

// firstLine trims command stderr down to its first non-empty line for
// error messages.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "unknown error"
}
