// Package config provides environment-based configuration for the video analyzer.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration for the server and pipeline.
// All values come from environment variables; missing values use defaults.
type Config struct {
	// Server
	Port int

	// Artifact locations
	ArtifactsDir string // produced screenshots and audio files
	ResultsDir   string // terminal job records (file store)

	// External capabilities
	OpenAIAPIKey string // Whisper transcription
	GeminiAPIKey string // hosted AI detection; empty disables the hosted detector
	RedisAddr    string // optional Redis-backed result store
	YtDlpPath    string
	FFmpegPath   string

	// Detection tuning
	MinDetectChars int           // below this, detection short-circuits to insufficient_text
	DetectPause    time.Duration // pacing delay between detector calls
	CaptureTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:           getEnvInt("PORT", 8080),
		ArtifactsDir:   getEnvString("ARTIFACTS_DIR", "artifacts"),
		ResultsDir:     getEnvString("RESULTS_DIR", "results"),
		OpenAIAPIKey:   getEnvString("OPENAI_API_KEY", ""),
		GeminiAPIKey:   getEnvString("GEMINI_API_KEY", ""),
		RedisAddr:      getEnvString("REDIS_ADDR", ""),
		YtDlpPath:      getEnvString("YTDLP_PATH", "yt-dlp"),
		FFmpegPath:     getEnvString("FFMPEG_PATH", "ffmpeg"),
		MinDetectChars: getEnvInt("MIN_DETECT_CHARS", 30),
		DetectPause:    getEnvDuration("DETECT_PAUSE", 500*time.Millisecond),
		CaptureTimeout: getEnvDuration("CAPTURE_TIMEOUT", 45*time.Second),
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
