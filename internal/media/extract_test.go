package media

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner scripts command outcomes by binary name.
type fakeRunner struct {
	results map[string]commandResult
	errs    map[string]error
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (commandResult, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.results[name], f.errs[name]
}

func TestYtDlpExtractor_Success(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]commandResult{},
		errs:    map[string]error{},
	}
	e := &YtDlpExtractor{YtDlpPath: "yt-dlp", FFmpegPath: "ffmpeg", runner: runner}

	dir := t.TempDir()
	audioPath, err := e.Extract(context.Background(), "https://youtu.be/abc123", dir, "job_001")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "job_001.mp3"), audioPath)
	require.Len(t, runner.calls, 2)
	assert.Equal(t, "yt-dlp", runner.calls[0][0])
	assert.Contains(t, runner.calls[0], "https://youtu.be/abc123")
	assert.Equal(t, "ffmpeg", runner.calls[1][0])
	assert.Contains(t, runner.calls[1], "16000")
}

func TestYtDlpExtractor_DownloadFailure(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]commandResult{
			"yt-dlp": {ExitCode: 1, Stderr: "ERROR: Video unavailable\nmore detail"},
		},
		errs: map[string]error{"yt-dlp": errors.New("exit status 1")},
	}
	e := &YtDlpExtractor{YtDlpPath: "yt-dlp", FFmpegPath: "ffmpeg", runner: runner}

	_, err := e.Extract(context.Background(), "https://youtu.be/gone", t.TempDir(), "job_002")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio download failed")
	assert.Contains(t, err.Error(), "Video unavailable")
	// ffmpeg never runs after a failed download
	assert.Len(t, runner.calls, 1)
}

func TestYtDlpExtractor_TranscodeFailure(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]commandResult{
			"ffmpeg": {ExitCode: 1, Stderr: "Invalid data found when processing input"},
		},
		errs: map[string]error{"ffmpeg": errors.New("exit status 1")},
	}
	e := &YtDlpExtractor{YtDlpPath: "yt-dlp", FFmpegPath: "ffmpeg", runner: runner}

	_, err := e.Extract(context.Background(), "https://youtu.be/abc123", t.TempDir(), "job_003")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio transcode failed")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "ERROR: boom", firstLine("\n\nERROR: boom\ndetail"))
	assert.Equal(t, "unknown error", firstLine(""))
	assert.Equal(t, "unknown error", firstLine("\n\n"))
}
