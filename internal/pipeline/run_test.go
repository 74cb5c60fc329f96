package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/video-analyzer/internal/annotate"
	"github.com/jonathan/video-analyzer/internal/capture"
	"github.com/jonathan/video-analyzer/internal/store"
	"github.com/jonathan/video-analyzer/internal/types"
)

const validURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// fakeScreenshotter optionally fails, otherwise reports a fixed title.
type fakeScreenshotter struct {
	err   error
	calls int
}

func (f *fakeScreenshotter) Capture(_ context.Context, _, _ string) (capture.PageInfo, error) {
	f.calls++
	if f.err != nil {
		return capture.PageInfo{}, f.err
	}
	return capture.PageInfo{Title: "Test Video"}, nil
}

type fakeExtractor struct {
	err error
}

func (f *fakeExtractor) Extract(_ context.Context, _, _, baseName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return baseName + ".mp3", nil
}

type fakeTranscriber struct {
	segments []types.TranscriptSegment
	err      error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string) ([]types.TranscriptSegment, error) {
	return f.segments, f.err
}

// fixedChain returns the same verdict for every segment.
type fixedChain struct {
	verdict types.AIVerdict
}

func (f *fixedChain) Detect(_ context.Context, _ string) types.AIVerdict {
	return f.verdict
}

func testOrchestrator(t *testing.T) (*Orchestrator, *fakeScreenshotter) {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	shots := &fakeScreenshotter{}
	return &Orchestrator{
		Screenshots: shots,
		Audio:       &fakeExtractor{},
		Transcripts: &fakeTranscriber{segments: []types.TranscriptSegment{
			{Text: "segment one", Start: 0, End: 2},
			{Text: "segment two", Start: 2, End: 4},
			{Text: "segment three", Start: 4, End: 6},
		}},
		Annotator: annotate.New(&fixedChain{verdict: types.AIVerdict{
			Probability:    0.8,
			Classification: types.ClassificationAI,
			Confidence:     0.9,
			Method:         "stub",
		}}, 0),
		Store:        s,
		ArtifactsDir: t.TempDir(),
	}, shots
}

// waitForResult polls until the background task writes a terminal record.
func waitForResult(t *testing.T, o *Orchestrator, jobID string) *types.JobResult {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		result, err := o.Result(context.Background(), jobID)
		if err == nil {
			return result
		}
		require.ErrorIs(t, err, store.ErrNotFound)
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", jobID)
	return nil
}

func TestSubmit_ReturnsFreshIDs(t *testing.T) {
	o, _ := testOrchestrator(t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		jobID, err := o.Submit(validURL)
		require.NoError(t, err)
		assert.False(t, seen[jobID], "job id %s issued twice", jobID)
		seen[jobID] = true
	}
}

func TestSubmit_RejectsInvalidURL(t *testing.T) {
	o, shots := testOrchestrator(t)

	for _, url := range []string{"", "not-a-url", "https://example.com", "https://youtube.com"} {
		_, err := o.Submit(url)
		assert.Error(t, err, "expected rejection for %q", url)
	}

	// No background work was started for rejected submissions.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, shots.calls)
}

func TestStatus_UnknownIDReportsProcessing(t *testing.T) {
	o, _ := testOrchestrator(t)

	state, ts := o.Status(context.Background(), "never-submitted")

	assert.Equal(t, types.JobStateProcessing, state)
	assert.Nil(t, ts)
}

func TestRun_CompletedRecord(t *testing.T) {
	o, _ := testOrchestrator(t)

	jobID, err := o.Submit(validURL)
	require.NoError(t, err)

	result := waitForResult(t, o, jobID)

	assert.Equal(t, types.JobStateCompleted, result.State)
	assert.Equal(t, validURL, result.SourceURL)
	assert.Equal(t, "Test Video", result.PageTitle)
	assert.NotEmpty(t, result.ScreenshotPath)
	assert.NotEmpty(t, result.AudioPath)
	require.Len(t, result.Transcript, 3)
	for _, seg := range result.Transcript {
		require.NotNil(t, seg.Verdict)
	}

	require.NotNil(t, result.Summary)
	assert.Equal(t, 3, result.Summary.TotalSegments)
	assert.LessOrEqual(t, result.Summary.AISegments+result.Summary.HumanSegments, result.Summary.TotalSegments)

	state, ts := o.Status(context.Background(), jobID)
	assert.Equal(t, types.JobStateCompleted, state)
	require.NotNil(t, ts)
}

func TestRun_ScreenshotFailure(t *testing.T) {
	o, shots := testOrchestrator(t)
	shots.err = errors.New("chrome exited unexpectedly")

	jobID, err := o.Submit(validURL)
	require.NoError(t, err)

	result := waitForResult(t, o, jobID)

	assert.Equal(t, types.JobStateFailed, result.State)
	assert.Contains(t, result.Error, "screenshot stage failed")
	assert.Contains(t, result.Error, "chrome exited unexpectedly")
	assert.Empty(t, result.Transcript)
	assert.Empty(t, result.ScreenshotPath)
	assert.Empty(t, result.AudioPath)
	assert.Nil(t, result.Summary)
}

func TestRun_TranscriptionFailureAbortsAnnotation(t *testing.T) {
	o, _ := testOrchestrator(t)
	o.Transcripts = &fakeTranscriber{err: errors.New("whisper timeout")}

	jobID, err := o.Submit(validURL)
	require.NoError(t, err)

	result := waitForResult(t, o, jobID)

	assert.Equal(t, types.JobStateFailed, result.State)
	assert.Contains(t, result.Error, "transcription stage failed")
}

func TestRun_TerminalRecordNeverOverwritten(t *testing.T) {
	o, _ := testOrchestrator(t)

	jobID, err := o.Submit(validURL)
	require.NoError(t, err)
	first := waitForResult(t, o, jobID)

	// A duplicate save attempt for the same id is rejected by the store.
	err = o.Store.Save(context.Background(), &types.JobResult{
		JobID: jobID,
		State: types.JobStateFailed,
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	again, err := o.Result(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, first.State, again.State)
}

func TestAnalyze_Synchronous(t *testing.T) {
	o, _ := testOrchestrator(t)

	result, err := o.Analyze(context.Background(), validURL)
	require.NoError(t, err)
	assert.Equal(t, types.JobStateCompleted, result.State)

	_, err = o.Analyze(context.Background(), "https://example.com")
	assert.Error(t, err)
}
