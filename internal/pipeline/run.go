// Package pipeline provides the high-level orchestration for video analysis jobs.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/video-analyzer/internal/capture"
	"github.com/jonathan/video-analyzer/internal/media"
	"github.com/jonathan/video-analyzer/internal/source"
	"github.com/jonathan/video-analyzer/internal/store"
	"github.com/jonathan/video-analyzer/internal/transcribe"
	"github.com/jonathan/video-analyzer/internal/types"
)

// Annotator attaches an AI verdict to every transcript segment.
type Annotator interface {
	Annotate(ctx context.Context, segments []types.TranscriptSegment) []types.TranscriptSegment
}

// Orchestrator owns job identity and runs the fixed analysis pipeline.
// Each submitted job becomes one background task that runs the stages
// strictly in order and writes exactly one terminal record.
type Orchestrator struct {
	Screenshots  capture.Screenshotter
	Audio        media.Extractor
	Transcripts  transcribe.Transcriber
	Annotator    Annotator
	Store        store.Store
	ArtifactsDir string
}

// Submit validates the URL, mints a job id, and schedules the pipeline to
// run in the background. The caller gets the id immediately; all outcomes
// are retrieved by polling Status/Result.
func (o *Orchestrator) Submit(url string) (string, error) {
	if err := source.Validate(url); err != nil {
		return "", err
	}

	jobID := uuid.New().String()
	log.Printf("[pipeline] Job %s submitted for %s", jobID, url)

	go o.run(context.Background(), jobID, url)

	return jobID, nil
}

// Analyze runs the pipeline synchronously for one URL and returns the
// terminal record. Used by the CLI, where there is no poller.
func (o *Orchestrator) Analyze(ctx context.Context, url string) (*types.JobResult, error) {
	if err := source.Validate(url); err != nil {
		return nil, err
	}

	jobID := uuid.New().String()
	o.run(ctx, jobID, url)
	return o.Store.Get(ctx, jobID)
}

// Status reports the lifecycle state for a job id. A job with no terminal
// record reports processing - including ids that were never submitted; the
// two cases are indistinguishable by design.
func (o *Orchestrator) Status(ctx context.Context, jobID string) (types.JobState, *time.Time) {
	result, err := o.Store.Get(ctx, jobID)
	if err != nil {
		if err != store.ErrNotFound {
			log.Printf("[pipeline] Failed to read status for job %s: %v", jobID, err)
		}
		return types.JobStateProcessing, nil
	}
	t := result.CompletedAt
	return result.State, &t
}

// Result returns the persisted terminal record verbatim, or
// store.ErrNotFound while no terminal record exists.
func (o *Orchestrator) Result(ctx context.Context, jobID string) (*types.JobResult, error) {
	return o.Store.Get(ctx, jobID)
}

// run executes the pipeline stages strictly in order. The first stage
// failure aborts all later stages and writes a failed record; nothing is
// retried. A panic anywhere in a stage is caught here so one job's failure
// can never take down the process or another job's task.
func (o *Orchestrator) run(ctx context.Context, jobID, url string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[pipeline] Job %s panicked: %v", jobID, r)
			o.fail(ctx, jobID, url, fmt.Errorf("internal pipeline error: %v", r))
		}
	}()

	log.Printf("[pipeline] Job %s: Step 1/4: Capturing screenshot...", jobID)
	screenshotPath := filepath.Join(o.ArtifactsDir, jobID+".png")
	pageInfo, err := o.Screenshots.Capture(ctx, url, screenshotPath)
	if err != nil {
		o.fail(ctx, jobID, url, fmt.Errorf("screenshot stage failed: %w", err))
		return
	}

	log.Printf("[pipeline] Job %s: Step 2/4: Extracting audio...", jobID)
	audioPath, err := o.Audio.Extract(ctx, url, o.ArtifactsDir, jobID)
	if err != nil {
		o.fail(ctx, jobID, url, fmt.Errorf("audio extraction stage failed: %w", err))
		return
	}

	log.Printf("[pipeline] Job %s: Step 3/4: Transcribing audio...", jobID)
	segments, err := o.Transcripts.Transcribe(ctx, audioPath)
	if err != nil {
		o.fail(ctx, jobID, url, fmt.Errorf("transcription stage failed: %w", err))
		return
	}

	log.Printf("[pipeline] Job %s: Step 4/4: Annotating %d segments...", jobID, len(segments))
	annotated := o.Annotator.Annotate(ctx, segments)
	summary := types.Summarize(annotated)

	result := &types.JobResult{
		JobID:          jobID,
		SourceURL:      url,
		State:          types.JobStateCompleted,
		CompletedAt:    time.Now().UTC(),
		PageTitle:      pageInfo.Title,
		ScreenshotPath: screenshotPath,
		AudioPath:      audioPath,
		Transcript:     annotated,
		Summary:        &summary,
	}
	o.save(ctx, result)
	log.Printf("[pipeline] Job %s completed: %d segments (%d ai, %d human)",
		jobID, summary.TotalSegments, summary.AISegments, summary.HumanSegments)
}

// fail writes the terminal failed record. Artifacts produced by earlier
// stages are not referenced from the record; the files stay on disk.
func (o *Orchestrator) fail(ctx context.Context, jobID, url string, stageErr error) {
	log.Printf("[pipeline] Job %s failed: %v", jobID, stageErr)
	o.save(ctx, &types.JobResult{
		JobID:       jobID,
		SourceURL:   url,
		State:       types.JobStateFailed,
		CompletedAt: time.Now().UTC(),
		Error:       stageErr.Error(),
	})
}

// save persists the terminal record. The store's write-once contract means
// a second save for the same id is rejected, which only happens on a bug;
// log rather than crash.
func (o *Orchestrator) save(ctx context.Context, result *types.JobResult) {
	if err := o.Store.Save(ctx, result); err != nil {
		log.Printf("[pipeline] Failed to persist terminal record for job %s: %v", result.JobID, err)
	}
}
