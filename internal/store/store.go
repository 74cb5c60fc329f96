// Package store persists terminal job records keyed by job identity.
// Each key is written at most once; concurrent reads need no external
// locking because records are immutable after the single write.
package store

import (
	"context"
	"errors"

	"github.com/jonathan/video-analyzer/internal/types"
)

// ErrNotFound indicates no terminal record exists for the job id.
var ErrNotFound = errors.New("job result not found")

// ErrAlreadyExists indicates a terminal record was already written for the
// job id. Terminal records are never overwritten.
var ErrAlreadyExists = errors.New("job result already written")

// Store is the durable mapping from job identity to terminal job record.
type Store interface {
	// Save writes the terminal record for result.JobID.
	// Returns ErrAlreadyExists if a record for that id was written before.
	Save(ctx context.Context, result *types.JobResult) error
	// Get returns the terminal record for jobID, or ErrNotFound.
	Get(ctx context.Context, jobID string) (*types.JobResult, error)
}
