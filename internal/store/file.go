package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/video-analyzer/internal/types"
)

// FileStore keeps one JSON file per job id under a results directory.
// The O_EXCL create enforces the write-once contract at the filesystem level.
type FileStore struct {
	dir string
}

// NewFileStore creates the results directory if needed and returns a store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the terminal record as <dir>/<job_id>.json.
func (s *FileStore) Save(_ context.Context, result *types.JobResult) error {
	if result == nil || result.JobID == "" {
		return fmt.Errorf("job result must carry a job id")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode job result: %w", err)
	}

	f, err := os.OpenFile(s.path(result.JobID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create result file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}

// Get reads the terminal record for jobID.
func (s *FileStore) Get(_ context.Context, jobID string) (*types.JobResult, error) {
	data, err := os.ReadFile(s.path(jobID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	var result types.JobResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result file: %w", err)
	}
	return &result, nil
}

// path sanitizes the job id into a file path inside the results directory.
func (s *FileStore) path(jobID string) string {
	return filepath.Join(s.dir, filepath.Base(jobID)+".json")
}
