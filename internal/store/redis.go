package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/video-analyzer/internal/types"
)

// resultKeyPrefix namespaces job records in Redis.
const resultKeyPrefix = "job_result:"

// RedisStore keeps terminal records as JSON values keyed by job id.
// SetNX enforces the write-once contract.
type RedisStore struct {
	rc *redis.Client
}

// NewRedisStore connects to Redis at addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	rc := redis.NewClient(&redis.Options{Addr: addr})
	if err := rc.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{rc: rc}, nil
}

// Save writes the terminal record unless one already exists for the id.
func (s *RedisStore) Save(ctx context.Context, result *types.JobResult) error {
	if result == nil || result.JobID == "" {
		return fmt.Errorf("job result must carry a job id")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode job result: %w", err)
	}

	set, err := s.rc.SetNX(ctx, resultKeyPrefix+result.JobID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to write job result: %w", err)
	}
	if !set {
		return ErrAlreadyExists
	}
	return nil
}

// Get returns the terminal record for jobID.
func (s *RedisStore) Get(ctx context.Context, jobID string) (*types.JobResult, error) {
	data, err := s.rc.Get(ctx, resultKeyPrefix+jobID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read job result: %w", err)
	}

	var result types.JobResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode job result: %w", err)
	}
	return &result, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.rc.Close()
}
