// Package jobcontext carries extraction job metadata through context
// and bounds job execution time. Webhook-triggered processing runs
// under a job context so a hung provider call cannot hold the request
// open indefinitely.
package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	keyJobID     contextKey = "job_id"
	keyJobType   contextKey = "job_type"
	keyStartTime contextKey = "job_start_time"
)

// DefaultTimeout bounds a single job execution.
const DefaultTimeout = 5 * time.Minute

// Begin derives a job-scoped context with metadata and a timeout.
func Begin(parent context.Context, jobID uuid.UUID, jobType string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, DefaultTimeout)
	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx, cancel
}

// JobID extracts the job ID from context.
func JobID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyJobID).(uuid.UUID)
	return id, ok
}

// JobType extracts the job type from context.
func JobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// StartTime extracts the job start time from context.
func StartTime(ctx context.Context) (time.Time, bool) {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	return start, ok
}

// Elapsed reports how long the job has been running. Zero when the
// context carries no job metadata.
func Elapsed(ctx context.Context) time.Duration {
	start, ok := StartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(start)
}
