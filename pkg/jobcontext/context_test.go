package jobcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBeginCarriesMetadata(t *testing.T) {
	id := uuid.New()
	ctx, cancel := Begin(context.Background(), id, "transcription")
	defer cancel()

	gotID, ok := JobID(ctx)
	if !ok || gotID != id {
		t.Fatalf("JobID = %v, %v", gotID, ok)
	}
	gotType, ok := JobType(ctx)
	if !ok || gotType != "transcription" {
		t.Fatalf("JobType = %q, %v", gotType, ok)
	}
	if _, ok := StartTime(ctx); !ok {
		t.Fatal("StartTime missing")
	}
	if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) > DefaultTimeout {
		t.Fatalf("deadline = %v, %v", deadline, ok)
	}
}

func TestElapsedWithoutJobMetadata(t *testing.T) {
	if got := Elapsed(context.Background()); got != 0 {
		t.Fatalf("Elapsed = %v, want 0", got)
	}
}
