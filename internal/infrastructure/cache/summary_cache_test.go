package cache

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

func TestSummaryCache_RoundTrip(t *testing.T) {
	c := NewSummaryCache(NewMemoryStore(), time.Minute)
	ctx := context.Background()

	summary := entities.NewMeetingSummary(
		"kickoff",
		[]string{"ship in June"},
		[]string{"Bob will draft"},
		[]string{"Bob"},
		nil,
	)

	if err := c.Put(ctx, "transcript text", summary); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, found, err := c.Get(ctx, "transcript text")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatalf("expected cache hit")
	}
	if got.Summary != summary.Summary {
		t.Fatalf("summary = %q, want %q", got.Summary, summary.Summary)
	}
	if !reflect.DeepEqual([]string(got.Decisions), []string(summary.Decisions)) {
		t.Fatalf("decisions = %v, want %v", got.Decisions, summary.Decisions)
	}
	if got.Risks == nil {
		t.Fatalf("risks must be normalized to a non-nil slice")
	}
}

func TestSummaryCache_MissOnDifferentTranscript(t *testing.T) {
	c := NewSummaryCache(NewMemoryStore(), time.Minute)
	ctx := context.Background()

	if err := c.Put(ctx, "transcript a", entities.NewMeetingSummary("s", nil, nil, nil, nil)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, found, _ := c.Get(ctx, "transcript b"); found {
		t.Fatalf("different transcripts must not share cache entries")
	}
}

func TestSummaryCache_CorruptEntryIsMiss(t *testing.T) {
	store := NewMemoryStore()
	c := NewSummaryCache(store, time.Minute)
	ctx := context.Background()

	if err := store.Set(ctx, c.Key("t"), "not json", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found, err := c.Get(ctx, "t"); found || err != nil {
		t.Fatalf("corrupt entry must read as a clean miss, found=%v err=%v", found, err)
	}
}

func TestMemoryStore_Expiration(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", "v", -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found, _ := store.Get(ctx, "k"); found {
		t.Fatalf("expired entry must not be returned")
	}
}
