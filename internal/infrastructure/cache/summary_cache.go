package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

// SummaryCache caches extraction results keyed by a digest of the
// transcript text. Identical transcripts always produce identical
// summaries on the heuristic path, so cached entries never go stale;
// the TTL only bounds memory.
type SummaryCache struct {
	store Store
	ttl   time.Duration
}

// NewSummaryCache creates a summary cache on top of a Store.
func NewSummaryCache(store Store, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SummaryCache{store: store, ttl: ttl}
}

// Key returns the cache key for a transcript.
func (c *SummaryCache) Key(transcript string) string {
	digest := sha256.Sum256([]byte(transcript))
	return "summary:" + hex.EncodeToString(digest[:])
}

// Get returns the cached summary for a transcript, if present.
func (c *SummaryCache) Get(ctx context.Context, transcript string) (*entities.MeetingSummary, bool, error) {
	raw, found, err := c.store.Get(ctx, c.Key(transcript))
	if err != nil || !found {
		return nil, false, err
	}

	var summary entities.MeetingSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		// A corrupt entry is treated as a miss.
		return nil, false, nil
	}
	summary.Normalize()
	return &summary, true, nil
}

// Put stores a summary for a transcript.
func (c *SummaryCache) Put(ctx context.Context, transcript string, summary *entities.MeetingSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.Key(transcript), string(raw), c.ttl)
}
