package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	answer    string
	expiresAt time.Time
}

type memDecision struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryDecisionRepository keeps decisions in process memory, for runs
// without redis.
func NewMemoryDecisionRepository(ttl time.Duration) DecisionRepository {
	return &memDecision{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (that *memDecision) Save(_ context.Context, key, answer string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry := memoryEntry{answer: answer}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.entries[key] = entry

	return nil
}

func (that *memDecision) Get(_ context.Context, key string) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.entries[key]
	if !ok {
		return "", ErrDecisionNotFound
	}

	if !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt) {
		delete(that.entries, key)
		return "", ErrDecisionNotFound
	}

	return entry.answer, nil
}
