package stats

import (
	"fmt"
	"sync"

	"github.com/pitchmind/pitchmind/internal/models"
)

// Cache memoizes the last computed value for a key. Stats are cheap enough
// to recompute; the cache only avoids redundant recomputes on unrelated
// re-renders. Invalidation by key change is an optimization, never a
// correctness requirement.
type Cache[T any] struct {
	mu    sync.Mutex
	key   string
	value T
	valid bool
}

// Get returns the cached value when key matches the previous call, otherwise
// computes and caches a fresh one.
func (c *Cache[T]) Get(key string, compute func() T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.key == key {
		return c.value
	}

	c.value = compute()
	c.key = key
	c.valid = true
	return c.value
}

// MoodKey derives a cache key from list length plus the newest entry's id,
// which changes on every insert/replace at this data scale.
func MoodKey(entries []models.MoodEntry) string {
	if len(entries) == 0 {
		return "0-empty"
	}
	return fmt.Sprintf("%d-%s", len(entries), entries[0].ID)
}

// ExerciseKey derives a cache key for exercise session lists.
func ExerciseKey(sessions []models.ExerciseSession) string {
	if len(sessions) == 0 {
		return "0-empty"
	}
	return fmt.Sprintf("%d-%s", len(sessions), sessions[0].ID)
}

// RoutineKey derives a cache key for routine session lists.
func RoutineKey(sessions []models.RoutineSession) string {
	if len(sessions) == 0 {
		return "0-empty"
	}
	return fmt.Sprintf("%d-%s", len(sessions), sessions[0].ID)
}
