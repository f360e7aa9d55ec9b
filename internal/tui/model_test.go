package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/session"
	"github.com/pitchmind/pitchmind/internal/storage"
	"github.com/pitchmind/pitchmind/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	kv := storage.NewJSONStore(filepath.Join(t.TempDir(), "pitchmind.json"))
	if err := kv.Init(); err != nil {
		t.Fatalf("init storage: %v", err)
	}
	service := storage.NewService(kv)
	st := store.New(service)
	return NewModel(st, service, session.NewExerciseTracker(st, service), session.NewRoutineTracker(st, service))
}

func TestMoodStatsCachedAcrossRenders(t *testing.T) {
	m := newTestModel(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []models.MoodEntry{
		{ID: "a", Date: "2026-03-10", Rating: 4, CreatedAt: now},
		{ID: "b", Date: "2026-03-09", Rating: 3, CreatedAt: now},
	}

	first := m.moodStats(entries, now)
	if first.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", first.Streak)
	}

	// Same list, much later clock: a recompute would break the streak, the
	// cached value keeps it.
	cached := m.moodStats(entries, now.AddDate(0, 0, 30))
	if cached.Streak != first.Streak {
		t.Error("unchanged list must return the cached stats")
	}

	// A changed list recomputes against the new clock.
	grown := append([]models.MoodEntry{{ID: "c", Date: "2026-04-09", Rating: 5, CreatedAt: now}}, entries...)
	fresh := m.moodStats(grown, now.AddDate(0, 0, 30))
	if fresh.Total != 3 {
		t.Errorf("expected recompute for changed list, got total %d", fresh.Total)
	}
}

func TestRoutineStatsCachedAcrossRenders(t *testing.T) {
	m := newTestModel(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.RoutineSession{
		{ID: "r1", Date: "2026-03-10", Steps: models.NewRoutineSteps(), Completed: true, StartTime: now},
	}

	first := m.routineStats(sessions, now)
	cached := m.routineStats(sessions, now.AddDate(0, 0, 30))
	if cached.CurrentStreak != first.CurrentStreak {
		t.Error("unchanged list must return the cached stats")
	}
}
