// Package session orchestrates live exercise and routine attempts on top of
// the storage service and state store. Every persisted mutation follows the
// write-then-dispatch order: storage first, state second.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pitchmind/pitchmind/internal/logger"
	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/storage"
	"github.com/pitchmind/pitchmind/internal/store"
)

// ExerciseTracker runs one guided exercise at a time. The active session
// lives in memory only; it reaches storage solely through Complete, so an
// abandoned or cancelled attempt leaves no trace.
type ExerciseTracker struct {
	store   *store.Store
	service *storage.Service
	active  *models.ExerciseSession
	clock   func() time.Time
}

func NewExerciseTracker(st *store.Store, service *storage.Service) *ExerciseTracker {
	return &ExerciseTracker{store: st, service: service, clock: time.Now}
}

// Start begins a new in-memory session of the given type. Only one session
// may be active at a time.
func (t *ExerciseTracker) Start(exType models.ExerciseType) (models.ExerciseSession, error) {
	if t.active != nil {
		return models.ExerciseSession{}, fmt.Errorf("an exercise is already in progress: %s", models.ExerciseName(t.active.ExerciseType))
	}

	switch exType {
	case models.ExerciseBreathing, models.ExerciseVisualization, models.ExerciseHeartRate:
	default:
		return models.ExerciseSession{}, fmt.Errorf("unknown exercise type %q", exType)
	}

	session := models.ExerciseSession{
		ID:           uuid.NewString(),
		ExerciseType: exType,
		StartTime:    t.clock(),
	}
	t.active = &session
	logger.Debug("exercise started", "type", exType, "id", session.ID)
	return session, nil
}

// Active returns a copy of the in-flight session, if any.
func (t *ExerciseTracker) Active() (models.ExerciseSession, bool) {
	if t.active == nil {
		return models.ExerciseSession{}, false
	}
	return *t.active, true
}

// Elapsed returns how long the active session has been running.
func (t *ExerciseTracker) Elapsed() time.Duration {
	if t.active == nil {
		return 0
	}
	return t.clock().Sub(t.active.StartTime)
}

// Complete finishes the active session and persists it. The duration is
// measured from the start time unless overridden by a non-zero value. On a
// persistence failure the session stays active so the caller may retry.
func (t *ExerciseTracker) Complete(duration int, notes string) (models.ExerciseSession, error) {
	if t.active == nil {
		return models.ExerciseSession{}, fmt.Errorf("no exercise in progress")
	}

	now := t.clock()
	session := *t.active
	session.Completed = true
	session.EndTime = &now
	session.Notes = notes
	if duration > 0 {
		session.Duration = duration
	} else {
		session.Duration = int(now.Sub(session.StartTime).Seconds())
	}

	if err := t.service.AddExerciseSession(session); err != nil {
		return models.ExerciseSession{}, fmt.Errorf("failed to record exercise: %w", err)
	}
	t.store.Dispatch(store.AddExerciseSession{Session: session})
	t.active = nil

	logger.Debug("exercise completed", "type", session.ExerciseType, "duration", session.Duration)
	return session, nil
}

// Cancel discards the active session without persisting anything.
func (t *ExerciseTracker) Cancel() {
	if t.active != nil {
		logger.Debug("exercise cancelled", "type", t.active.ExerciseType)
	}
	t.active = nil
}

// Record persists an already-finished session in one shot, for callers that
// timed the exercise themselves.
func (t *ExerciseTracker) Record(exType models.ExerciseType, duration int, notes string) (models.ExerciseSession, error) {
	if _, err := t.Start(exType); err != nil {
		return models.ExerciseSession{}, err
	}
	session, err := t.Complete(duration, notes)
	if err != nil {
		t.Cancel()
		return models.ExerciseSession{}, err
	}
	return session, nil
}
