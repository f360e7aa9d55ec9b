package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/logger"
	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/storage"
	"github.com/pitchmind/pitchmind/internal/store"
)

// RoutineTracker manages the pre-game routine for the current day. At most
// one session exists per calendar date; starting again on the same day
// resumes it. The tracker holds no private session state, so progress
// survives across processes.
type RoutineTracker struct {
	store   *store.Store
	service *storage.Service
	clock   func() time.Time
}

func NewRoutineTracker(st *store.Store, service *storage.Service) *RoutineTracker {
	return &RoutineTracker{store: st, service: service, clock: time.Now}
}

// Today returns the current day's session, if one exists.
func (t *RoutineTracker) Today() (models.RoutineSession, bool) {
	date := t.clock().Format(constants.DayFormat)
	for _, s := range t.store.State().RoutineSessions {
		if s.Date == date {
			return s, true
		}
	}
	return models.RoutineSession{}, false
}

// Start resumes today's session or creates a fresh one from the default step
// catalog. A new session is persisted immediately so step progress made in a
// later process lands on the same session.
func (t *RoutineTracker) Start() (models.RoutineSession, error) {
	if session, ok := t.Today(); ok {
		logger.Debug("routine resumed", "id", session.ID, "date", session.Date)
		return session, nil
	}

	now := t.clock()
	session := models.RoutineSession{
		ID:             uuid.NewString(),
		Date:           now.Format(constants.DayFormat),
		Steps:          models.NewRoutineSteps(),
		CompletedSteps: []string{},
		StartTime:      now,
	}

	if err := t.service.AddRoutineSession(session); err != nil {
		return models.RoutineSession{}, fmt.Errorf("failed to start routine: %w", err)
	}
	t.store.Dispatch(store.AddRoutineSession{Session: session})

	logger.Debug("routine started", "id", session.ID, "date", session.Date)
	return session, nil
}

// CompleteStep marks one step done. Completing an already-completed step is a
// no-op. When the final step completes, the session's total duration and end
// time are fixed in the same update.
func (t *RoutineTracker) CompleteStep(stepID string) (models.RoutineSession, error) {
	session, ok := t.Today()
	if !ok {
		return models.RoutineSession{}, fmt.Errorf("no routine started today, run 'pitchmind routine start' first")
	}

	known := false
	for _, step := range session.Steps {
		if step.ID == stepID {
			known = true
			break
		}
	}
	if !known {
		return models.RoutineSession{}, fmt.Errorf("unknown routine step %q", stepID)
	}
	if session.StepCompleted(stepID) {
		return session, nil
	}

	session.CompletedSteps = append(append([]string(nil), session.CompletedSteps...), stepID)
	session.RecomputeCompleted()

	patch := models.RoutineSessionPatch{CompletedSteps: &session.CompletedSteps}
	if session.Completed {
		now := t.clock()
		session.TotalDuration = int(now.Sub(session.StartTime).Seconds())
		session.EndTime = &now
		patch.Completed = &session.Completed
		patch.TotalDuration = &session.TotalDuration
		patch.EndTime = session.EndTime
	}

	if err := t.service.UpdateRoutineSession(session.ID, patch); err != nil {
		return models.RoutineSession{}, fmt.Errorf("failed to record step: %w", err)
	}
	t.store.Dispatch(store.UpdateRoutineSession{SessionID: session.ID, Patch: patch})

	if session.Completed {
		logger.Info("routine completed", "id", session.ID, "duration", session.TotalDuration)
	} else {
		logger.Debug("routine step completed", "id", session.ID, "step", stepID)
	}
	return session, nil
}

// UncompleteStep removes a step from the completed set. Reopening a finished
// session also clears its end time and total duration; both get fixed again
// when the final step re-completes.
func (t *RoutineTracker) UncompleteStep(stepID string) (models.RoutineSession, error) {
	session, ok := t.Today()
	if !ok {
		return models.RoutineSession{}, fmt.Errorf("no routine started today")
	}
	if !session.StepCompleted(stepID) {
		return session, nil
	}

	remaining := make([]string, 0, len(session.CompletedSteps))
	for _, id := range session.CompletedSteps {
		if id != stepID {
			remaining = append(remaining, id)
		}
	}
	session.CompletedSteps = remaining
	session.TotalDuration = 0
	session.EndTime = nil
	session.RecomputeCompleted()

	patch := models.RoutineSessionPatch{
		CompletedSteps: &session.CompletedSteps,
		Completed:      &session.Completed,
		TotalDuration:  &session.TotalDuration,
		ClearEndTime:   true,
	}
	if err := t.service.UpdateRoutineSession(session.ID, patch); err != nil {
		return models.RoutineSession{}, fmt.Errorf("failed to record step: %w", err)
	}
	t.store.Dispatch(store.UpdateRoutineSession{SessionID: session.ID, Patch: patch})
	return session, nil
}

// Reset clears all step progress for today's session, including any end time
// and duration recorded on completion.
func (t *RoutineTracker) Reset() (models.RoutineSession, error) {
	session, ok := t.Today()
	if !ok {
		return models.RoutineSession{}, fmt.Errorf("no routine started today")
	}

	session.CompletedSteps = []string{}
	session.TotalDuration = 0
	session.EndTime = nil
	session.RecomputeCompleted()

	patch := models.RoutineSessionPatch{
		CompletedSteps: &session.CompletedSteps,
		Completed:      &session.Completed,
		TotalDuration:  &session.TotalDuration,
		ClearEndTime:   true,
	}
	if err := t.service.UpdateRoutineSession(session.ID, patch); err != nil {
		return models.RoutineSession{}, fmt.Errorf("failed to reset routine: %w", err)
	}
	t.store.Dispatch(store.UpdateRoutineSession{SessionID: session.ID, Patch: patch})
	return session, nil
}
