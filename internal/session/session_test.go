package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/storage"
	"github.com/pitchmind/pitchmind/internal/store"
)

func newFixture(t *testing.T) (*store.Store, *storage.Service) {
	t.Helper()
	kv := storage.NewJSONStore(filepath.Join(t.TempDir(), "pitchmind.json"))
	if err := kv.Init(); err != nil {
		t.Fatalf("init storage: %v", err)
	}
	service := storage.NewService(kv)
	return store.New(service), service
}

func TestExerciseCompletePersistsAndDispatches(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewExerciseTracker(st, service)

	started, err := tracker.Start(models.ExerciseBreathing)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(service.ExerciseSessions()) != 0 {
		t.Fatal("starting an exercise must not persist anything")
	}

	done, err := tracker.Complete(240, "felt calm")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.ID != started.ID || !done.Completed || done.Duration != 240 || done.EndTime == nil {
		t.Errorf("completed session malformed: %+v", done)
	}

	stored := service.ExerciseSessions()
	if len(stored) != 1 || stored[0].ID != started.ID {
		t.Errorf("expected one persisted session, got %+v", stored)
	}
	state := st.State().ExerciseSessions
	if len(state) != 1 || state[0].ID != started.ID {
		t.Errorf("expected one session in state, got %+v", state)
	}
	if _, active := tracker.Active(); active {
		t.Error("tracker must be idle after completion")
	}
}

func TestExerciseCancelNeverPersists(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewExerciseTracker(st, service)

	if _, err := tracker.Start(models.ExerciseVisualization); err != nil {
		t.Fatalf("start: %v", err)
	}
	tracker.Cancel()

	if len(service.ExerciseSessions()) != 0 {
		t.Error("cancelled session must not reach storage")
	}
	if len(st.State().ExerciseSessions) != 0 {
		t.Error("cancelled session must not reach state")
	}
	if _, active := tracker.Active(); active {
		t.Error("tracker must be idle after cancel")
	}
}

func TestExerciseStartRejectsSecondSession(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewExerciseTracker(st, service)

	if _, err := tracker.Start(models.ExerciseBreathing); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := tracker.Start(models.ExerciseHeartRate); err == nil {
		t.Error("expected error starting a second session")
	}
	if _, err := tracker.Complete(0, ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
}

func TestExerciseStartRejectsUnknownType(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewExerciseTracker(st, service)

	if _, err := tracker.Start(models.ExerciseType("juggling")); err == nil {
		t.Error("expected error for unknown exercise type")
	}
}

func TestExerciseRecord(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewExerciseTracker(st, service)

	session, err := tracker.Record(models.ExerciseHeartRate, 90, "")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !session.Completed || session.Duration != 90 {
		t.Errorf("recorded session malformed: %+v", session)
	}
	if len(service.ExerciseSessions()) != 1 {
		t.Error("record must persist exactly one session")
	}
}

func TestRoutineStartCreatesOncePerDay(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewRoutineTracker(st, service)
	tracker.clock = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	first, err := tracker.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(first.Steps) != len(models.DefaultRoutineSteps) {
		t.Errorf("expected default step snapshot, got %d steps", len(first.Steps))
	}

	second, err := tracker.Start()
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if second.ID != first.ID {
		t.Error("restarting on the same day must resume the existing session")
	}
	if got := len(service.RoutineSessions()); got != 1 {
		t.Errorf("expected exactly one persisted session, got %d", got)
	}
}

func TestRoutineCompleteStepsToCompletion(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewRoutineTracker(st, service)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	current := start
	tracker.clock = func() time.Time { return current }

	session, err := tracker.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	current = start.Add(14 * time.Minute)
	for i, step := range session.Steps {
		updated, err := tracker.CompleteStep(step.ID)
		if err != nil {
			t.Fatalf("complete step %s: %v", step.ID, err)
		}
		wantDone := i == len(session.Steps)-1
		if updated.Completed != wantDone {
			t.Errorf("after step %d completed=%v, want %v", i+1, updated.Completed, wantDone)
		}
	}

	final, ok := tracker.Today()
	if !ok {
		t.Fatal("expected today's session")
	}
	if !final.Completed {
		t.Error("session must be completed after all steps")
	}
	if final.TotalDuration != 14*60 {
		t.Errorf("expected total duration 840s, got %d", final.TotalDuration)
	}
	if final.EndTime == nil {
		t.Error("completed session must carry an end time")
	}

	stored := service.RoutineSessions()
	if len(stored) != 1 || !stored[0].Completed {
		t.Errorf("storage out of sync with state: %+v", stored)
	}
}

func TestRoutineCompleteStepIdempotent(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewRoutineTracker(st, service)
	tracker.clock = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	session, err := tracker.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	stepID := session.Steps[0].ID

	if _, err := tracker.CompleteStep(stepID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	updated, err := tracker.CompleteStep(stepID)
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if len(updated.CompletedSteps) != 1 {
		t.Errorf("re-completing a step must not duplicate it: %v", updated.CompletedSteps)
	}
}

func TestRoutineCompleteStepValidation(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewRoutineTracker(st, service)

	if _, err := tracker.CompleteStep("mental-prep"); err == nil {
		t.Error("expected error without a started routine")
	}
	if _, err := tracker.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := tracker.CompleteStep("stretching"); err == nil {
		t.Error("expected error for unknown step")
	}
}

func TestRoutineUncompleteStepClearsCompleted(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewRoutineTracker(st, service)
	tracker.clock = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	session, err := tracker.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, step := range session.Steps {
		if _, err := tracker.CompleteStep(step.ID); err != nil {
			t.Fatalf("complete step: %v", err)
		}
	}

	reverted, err := tracker.UncompleteStep(session.Steps[0].ID)
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if reverted.Completed {
		t.Error("removing a step must clear the completed flag")
	}
	if got := len(reverted.CompletedSteps); got != len(session.Steps)-1 {
		t.Errorf("expected %d completed steps, got %d", len(session.Steps)-1, got)
	}

	stored := service.RoutineSessions()
	if stored[0].Completed {
		t.Error("storage must reflect the cleared flag")
	}
	if stored[0].EndTime != nil {
		t.Error("reopened session must not keep an end time")
	}
	if stored[0].TotalDuration != 0 {
		t.Errorf("reopened session must not keep a duration, got %d", stored[0].TotalDuration)
	}
}

func TestRoutineReset(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewRoutineTracker(st, service)
	tracker.clock = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	session, err := tracker.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := tracker.CompleteStep(session.Steps[0].ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	reset, err := tracker.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(reset.CompletedSteps) != 0 || reset.Completed {
		t.Errorf("reset must clear all progress: %+v", reset)
	}
	if today, _ := tracker.Today(); len(today.CompletedSteps) != 0 {
		t.Error("state must reflect the reset")
	}
}

func TestRoutineResetClearsCompletionRecord(t *testing.T) {
	st, service := newFixture(t)
	tracker := NewRoutineTracker(st, service)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	current := start
	tracker.clock = func() time.Time { return current }

	session, err := tracker.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	current = start.Add(10 * time.Minute)
	for _, step := range session.Steps {
		if _, err := tracker.CompleteStep(step.ID); err != nil {
			t.Fatalf("complete step: %v", err)
		}
	}

	reset, err := tracker.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset.EndTime != nil || reset.TotalDuration != 0 {
		t.Errorf("reset must wipe the completion record: %+v", reset)
	}
	if stored := service.RoutineSessions(); stored[0].EndTime != nil || stored[0].TotalDuration != 0 {
		t.Errorf("storage must wipe the completion record: %+v", stored[0])
	}
}
