package models

import (
	"testing"
	"time"
)

func TestUpsertMoodEntry_ReplacesSameDate(t *testing.T) {
	now := time.Now()
	entries := []MoodEntry{
		{ID: "a", Date: "2026-03-01", Rating: 4, CreatedAt: now},
	}

	replacement := MoodEntry{ID: "b", Date: "2026-03-01", Rating: 2, CreatedAt: now}
	result := UpsertMoodEntry(entries, replacement)

	if len(result) != 1 {
		t.Fatalf("expected 1 entry after same-date upsert, got %d", len(result))
	}
	if result[0].ID != "b" || result[0].Rating != 2 {
		t.Errorf("expected latest write to win, got %+v", result[0])
	}
}

func TestUpsertMoodEntry_SortsDescending(t *testing.T) {
	now := time.Now()
	entries := []MoodEntry{
		{ID: "a", Date: "2026-03-03", Rating: 3, CreatedAt: now},
		{ID: "b", Date: "2026-03-01", Rating: 4, CreatedAt: now},
	}

	result := UpsertMoodEntry(entries, MoodEntry{ID: "c", Date: "2026-03-02", Rating: 5, CreatedAt: now})

	want := []string{"2026-03-03", "2026-03-02", "2026-03-01"}
	if len(result) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result))
	}
	for i, date := range want {
		if result[i].Date != date {
			t.Errorf("position %d: expected %s, got %s", i, date, result[i].Date)
		}
	}
}

func TestMoodLabel(t *testing.T) {
	cases := map[int]string{
		1: "Very Anxious",
		2: "Anxious",
		3: "Okay",
		4: "Confident",
		5: "Peak Flow",
		7: "Rating 7",
	}
	for rating, want := range cases {
		if got := MoodLabel(rating); got != want {
			t.Errorf("rating %d: expected %q, got %q", rating, want, got)
		}
	}
}

func TestMoodEntryValid(t *testing.T) {
	base := MoodEntry{ID: "m1", Date: "2026-03-01", Rating: 3, CreatedAt: time.Now()}

	if !base.Valid() {
		t.Error("expected base entry to be valid")
	}

	invalid := []MoodEntry{
		{ID: "", Date: "2026-03-01", Rating: 3, CreatedAt: time.Now()},
		{ID: "m", Date: "not-a-date", Rating: 3, CreatedAt: time.Now()},
		{ID: "m", Date: "2026-03-01", Rating: 0, CreatedAt: time.Now()},
		{ID: "m", Date: "2026-03-01", Rating: 6, CreatedAt: time.Now()},
		{ID: "m", Date: "2026-03-01", Rating: 3, GameType: "scrimmage", CreatedAt: time.Now()},
		{ID: "m", Date: "2026-03-01", Rating: 3},
	}
	for i, e := range invalid {
		if e.Valid() {
			t.Errorf("case %d: expected invalid, got valid: %+v", i, e)
		}
	}
}

func TestRoutineRecomputeCompleted(t *testing.T) {
	session := RoutineSession{
		ID:        "r1",
		Date:      "2026-03-01",
		Steps:     NewRoutineSteps(),
		StartTime: time.Now(),
	}

	session.RecomputeCompleted()
	if session.Completed {
		t.Error("routine with no completed steps must not be completed")
	}

	for _, step := range session.Steps[:len(session.Steps)-1] {
		session.CompletedSteps = append(session.CompletedSteps, step.ID)
	}
	session.RecomputeCompleted()
	if session.Completed {
		t.Error("routine with one step remaining must not be completed")
	}

	session.CompletedSteps = append(session.CompletedSteps, session.Steps[len(session.Steps)-1].ID)
	session.RecomputeCompleted()
	if !session.Completed {
		t.Error("routine with all steps done must be completed")
	}
}

func TestRoutineNextStep(t *testing.T) {
	session := RoutineSession{
		ID:        "r1",
		Date:      "2026-03-01",
		Steps:     NewRoutineSteps(),
		StartTime: time.Now(),
	}

	next := session.NextStep()
	if next == nil || next.ID != "mental-prep" {
		t.Fatalf("expected first step mental-prep, got %v", next)
	}

	session.CompletedSteps = []string{"mental-prep"}
	next = session.NextStep()
	if next == nil || next.ID != "visualization" {
		t.Fatalf("expected visualization after mental-prep, got %v", next)
	}

	for _, step := range session.Steps {
		if !session.StepCompleted(step.ID) {
			session.CompletedSteps = append(session.CompletedSteps, step.ID)
		}
	}
	if session.NextStep() != nil {
		t.Error("expected no next step once all are completed")
	}
}

func TestRoutinePatchClearsEndTime(t *testing.T) {
	end := time.Now()
	duration := 600
	session := RoutineSession{
		ID:            "r1",
		Date:          "2026-03-01",
		Steps:         NewRoutineSteps(),
		Completed:     true,
		TotalDuration: duration,
		StartTime:     end.Add(-10 * time.Minute),
		EndTime:       &end,
	}

	zero := 0
	reopened := RoutineSessionPatch{TotalDuration: &zero, ClearEndTime: true}.Apply(session)
	if reopened.EndTime != nil {
		t.Error("clearing the end time must leave it nil")
	}
	if reopened.TotalDuration != 0 {
		t.Errorf("expected zero duration, got %d", reopened.TotalDuration)
	}

	// ClearEndTime wins when both are set.
	conflicting := RoutineSessionPatch{EndTime: &end, ClearEndTime: true}.Apply(session)
	if conflicting.EndTime != nil {
		t.Error("ClearEndTime must win over EndTime")
	}
}

func TestPreferencesPatchApply(t *testing.T) {
	prefs := DefaultPreferences()

	reminder := "18:30"
	duration := 10
	patched := PreferencesPatch{ReminderTime: &reminder, PreferredExerciseDuration: &duration}.Apply(prefs)

	if patched.ReminderTime != "18:30" || patched.PreferredExerciseDuration != 10 {
		t.Errorf("patch not applied: %+v", patched)
	}
	if patched.NotificationsEnabled != prefs.NotificationsEnabled {
		t.Error("untouched field changed during patch")
	}
}

func TestPreferencesValid(t *testing.T) {
	prefs := DefaultPreferences()
	if !prefs.Valid() {
		t.Error("default preferences must be valid")
	}

	prefs.ReminderTime = "25:99"
	if prefs.Valid() {
		t.Error("malformed reminder time must be invalid")
	}

	prefs = DefaultPreferences()
	prefs.PreferredExerciseDuration = 31
	if prefs.Valid() {
		t.Error("out-of-range exercise duration must be invalid")
	}
}

func TestNewRoutineStepsIsACopy(t *testing.T) {
	steps := NewRoutineSteps()
	steps[0].Title = "mutated"
	steps[0].Details[0] = "mutated"

	if DefaultRoutineSteps[0].Title == "mutated" {
		t.Error("session snapshot must not alias the catalog")
	}
	if DefaultRoutineSteps[0].Details[0] == "mutated" {
		t.Error("session snapshot details must not alias the catalog")
	}
}
