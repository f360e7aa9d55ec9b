package models

import (
	"sort"
	"time"
)

type ExerciseType string

const (
	ExerciseBreathing     ExerciseType = "breathing"
	ExerciseVisualization ExerciseType = "visualization"
	ExerciseHeartRate     ExerciseType = "heartrate"
)

// ExerciseName returns the display name for an exercise type.
func ExerciseName(t ExerciseType) string {
	switch t {
	case ExerciseBreathing:
		return "4-7-8 Breathing"
	case ExerciseVisualization:
		return "Perfect Play Visualization"
	case ExerciseHeartRate:
		return "Heart Rate Reset"
	default:
		return string(t)
	}
}

// ExerciseSession is one guided exercise attempt. Sessions exist in memory
// only while active; a session is persisted solely on completion, and a
// cancelled session is discarded without trace.
type ExerciseSession struct {
	ID           string       `json:"id"`
	ExerciseType ExerciseType `json:"exercise_type"`
	Duration     int          `json:"duration"` // seconds
	Completed    bool         `json:"completed"`
	StartTime    time.Time    `json:"start_time"`
	EndTime      *time.Time   `json:"end_time,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// Valid reports whether the session is structurally sound.
func (s ExerciseSession) Valid() bool {
	if s.ID == "" {
		return false
	}
	switch s.ExerciseType {
	case ExerciseBreathing, ExerciseVisualization, ExerciseHeartRate:
	default:
		return false
	}
	if s.Duration < 0 {
		return false
	}
	return !s.StartTime.IsZero()
}

// SortExerciseSessions sorts sessions descending by start time.
func SortExerciseSessions(sessions []ExerciseSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
}

// ExerciseSessionPatch carries a partial update for an exercise session.
type ExerciseSessionPatch struct {
	Duration  *int       `json:"duration,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// Apply merges the patch onto the session.
func (p ExerciseSessionPatch) Apply(s ExerciseSession) ExerciseSession {
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
	if p.EndTime != nil {
		t := *p.EndTime
		s.EndTime = &t
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	return s
}
