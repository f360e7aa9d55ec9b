package models

import (
	"sort"
	"time"
)

// RoutineStep is one step of the pre-game routine catalog. Steps are static
// template data, not user data; each session keeps its own snapshot so later
// catalog edits never rewrite history.
type RoutineStep struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Duration          string   `json:"duration"` // display string, e.g. "3 minutes"
	Icon              string   `json:"icon"`
	Color             string   `json:"color"`
	Details           []string `json:"details"`
	EstimatedDuration int      `json:"estimated_duration"` // seconds
}

// RoutineSession is one attempt at the pre-game routine for a calendar day.
// At most one session exists per date; re-starting a day resumes it.
type RoutineSession struct {
	ID             string        `json:"id"`
	Date           string        `json:"date"` // YYYY-MM-DD format
	Steps          []RoutineStep `json:"steps"`
	CompletedSteps []string      `json:"completed_steps"`
	TotalDuration  int           `json:"total_duration"` // seconds
	Completed      bool          `json:"completed"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        *time.Time    `json:"end_time,omitempty"`
}

// Valid reports whether the session is structurally sound.
func (s RoutineSession) Valid() bool {
	if s.ID == "" || s.Date == "" {
		return false
	}
	if _, err := time.Parse("2006-01-02", s.Date); err != nil {
		return false
	}
	if s.TotalDuration < 0 {
		return false
	}
	if len(s.CompletedSteps) > len(s.Steps) {
		return false
	}
	return !s.StartTime.IsZero()
}

// StepCompleted reports whether the given step has been completed.
func (s RoutineSession) StepCompleted(stepID string) bool {
	for _, id := range s.CompletedSteps {
		if id == stepID {
			return true
		}
	}
	return false
}

// NextStep returns the first step not yet completed, or nil if all are done.
func (s RoutineSession) NextStep() *RoutineStep {
	for i := range s.Steps {
		if !s.StepCompleted(s.Steps[i].ID) {
			return &s.Steps[i]
		}
	}
	return nil
}

// Progress returns the step completion percentage.
func (s RoutineSession) Progress() float64 {
	if len(s.Steps) == 0 {
		return 0
	}
	return float64(len(s.CompletedSteps)) / float64(len(s.Steps)) * 100
}

// RecomputeCompleted re-derives the completed flag from the step sets. The
// flag must never drift from completedSteps, so every mutation of the set
// goes through this.
func (s *RoutineSession) RecomputeCompleted() {
	s.Completed = len(s.Steps) > 0 && len(s.CompletedSteps) == len(s.Steps)
}

// SortRoutineSessions sorts sessions descending by date.
func SortRoutineSessions(sessions []RoutineSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date > sessions[j].Date
	})
}

// RoutineSessionPatch carries a partial update for a routine session.
// ClearEndTime wipes the end time when a finished session is reopened; it
// wins over EndTime when both are set.
type RoutineSessionPatch struct {
	CompletedSteps *[]string  `json:"completed_steps,omitempty"`
	TotalDuration  *int       `json:"total_duration,omitempty"`
	Completed      *bool      `json:"completed,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	ClearEndTime   bool       `json:"clear_end_time,omitempty"`
}

// Apply merges the patch onto the session.
func (p RoutineSessionPatch) Apply(s RoutineSession) RoutineSession {
	if p.CompletedSteps != nil {
		s.CompletedSteps = append([]string(nil), (*p.CompletedSteps)...)
	}
	if p.TotalDuration != nil {
		s.TotalDuration = *p.TotalDuration
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
	if p.ClearEndTime {
		s.EndTime = nil
	} else if p.EndTime != nil {
		t := *p.EndTime
		s.EndTime = &t
	}
	return s
}

// DefaultRoutineSteps is the built-in four-step pre-game routine.
var DefaultRoutineSteps = []RoutineStep{
	{
		ID:                "mental-prep",
		Title:             "Mental Preparation",
		Description:       "Set your mindset for success",
		Duration:          "3 minutes",
		Icon:              "brain",
		Color:             "#8B5CF6",
		EstimatedDuration: 180,
		Details: []string{
			"Take 5 deep breaths to center yourself",
			`Remind yourself: "I belong here"`,
			"Visualize yourself playing with confidence",
			"Set one simple intention for the game",
		},
	},
	{
		ID:                "visualization",
		Title:             "Success Visualization",
		Description:       "See your best performance",
		Duration:          "5 minutes",
		Icon:              "target",
		Color:             "#16A34A",
		EstimatedDuration: 300,
		Details: []string{
			"Close your eyes and picture the field",
			"See yourself making accurate passes",
			"Visualize successful defensive plays",
			"Imagine teammates celebrating with you",
			"Feel the joy of playing your best game",
		},
	},
	{
		ID:                "breathing",
		Title:             "Calming Breath Work",
		Description:       "Regulate your nervous system",
		Duration:          "4 minutes",
		Icon:              "heart",
		Color:             "#EF4444",
		EstimatedDuration: 240,
		Details: []string{
			"Use the 4-7-8 breathing technique",
			"Inhale for 4 counts through your nose",
			"Hold for 7 counts",
			"Exhale for 8 counts through your mouth",
			"Repeat 4-6 cycles",
		},
	},
	{
		ID:                "affirmations",
		Title:             "Power Affirmations",
		Description:       "Build unshakeable confidence",
		Duration:          "2 minutes",
		Icon:              "zap",
		Color:             "#F59E0B",
		EstimatedDuration: 120,
		Details: []string{
			"Repeat each affirmation 3 times:",
			`"I am prepared and confident"`,
			`"I trust my skills and training"`,
			`"I play with joy and focus"`,
			`"I am exactly where I need to be"`,
		},
	},
}

// NewRoutineSteps returns a fresh copy of the default step catalog for a new
// session snapshot.
func NewRoutineSteps() []RoutineStep {
	steps := make([]RoutineStep, len(DefaultRoutineSteps))
	copy(steps, DefaultRoutineSteps)
	for i := range steps {
		steps[i].Details = append([]string(nil), DefaultRoutineSteps[i].Details...)
	}
	return steps
}
