// Package tui is the interactive dashboard. It drives the exact same layers
// as the CLI commands: the state store for reads, the trackers and storage
// service for writes.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/session"
	"github.com/pitchmind/pitchmind/internal/stats"
	"github.com/pitchmind/pitchmind/internal/storage"
	"github.com/pitchmind/pitchmind/internal/store"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateMood
	StateExercisePick
	StateExerciseRun
	StateRoutine
	StateInsights
)

var exerciseChoices = []models.ExerciseType{
	models.ExerciseBreathing,
	models.ExerciseVisualization,
	models.ExerciseHeartRate,
}

type MoodFormModel struct {
	Rating   int
	Notes    string
	GameType string
}

type Model struct {
	store     *store.Store
	service   *storage.Service
	exercises *session.ExerciseTracker
	routines  *session.RoutineTracker

	state SessionState
	keys  KeyMap
	help  help.Model

	form     *huh.Form
	moodForm *MoodFormModel

	timer    timer.Model
	progress progress.Model
	runTotal int // seconds

	exerciseCursor int
	routineCursor  int

	// Stat caches shared across renders; pointers because the model is
	// copied by value on every update.
	moodCache     *stats.Cache[stats.MoodStats]
	exerciseCache *stats.Cache[stats.ExerciseStats]
	routineCache  *stats.Cache[stats.RoutineStats]

	status    string
	formError string
	quitting  bool
	width     int
	height    int
}

func NewModel(st *store.Store, service *storage.Service, exercises *session.ExerciseTracker, routines *session.RoutineTracker) Model {
	return Model{
		store:         st,
		service:       service,
		exercises:     exercises,
		routines:      routines,
		state:         StateDashboard,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		progress:      progress.New(progress.WithDefaultGradient()),
		moodCache:     &stats.Cache[stats.MoodStats]{},
		exerciseCache: &stats.Cache[stats.ExerciseStats]{},
		routineCache:  &stats.Cache[stats.RoutineStats]{},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateDashboard:
		return []key.Binding{m.keys.Mood, m.keys.Exercise, m.keys.Routine, m.keys.Insights, m.keys.Quit}
	case StateRoutine:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Cancel, m.keys.Quit}
	case StateExercisePick:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Cancel}
	case StateExerciseRun:
		return []key.Binding{m.keys.Enter, m.keys.Cancel}
	default:
		return []key.Binding{m.keys.Cancel, m.keys.Quit}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Mood, m.keys.Exercise, m.keys.Routine, m.keys.Insights},
		{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Cancel},
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Help, m.keys.Quit},
	}
}

func newMoodForm(mf *MoodFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How are you feeling about your game today?").
				Options(
					huh.NewOption("Very Anxious", 1),
					huh.NewOption("Anxious", 2),
					huh.NewOption("Okay", 3),
					huh.NewOption("Confident", 4),
					huh.NewOption("Peak Flow", 5),
				).
				Value(&mf.Rating),
			huh.NewSelect[string]().
				Title("What's coming up?").
				Options(
					huh.NewOption("Nothing specific", ""),
					huh.NewOption("Practice", "practice"),
					huh.NewOption("Game", "game"),
					huh.NewOption("Training", "training"),
				).
				Value(&mf.GameType),
			huh.NewInput().
				Title("Notes (optional)").
				Value(&mf.Notes),
		),
	)
}

// Run launches the dashboard and blocks until the user quits.
func Run(st *store.Store, service *storage.Service, exercises *session.ExerciseTracker, routines *session.RoutineTracker) error {
	program := tea.NewProgram(NewModel(st, service, exercises, routines), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// runDuration is the exercise countdown length from the user's preferences.
func (m Model) runDuration() time.Duration {
	minutes := m.store.State().UserPreferences.PreferredExerciseDuration
	if minutes <= 0 {
		minutes = 5
	}
	return time.Duration(minutes) * time.Minute
}

// Memoized stat accessors. The view renders on every key press and timer
// tick; recomputing only when the underlying list changes keeps renders
// cheap.

func (m Model) moodStats(entries []models.MoodEntry, now time.Time) stats.MoodStats {
	return m.moodCache.Get(stats.MoodKey(entries), func() stats.MoodStats {
		return stats.Mood(entries, now)
	})
}

func (m Model) exerciseStats(sessions []models.ExerciseSession, now time.Time) stats.ExerciseStats {
	return m.exerciseCache.Get(stats.ExerciseKey(sessions), func() stats.ExerciseStats {
		return stats.Exercise(sessions, now)
	})
}

func (m Model) routineStats(sessions []models.RoutineSession, now time.Time) stats.RoutineStats {
	return m.routineCache.Get(stats.RoutineKey(sessions), func() stats.RoutineStats {
		return stats.Routine(sessions, now)
	})
}
