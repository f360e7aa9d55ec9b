package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/store"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = msg.Width - 8
		return m, nil

	case timer.TickMsg:
		if m.state == StateExerciseRun {
			var cmd tea.Cmd
			m.timer, cmd = m.timer.Update(msg)
			return m, cmd
		}
		return m, nil

	case timer.TimeoutMsg:
		if m.state == StateExerciseRun {
			return m.finishExercise()
		}
		return m, nil
	}

	if m.state == StateMood {
		return m.updateMoodForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.state == StateExerciseRun {
			m.exercises.Cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case StateDashboard:
		return m.handleDashboardKey(msg)
	case StateExercisePick:
		return m.handleExercisePickKey(msg)
	case StateExerciseRun:
		return m.handleExerciseRunKey(msg)
	case StateRoutine:
		return m.handleRoutineKey(msg)
	case StateInsights:
		if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Tab) {
			m.state = StateDashboard
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Mood):
		m.moodForm = &MoodFormModel{Rating: 3}
		m.form = newMoodForm(m.moodForm)
		m.state = StateMood
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Exercise):
		m.exerciseCursor = 0
		m.state = StateExercisePick
		return m, nil

	case key.Matches(msg, m.keys.Routine):
		if _, err := m.routines.Start(); err != nil {
			m.status = dangerStyle.Render(err.Error())
			return m, nil
		}
		m.routineCursor = 0
		m.state = StateRoutine
		return m, nil

	case key.Matches(msg, m.keys.Insights):
		m.state = StateInsights
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.state = StateRoutine
		if _, ok := m.routines.Today(); !ok {
			m.state = StateInsights
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateMoodForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateDashboard
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		entry := models.MoodEntry{
			ID:        uuid.New().String(),
			Date:      time.Now().Format(constants.DayFormat),
			Rating:    m.moodForm.Rating,
			Notes:     m.moodForm.Notes,
			GameType:  models.GameType(m.moodForm.GameType),
			CreatedAt: time.Now(),
		}
		if err := m.service.AddMoodEntry(entry); err != nil {
			m.formError = fmt.Sprintf("Failed to save mood: %v", err)
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.store.Dispatch(store.AddMoodEntry{Entry: entry})
		m.formError = ""
		m.status = statusStyle.Render("Mood logged for today.")
		m.state = StateDashboard

	case huh.StateAborted:
		m.state = StateDashboard
	}
	return m, cmd
}

func (m Model) handleExercisePickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.state = StateDashboard
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.exerciseCursor > 0 {
			m.exerciseCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.exerciseCursor < len(exerciseChoices)-1 {
			m.exerciseCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if _, err := m.exercises.Start(exerciseChoices[m.exerciseCursor]); err != nil {
			m.status = dangerStyle.Render(err.Error())
			m.state = StateDashboard
			return m, nil
		}
		total := m.runDuration()
		m.runTotal = int(total.Seconds())
		m.timer = timer.NewWithInterval(total, time.Second)
		m.state = StateExerciseRun
		return m, m.timer.Init()
	}
	return m, nil
}

func (m Model) handleExerciseRunKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// Abandoned attempts leave no trace.
		m.exercises.Cancel()
		m.status = statusStyle.Render("Exercise cancelled.")
		m.state = StateDashboard
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		// Finish early; elapsed time still counts.
		return m.finishExercise()
	}
	return m, nil
}

func (m Model) finishExercise() (tea.Model, tea.Cmd) {
	elapsed := int(m.exercises.Elapsed().Seconds())
	if elapsed > m.runTotal {
		elapsed = m.runTotal
	}
	completed, err := m.exercises.Complete(elapsed, "")
	if err != nil {
		m.status = dangerStyle.Render(fmt.Sprintf("Failed to save exercise: %v", err))
		m.exercises.Cancel()
	} else {
		m.status = statusStyle.Render(fmt.Sprintf("%s complete. Well done!", models.ExerciseName(completed.ExerciseType)))
	}
	m.state = StateDashboard
	return m, nil
}

func (m Model) handleRoutineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session, ok := m.routines.Today()
	if !ok {
		m.state = StateDashboard
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Tab):
		m.state = StateDashboard
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.routineCursor > 0 {
			m.routineCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.routineCursor < len(session.Steps)-1 {
			m.routineCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		step := session.Steps[m.routineCursor]
		var err error
		if session.StepCompleted(step.ID) {
			_, err = m.routines.UncompleteStep(step.ID)
		} else {
			session, err = m.routines.CompleteStep(step.ID)
			if err == nil && session.Completed {
				m.status = statusStyle.Render("Routine complete. Go play your game!")
				m.state = StateDashboard
			}
		}
		if err != nil {
			m.status = dangerStyle.Render(err.Error())
			m.state = StateDashboard
		}
		return m, nil
	}
	return m, nil
}
