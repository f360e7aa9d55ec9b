package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = m.viewDashboard()
	case StateMood:
		content = m.form.View()
		if m.formError != "" {
			content += "\n" + dangerStyle.Render(m.formError)
		}
	case StateExercisePick:
		content = m.viewExercisePick()
	case StateExerciseRun:
		content = m.viewExerciseRun()
	case StateRoutine:
		content = m.viewRoutine()
	case StateInsights:
		content = m.viewInsights()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := []string{"Today", "Routine", "Insights"}
	states := []SessionState{StateDashboard, StateRoutine, StateInsights}

	var tabs []string
	for i, title := range titles {
		if m.state == states[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	state := m.store.State()
	now := time.Now()
	today := now.Format(constants.DayFormat)

	var b strings.Builder
	b.WriteString(titleStyle.Render("PitchMind") + subtleStyle.Render("  pre-game confidence companion") + "\n\n")

	logged := false
	for _, e := range state.MoodEntries {
		if e.Date == today {
			b.WriteString(fmt.Sprintf("Today's mood: %d/5 %s\n", e.Rating, models.MoodLabel(e.Rating)))
			logged = true
			break
		}
	}
	if !logged {
		b.WriteString(subtleStyle.Render("No mood logged today. Press m to log one.") + "\n")
	}

	moodStats := m.moodStats(state.MoodEntries, now)
	if moodStats.Streak > 0 {
		b.WriteString(fmt.Sprintf("Check-in streak: %d day(s)\n", moodStats.Streak))
	}

	if session, ok := m.routines.Today(); ok {
		if session.Completed {
			b.WriteString(doneStyle.Render("Pre-game routine complete.") + "\n")
		} else if next := session.NextStep(); next != nil {
			b.WriteString(fmt.Sprintf("Routine %0.f%% done, next: %s\n", session.Progress(), next.Title))
		}
	} else {
		b.WriteString(subtleStyle.Render("No routine started today. Press r to begin.") + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	return b.String()
}

func (m Model) viewExercisePick() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Choose an exercise") + "\n\n")
	for i, t := range exerciseChoices {
		cursor := "  "
		line := models.ExerciseName(t)
		if i == m.exerciseCursor {
			cursor = cursorStyle.Render("> ")
			line = cursorStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

func (m Model) viewExerciseRun() string {
	active, ok := m.exercises.Active()
	if !ok {
		return ""
	}

	elapsed := m.runTotal - int(m.timer.Timeout.Seconds())
	percent := 0.0
	if m.runTotal > 0 {
		percent = float64(elapsed) / float64(m.runTotal)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(models.ExerciseName(active.ExerciseType)) + "\n\n")
	b.WriteString(fmt.Sprintf("Time remaining: %s\n\n", m.timer.View()))
	b.WriteString(m.progress.ViewAs(percent) + "\n\n")
	b.WriteString(subtleStyle.Render("enter to finish early, esc to cancel (nothing is saved)"))
	return b.String()
}

func (m Model) viewRoutine() string {
	session, ok := m.routines.Today()
	if !ok {
		return subtleStyle.Render("No routine started today.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pre-Game Routine") +
		subtleStyle.Render(fmt.Sprintf("  %s, %0.f%% done", session.Date, session.Progress())) + "\n\n")

	for i, step := range session.Steps {
		mark := "[ ]"
		title := step.Title
		if session.StepCompleted(step.ID) {
			mark = doneStyle.Render("[x]")
			title = doneStyle.Render(title)
		}
		cursor := "  "
		if i == m.routineCursor {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor, mark, title, subtleStyle.Render("("+step.Duration+")")))

		if i == m.routineCursor {
			for _, detail := range step.Details {
				b.WriteString(subtleStyle.Render("        · "+detail) + "\n")
			}
		}
	}
	return b.String()
}

func (m Model) viewInsights() string {
	state := m.store.State()
	now := time.Now()

	overview := stats.Summarize(state, now)
	if overview.TotalActivities == 0 {
		return subtleStyle.Render("No activity yet. Log a mood or run an exercise to get started.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Your Progress") + "\n\n")
	b.WriteString(fmt.Sprintf("Activities: %d over %d day(s), %d exercise minute(s)\n\n",
		overview.TotalActivities, overview.DaysSinceStart, overview.TotalExerciseMinutes))

	moodStats := m.moodStats(state.MoodEntries, now)
	if moodStats.Total > 0 {
		b.WriteString(fmt.Sprintf("Mood      %.1f/5 average, %d day streak, trend %s\n",
			moodStats.Average, moodStats.Streak, moodStats.Trend))
	}

	exStats := m.exerciseStats(state.ExerciseSessions, now)
	if exStats.TotalSessions > 0 {
		line := fmt.Sprintf("Exercises %d sessions, %d%% completed", exStats.TotalSessions, exStats.CompletionRate)
		if exStats.FavoriteExercise != "" {
			line += ", favorite " + models.ExerciseName(exStats.FavoriteExercise)
		}
		b.WriteString(line + "\n")
	}

	routineStats := m.routineStats(state.RoutineSessions, now)
	if routineStats.TotalSessions > 0 {
		b.WriteString(fmt.Sprintf("Routines  %d completed, current streak %d\n",
			routineStats.CompletedSessions, routineStats.CurrentStreak))
	}

	if impact := stats.Impact(state.MoodEntries, state.RoutineSessions); impact != nil {
		b.WriteString(fmt.Sprintf("\nMood averages %.1f with a routine vs %.1f without (%+.1f)\n",
			impact.WithRoutine, impact.WithoutRoutine, impact.Improvement))
	}
	return b.String()
}
