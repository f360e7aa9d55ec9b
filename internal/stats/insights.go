package stats

import (
	"time"

	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/models"
)

// RoutineImpact is the observational difference in average mood between days
// following a completed routine and days without one. No significance test
// is applied; treat it as illustrative only.
type RoutineImpact struct {
	WithRoutine    float64
	WithoutRoutine float64
	Improvement    float64
}

// Impact partitions mood entries by whether they landed on the same day as,
// or the day after, some completed routine. Returns nil when either
// partition is empty, since a one-sided comparison says nothing.
func Impact(moods []models.MoodEntry, routines []models.RoutineSession) *RoutineImpact {
	var routineDates []time.Time
	for _, r := range routines {
		if !r.Completed {
			continue
		}
		date, err := time.Parse(constants.DayFormat, r.Date)
		if err != nil {
			continue
		}
		routineDates = append(routineDates, date)
	}

	var after, without []models.MoodEntry
	for _, mood := range moods {
		moodDate, err := time.Parse(constants.DayFormat, mood.Date)
		if err != nil {
			continue
		}

		followsRoutine := false
		nearRoutine := false
		for _, rDate := range routineDates {
			diffDays := moodDate.Sub(rDate).Hours() / 24
			if diffDays >= 0 && diffDays <= 1 {
				followsRoutine = true
			}
			if diffDays >= -1 && diffDays <= 1 {
				nearRoutine = true
			}
		}

		if followsRoutine {
			after = append(after, mood)
		} else if !nearRoutine {
			// Moods the day before a routine sit in neither bucket; counting
			// them as "without" would dilute the baseline with game-eve
			// nerves the routine is about to address.
			without = append(without, mood)
		}
	}

	if len(after) == 0 || len(without) == 0 {
		return nil
	}

	withAvg := meanRating(after)
	withoutAvg := meanRating(without)
	return &RoutineImpact{
		WithRoutine:    withAvg,
		WithoutRoutine: withoutAvg,
		Improvement:    withAvg - withoutAvg,
	}
}

// Overview aggregates activity across all three collections.
type Overview struct {
	TotalMoodEntries      int
	TotalExerciseSessions int // completed only
	TotalRoutineSessions  int // completed only
	TotalActivities       int
	DaysSinceStart        int
	TotalExerciseMinutes  int
}

// Summarize builds the app-wide overview from a state snapshot.
func Summarize(state models.AppState, now time.Time) Overview {
	completedExercises := 0
	exerciseSeconds := 0
	for _, s := range state.ExerciseSessions {
		if s.Completed {
			completedExercises++
			exerciseSeconds += s.Duration
		}
	}

	completedRoutines := 0
	for _, s := range state.RoutineSessions {
		if s.Completed {
			completedRoutines++
		}
	}

	var earliest time.Time
	consider := func(t time.Time) {
		if t.IsZero() {
			return
		}
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
	}
	for _, e := range state.MoodEntries {
		if date, err := time.Parse(constants.DayFormat, e.Date); err == nil {
			consider(date)
		}
	}
	for _, s := range state.ExerciseSessions {
		consider(s.StartTime)
	}
	for _, s := range state.RoutineSessions {
		if date, err := time.Parse(constants.DayFormat, s.Date); err == nil {
			consider(date)
		}
	}

	daysSinceStart := 0
	if !earliest.IsZero() {
		daysSinceStart = daysBetween(now, earliest)
	}

	total := len(state.MoodEntries) + completedExercises + completedRoutines
	return Overview{
		TotalMoodEntries:      len(state.MoodEntries),
		TotalExerciseSessions: completedExercises,
		TotalRoutineSessions:  completedRoutines,
		TotalActivities:       total,
		DaysSinceStart:        daysSinceStart,
		TotalExerciseMinutes:  exerciseSeconds / 60,
	}
}
