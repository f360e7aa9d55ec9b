package stats

import (
	"math"
	"time"

	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/models"
)

type RoutineStats struct {
	TotalSessions     int
	CompletedSessions int
	CompletionRate    int // percent, rounded
	AverageDuration   int // seconds, completed sessions only
	CurrentStreak     int
	LongestStreak     int
	ThisWeekSessions  int
	LastWeekSessions  int
}

// Routine computes aggregates over routine sessions.
func Routine(sessions []models.RoutineSession, now time.Time) RoutineStats {
	if len(sessions) == 0 {
		return RoutineStats{}
	}

	sorted := append([]models.RoutineSession(nil), sessions...)
	models.SortRoutineSessions(sorted)

	completedCount := 0
	totalDuration := 0
	for _, s := range sorted {
		if s.Completed {
			completedCount++
			totalDuration += s.TotalDuration
		}
	}

	averageDuration := 0
	if completedCount > 0 {
		averageDuration = int(math.Round(float64(totalDuration) / float64(completedCount)))
	}

	thisWeek, lastWeek := 0, 0
	oneWeekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	for _, s := range sorted {
		date, err := time.Parse(constants.DayFormat, s.Date)
		if err != nil {
			continue
		}
		switch {
		case !date.Before(oneWeekAgo):
			thisWeek++
		case !date.Before(twoWeeksAgo):
			lastWeek++
		}
	}

	return RoutineStats{
		TotalSessions:     len(sorted),
		CompletedSessions: completedCount,
		CompletionRate:    int(math.Round(float64(completedCount) / float64(len(sorted)) * 100)),
		AverageDuration:   averageDuration,
		CurrentStreak:     currentRoutineStreak(sorted),
		LongestStreak:     longestRoutineStreak(sorted),
		ThisWeekSessions:  thisWeek,
		LastWeekSessions:  lastWeek,
	}
}

// currentRoutineStreak counts consecutive completed sessions from the most
// recent backwards, stopping at the first incomplete one.
func currentRoutineStreak(sorted []models.RoutineSession) int {
	streak := 0
	for _, s := range sorted {
		if !s.Completed {
			break
		}
		streak++
	}
	return streak
}

// longestRoutineStreak scans ascending by date and tracks the longest run of
// completed sessions, resetting on any incomplete one.
func longestRoutineStreak(sorted []models.RoutineSession) int {
	longest, run := 0, 0
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Completed {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
