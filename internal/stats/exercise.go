package stats

import (
	"math"
	"sort"
	"time"

	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/models"
)

type ExerciseStats struct {
	TotalSessions    int
	TotalDuration    int                 // seconds, completed sessions only
	AverageDuration  int                 // seconds
	CompletionRate   int                 // percent, rounded
	FavoriteExercise models.ExerciseType // empty when no session completed
	ThisWeekSessions int
	LastWeekSessions int
}

// Exercise computes aggregates over exercise sessions. Only completed
// sessions count toward duration and favorite type; the completion rate is
// completed over total.
func Exercise(sessions []models.ExerciseSession, now time.Time) ExerciseStats {
	if len(sessions) == 0 {
		return ExerciseStats{}
	}

	var completed []models.ExerciseSession
	for _, s := range sessions {
		if s.Completed {
			completed = append(completed, s)
		}
	}

	totalDuration := 0
	for _, s := range completed {
		totalDuration += s.Duration
	}

	averageDuration := 0
	if len(completed) > 0 {
		averageDuration = int(math.Round(float64(totalDuration) / float64(len(completed))))
	}

	thisWeek, lastWeek := 0, 0
	oneWeekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	for _, s := range sessions {
		switch {
		case !s.StartTime.Before(oneWeekAgo):
			thisWeek++
		case !s.StartTime.Before(twoWeeksAgo):
			lastWeek++
		}
	}

	return ExerciseStats{
		TotalSessions:    len(sessions),
		TotalDuration:    totalDuration,
		AverageDuration:  averageDuration,
		CompletionRate:   int(math.Round(float64(len(completed)) / float64(len(sessions)) * 100)),
		FavoriteExercise: FavoriteExercise(completed),
		ThisWeekSessions: thisWeek,
		LastWeekSessions: lastWeek,
	}
}

// FavoriteExercise returns the exercise type with the most completed
// sessions. Ties go to the lexicographically smallest type so the answer is
// deterministic.
func FavoriteExercise(completed []models.ExerciseSession) models.ExerciseType {
	counts := make(map[models.ExerciseType]int)
	for _, s := range completed {
		counts[s.ExerciseType]++
	}
	if len(counts) == 0 {
		return ""
	}

	types := make([]models.ExerciseType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	favorite := types[0]
	for _, t := range types[1:] {
		if counts[t] > counts[favorite] {
			favorite = t
		}
	}
	return favorite
}

// ExerciseStreak counts consecutive days ending at "today" with at least one
// completed exercise. Multiple sessions on the same day count once.
func ExerciseStreak(sessions []models.ExerciseSession, now time.Time) int {
	seen := make(map[string]bool)
	var days []string
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		day := s.StartTime.Format(constants.DayFormat)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	streak := 0
	checkDate := now
	for _, day := range days {
		date, err := time.Parse(constants.DayFormat, day)
		if err != nil {
			break
		}
		if daysBetween(checkDate, date) <= 1 {
			streak++
			checkDate = date
		} else {
			break
		}
	}
	return streak
}
