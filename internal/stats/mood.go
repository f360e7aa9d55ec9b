// Package stats computes derived insights over state snapshots. Every
// function is pure and returns an explicit zero/neutral/nil result for empty
// input; missing data never produces an error.
package stats

import (
	"math"
	"time"

	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/models"
)

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

type MoodStats struct {
	Average         float64
	Total           int
	Streak          int
	Trend           Trend
	ThisWeekAverage float64
	LastWeekAverage float64
}

// Mood computes the mood aggregates for the given entries at the given
// instant. Entries are expected newest first (the collections' resting
// order); the streak walk re-sorts defensively.
func Mood(entries []models.MoodEntry, now time.Time) MoodStats {
	if len(entries) == 0 {
		return MoodStats{Trend: TrendNeutral}
	}

	sorted := append([]models.MoodEntry(nil), entries...)
	models.SortMoodEntries(sorted)

	sum := 0
	for _, e := range sorted {
		sum += e.Rating
	}

	thisWeek, lastWeek := weeklyMoodAverages(sorted, now)

	return MoodStats{
		Average:         round1(float64(sum) / float64(len(sorted))),
		Total:           len(sorted),
		Streak:          MoodStreak(sorted, now),
		Trend:           MoodTrend(sorted),
		ThisWeekAverage: thisWeek,
		LastWeekAverage: lastWeek,
	}
}

// MoodStreak counts consecutive logged days ending at "today". Each counted
// entry must be within one calendar day of the previously counted one; the
// first larger gap ends the streak.
func MoodStreak(sorted []models.MoodEntry, now time.Time) int {
	streak := 0
	checkDate := now

	for _, entry := range sorted {
		entryDate, err := time.Parse(constants.DayFormat, entry.Date)
		if err != nil {
			break
		}
		if daysBetween(checkDate, entryDate) <= 1 {
			streak++
			checkDate = entryDate
		} else {
			break
		}
	}

	return streak
}

// MoodTrend compares the mean of the three most recent entries against the
// three before them. Fewer than six entries is always neutral, and the 0.3
// margin is strict: a difference of exactly 0.3 is still neutral.
func MoodTrend(sorted []models.MoodEntry) Trend {
	if len(sorted) < constants.TrendMinEntries {
		return TrendNeutral
	}

	recentAvg := meanRating(sorted[:constants.TrendWindow])
	olderAvg := meanRating(sorted[constants.TrendWindow : 2*constants.TrendWindow])

	switch {
	case recentAvg > olderAvg+constants.TrendThreshold:
		return TrendUp
	case recentAvg < olderAvg-constants.TrendThreshold:
		return TrendDown
	default:
		return TrendNeutral
	}
}

func weeklyMoodAverages(entries []models.MoodEntry, now time.Time) (thisWeek, lastWeek float64) {
	oneWeekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var thisWeekEntries, lastWeekEntries []models.MoodEntry
	for _, e := range entries {
		date, err := time.Parse(constants.DayFormat, e.Date)
		if err != nil {
			continue
		}
		switch {
		case !date.Before(oneWeekAgo):
			thisWeekEntries = append(thisWeekEntries, e)
		case !date.Before(twoWeeksAgo):
			lastWeekEntries = append(lastWeekEntries, e)
		}
	}

	return round1(meanRating(thisWeekEntries)), round1(meanRating(lastWeekEntries))
}

func meanRating(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Rating
	}
	return float64(sum) / float64(len(entries))
}

// daysBetween returns the absolute whole-day distance between two instants,
// rounded up.
func daysBetween(a, b time.Time) int {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
