package stats

import (
	"testing"
	"time"

	"github.com/pitchmind/pitchmind/internal/models"
)

// now is fixed mid-day so streak math sees a stable "today".
var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format("2006-01-02")
}

func mood(date string, rating int) models.MoodEntry {
	return models.MoodEntry{ID: "mood-" + date, Date: date, Rating: rating, CreatedAt: now}
}

func TestMoodEmpty(t *testing.T) {
	got := Mood(nil, now)
	if got.Average != 0 || got.Total != 0 || got.Streak != 0 {
		t.Errorf("empty input must yield zero values, got %+v", got)
	}
	if got.Trend != TrendNeutral {
		t.Errorf("empty input must yield neutral trend, got %s", got.Trend)
	}
}

func TestMoodAverage(t *testing.T) {
	entries := []models.MoodEntry{
		mood(day(0), 4),
		mood(day(-1), 3),
		mood(day(-2), 3),
	}
	got := Mood(entries, now)
	if got.Average != 3.3 {
		t.Errorf("expected average 3.3, got %v", got.Average)
	}
	if got.Total != 3 {
		t.Errorf("expected total 3, got %d", got.Total)
	}
}

func TestMoodStreak_ThreeConsecutiveDays(t *testing.T) {
	entries := []models.MoodEntry{
		mood(day(0), 4),
		mood(day(-1), 3),
		mood(day(-2), 5),
	}
	if got := Mood(entries, now).Streak; got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}
}

func TestMoodStreak_GapTruncates(t *testing.T) {
	entries := []models.MoodEntry{
		mood(day(0), 4),
		mood(day(-1), 3),
		mood(day(-4), 5), // 2+ day gap
		mood(day(-5), 5),
	}
	if got := Mood(entries, now).Streak; got != 2 {
		t.Errorf("expected streak truncated to 2 at the gap, got %d", got)
	}
}

func TestMoodStreak_NoEntryToday(t *testing.T) {
	// Most recent entry is two days old; the streak never starts.
	entries := []models.MoodEntry{
		mood(day(-2), 4),
		mood(day(-3), 3),
	}
	if got := Mood(entries, now).Streak; got != 0 {
		t.Errorf("expected streak 0 without a recent entry, got %d", got)
	}
}

func trendEntries(recent, older [3]int) []models.MoodEntry {
	var entries []models.MoodEntry
	for i, r := range recent {
		entries = append(entries, mood(day(-i), r))
	}
	for i, r := range older {
		entries = append(entries, mood(day(-3-i), r))
	}
	return entries
}

func TestMoodTrend(t *testing.T) {
	cases := []struct {
		name    string
		entries []models.MoodEntry
		want    Trend
	}{
		{"fewer than six entries", []models.MoodEntry{
			mood(day(0), 5), mood(day(-1), 5), mood(day(-2), 1), mood(day(-3), 1), mood(day(-4), 1),
		}, TrendNeutral},
		{"recent clearly higher", trendEntries([3]int{5, 4, 5}, [3]int{3, 3, 3}), TrendUp},
		{"recent clearly lower", trendEntries([3]int{2, 2, 2}, [3]int{4, 4, 4}), TrendDown},
		{"smallest nonzero lift crosses margin", trendEntries([3]int{4, 4, 5}, [3]int{4, 4, 4}), TrendUp},
		{"flat", trendEntries([3]int{4, 4, 4}, [3]int{4, 4, 4}), TrendNeutral},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Mood(tc.entries, now).Trend; got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestWeeklyAverages(t *testing.T) {
	entries := []models.MoodEntry{
		mood(day(0), 5),
		mood(day(-3), 4),  // this week
		mood(day(-10), 2), // last week
		mood(day(-12), 2), // last week
	}
	got := Mood(entries, now)
	if got.ThisWeekAverage != 4.5 {
		t.Errorf("expected this-week average 4.5, got %v", got.ThisWeekAverage)
	}
	if got.LastWeekAverage != 2 {
		t.Errorf("expected last-week average 2, got %v", got.LastWeekAverage)
	}
}

func exercise(id string, exType models.ExerciseType, completed bool, start time.Time, duration int) models.ExerciseSession {
	return models.ExerciseSession{
		ID:           id,
		ExerciseType: exType,
		Duration:     duration,
		Completed:    completed,
		StartTime:    start,
	}
}

func TestExerciseEmpty(t *testing.T) {
	got := Exercise(nil, now)
	if got != (ExerciseStats{}) {
		t.Errorf("empty input must yield zero stats, got %+v", got)
	}
}

func TestExerciseCompletionRate(t *testing.T) {
	sessions := []models.ExerciseSession{
		exercise("a", models.ExerciseBreathing, true, now, 120),
		exercise("b", models.ExerciseBreathing, true, now, 180),
		exercise("c", models.ExerciseVisualization, false, now, 0),
		exercise("d", models.ExerciseHeartRate, false, now, 0),
	}
	got := Exercise(sessions, now)
	if got.CompletionRate != 50 {
		t.Errorf("expected 50%% completion for 2/4, got %d", got.CompletionRate)
	}
	if got.TotalDuration != 300 {
		t.Errorf("expected total duration 300, got %d", got.TotalDuration)
	}
	if got.AverageDuration != 150 {
		t.Errorf("expected average duration 150, got %d", got.AverageDuration)
	}
}

func TestFavoriteExercise(t *testing.T) {
	sessions := []models.ExerciseSession{
		exercise("a", models.ExerciseHeartRate, true, now, 60),
		exercise("b", models.ExerciseHeartRate, true, now, 60),
		exercise("c", models.ExerciseBreathing, true, now, 60),
		exercise("d", models.ExerciseVisualization, false, now, 0), // incomplete, ignored
	}
	if got := Exercise(sessions, now).FavoriteExercise; got != models.ExerciseHeartRate {
		t.Errorf("expected heartrate favorite, got %s", got)
	}
}

func TestFavoriteExercise_TieIsDeterministic(t *testing.T) {
	sessions := []models.ExerciseSession{
		exercise("a", models.ExerciseVisualization, true, now, 60),
		exercise("b", models.ExerciseBreathing, true, now, 60),
	}
	// breathing < heartrate < visualization lexicographically
	if got := FavoriteExercise(sessions); got != models.ExerciseBreathing {
		t.Errorf("tie must break to lexicographically smallest type, got %s", got)
	}
}

func TestExerciseStreakCollapsesSameDay(t *testing.T) {
	sessions := []models.ExerciseSession{
		exercise("a", models.ExerciseBreathing, true, now, 60),
		exercise("b", models.ExerciseHeartRate, true, now.Add(-time.Hour), 60), // same day
		exercise("c", models.ExerciseBreathing, true, now.AddDate(0, 0, -1), 60),
	}
	if got := ExerciseStreak(sessions, now); got != 2 {
		t.Errorf("expected streak 2 (same-day sessions collapse), got %d", got)
	}
}

func routine(id, date string, completed bool, duration int) models.RoutineSession {
	s := models.RoutineSession{
		ID:            id,
		Date:          date,
		Steps:         models.NewRoutineSteps(),
		TotalDuration: duration,
		Completed:     completed,
		StartTime:     now,
	}
	return s
}

func TestRoutineEmpty(t *testing.T) {
	if got := Routine(nil, now); got != (RoutineStats{}) {
		t.Errorf("empty input must yield zero stats, got %+v", got)
	}
}

func TestRoutineStreaks(t *testing.T) {
	sessions := []models.RoutineSession{
		routine("e", day(-4), true, 600),
		routine("d", day(-3), true, 600),
		routine("c", day(-2), false, 0),
		routine("b", day(-1), true, 600),
		routine("a", day(0), true, 600),
	}

	got := Routine(sessions, now)
	if got.CurrentStreak != 2 {
		t.Errorf("expected current streak 2, got %d", got.CurrentStreak)
	}
	if got.LongestStreak != 2 {
		t.Errorf("expected longest streak 2, got %d", got.LongestStreak)
	}
	if got.CompletedSessions != 4 || got.TotalSessions != 5 {
		t.Errorf("session counts wrong: %+v", got)
	}
	if got.CompletionRate != 80 {
		t.Errorf("expected completion rate 80, got %d", got.CompletionRate)
	}
}

func TestRoutineLongestStreakBeatsCurrent(t *testing.T) {
	sessions := []models.RoutineSession{
		routine("f", day(-5), true, 600),
		routine("e", day(-4), true, 600),
		routine("d", day(-3), true, 600),
		routine("c", day(-2), false, 0),
		routine("b", day(-1), true, 600),
	}
	got := Routine(sessions, now)
	if got.CurrentStreak != 1 {
		t.Errorf("expected current streak 1, got %d", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Errorf("expected longest streak 3, got %d", got.LongestStreak)
	}
}

func TestImpact(t *testing.T) {
	routines := []models.RoutineSession{
		routine("r1", day(-5), true, 600),
	}
	moods := []models.MoodEntry{
		mood(day(-5), 5), // same day as routine
		mood(day(-4), 4), // day after routine
		mood(day(0), 2),  // no routine nearby
		mood(day(-1), 2), // no routine nearby
	}

	impact := Impact(moods, routines)
	if impact == nil {
		t.Fatal("expected impact result with both partitions populated")
	}
	if impact.WithRoutine != 4.5 {
		t.Errorf("expected with-routine mean 4.5, got %v", impact.WithRoutine)
	}
	if impact.WithoutRoutine != 2 {
		t.Errorf("expected without-routine mean 2, got %v", impact.WithoutRoutine)
	}
	if impact.Improvement != 2.5 {
		t.Errorf("expected improvement 2.5, got %v", impact.Improvement)
	}
}

func TestImpactNilWhenOneSided(t *testing.T) {
	routines := []models.RoutineSession{routine("r1", day(0), true, 600)}
	moods := []models.MoodEntry{mood(day(0), 4)}

	if got := Impact(moods, routines); got != nil {
		t.Errorf("expected nil impact when no baseline moods exist, got %+v", got)
	}
	if got := Impact(nil, routines); got != nil {
		t.Errorf("expected nil impact without moods, got %+v", got)
	}
	if got := Impact(moods, nil); got != nil {
		t.Errorf("expected nil impact without routines, got %+v", got)
	}
}

func TestImpactIgnoresIncompleteRoutines(t *testing.T) {
	routines := []models.RoutineSession{routine("r1", day(-1), false, 0)}
	moods := []models.MoodEntry{mood(day(0), 4), mood(day(-5), 2)}

	if got := Impact(moods, routines); got != nil {
		t.Errorf("incomplete routines must not create an after-partition, got %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	state := models.AppState{
		MoodEntries: []models.MoodEntry{mood(day(0), 4), mood(day(-9), 3)},
		ExerciseSessions: []models.ExerciseSession{
			exercise("a", models.ExerciseBreathing, true, now, 300),
			exercise("b", models.ExerciseBreathing, false, now, 0),
		},
		RoutineSessions: []models.RoutineSession{routine("r1", day(-2), true, 600)},
	}

	got := Summarize(state, now)
	if got.TotalMoodEntries != 2 || got.TotalExerciseSessions != 1 || got.TotalRoutineSessions != 1 {
		t.Errorf("totals wrong: %+v", got)
	}
	if got.TotalActivities != 4 {
		t.Errorf("expected 4 total activities, got %d", got.TotalActivities)
	}
	if got.TotalExerciseMinutes != 5 {
		t.Errorf("expected 5 exercise minutes, got %d", got.TotalExerciseMinutes)
	}
	if got.DaysSinceStart != 10 {
		t.Errorf("expected 10 days since start, got %d", got.DaysSinceStart)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(models.AppState{}, now); got != (Overview{}) {
		t.Errorf("empty state must yield zero overview, got %+v", got)
	}
}

func TestCacheMemoizes(t *testing.T) {
	var cache Cache[int]
	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	if got := cache.Get("k1", compute); got != 1 {
		t.Fatalf("expected first compute, got %d", got)
	}
	if got := cache.Get("k1", compute); got != 1 {
		t.Errorf("expected cached value for same key, got %d", got)
	}
	if got := cache.Get("k2", compute); got != 2 {
		t.Errorf("expected recompute for new key, got %d", got)
	}
}

func TestMoodKey(t *testing.T) {
	if got := MoodKey(nil); got != "0-empty" {
		t.Errorf("expected 0-empty for nil, got %s", got)
	}
	entries := []models.MoodEntry{mood(day(0), 3)}
	if got := MoodKey(entries); got != "1-mood-"+day(0) {
		t.Errorf("unexpected key: %s", got)
	}
}
