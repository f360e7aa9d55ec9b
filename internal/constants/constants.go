package constants

import "time"

// Storage keys. One JSON-encoded blob per logical collection.
const (
	KeyMoodEntries      = "mood_entries"
	KeyExerciseSessions = "exercise_sessions"
	KeyRoutineSessions  = "routine_sessions"
	KeyUserPreferences  = "user_preferences"
)

// Date and time formats used throughout the app.
const (
	// DayFormat is the calendar-day format for mood entries and routine sessions.
	DayFormat = "2006-01-02"
	// ClockFormat is the HH:MM format for reminder times.
	ClockFormat = "15:04"
)

// Batch queue tuning.
const (
	// BatchSize is the queue length that triggers an immediate flush.
	BatchSize = 5
	// BatchFlushDelay is the inactivity window after which a partial batch flushes.
	BatchFlushDelay = 1 * time.Second
)

// Preference defaults and bounds.
const (
	DefaultNotificationsEnabled     = true
	DefaultExerciseDurationMin      = 5
	MinPreferredExerciseDurationMin = 1
	MaxPreferredExerciseDurationMin = 30
)

// Stats thresholds.
const (
	// TrendMinEntries is the minimum number of mood entries before a trend is computed.
	TrendMinEntries = 6
	// TrendWindow is the number of entries in each of the recent/older comparison windows.
	TrendWindow = 3
	// TrendThreshold is the strict margin a window mean must exceed to count as a trend.
	TrendThreshold = 0.3
)
