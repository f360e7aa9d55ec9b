package models

// AppState is the in-memory aggregate held by the state store. The UI layer
// never mutates it directly; all changes flow through dispatched actions.
type AppState struct {
	MoodEntries      []MoodEntry
	ExerciseSessions []ExerciseSession
	RoutineSessions  []RoutineSession
	UserPreferences  UserPreferences
	IsLoading        bool
	Error            string
}

// InitialState returns the pre-load application state.
func InitialState() AppState {
	return AppState{
		MoodEntries:      []MoodEntry{},
		ExerciseSessions: []ExerciseSession{},
		RoutineSessions:  []RoutineSession{},
		UserPreferences:  DefaultPreferences(),
		IsLoading:        true,
	}
}

// Clone returns a copy with fresh slices so callers can hold a snapshot
// without racing later dispatches.
func (s AppState) Clone() AppState {
	out := s
	out.MoodEntries = append([]MoodEntry(nil), s.MoodEntries...)
	out.ExerciseSessions = append([]ExerciseSession(nil), s.ExerciseSessions...)
	out.RoutineSessions = append([]RoutineSession(nil), s.RoutineSessions...)
	return out
}
