package store

import "github.com/pitchmind/pitchmind/internal/models"

// Action is the closed set of state mutations. The UI layer constructs one
// of the variants below and hands it to Store.Dispatch; nothing else touches
// AppState.
type Action interface {
	isAction()
}

type SetLoading struct{ Loading bool }

type SetError struct{ Message string }

type SetMoodEntries struct{ Entries []models.MoodEntry }

type AddMoodEntry struct{ Entry models.MoodEntry }

type DeleteMoodEntry struct{ EntryID string }

type SetExerciseSessions struct{ Sessions []models.ExerciseSession }

type AddExerciseSession struct{ Session models.ExerciseSession }

type UpdateExerciseSession struct {
	SessionID string
	Patch     models.ExerciseSessionPatch
}

type SetRoutineSessions struct{ Sessions []models.RoutineSession }

type AddRoutineSession struct{ Session models.RoutineSession }

type UpdateRoutineSession struct {
	SessionID string
	Patch     models.RoutineSessionPatch
}

type SetUserPreferences struct{ Preferences models.UserPreferences }

type UpdateUserPreferences struct{ Patch models.PreferencesPatch }

type ClearAllData struct{}

func (SetLoading) isAction()            {}
func (SetError) isAction()              {}
func (SetMoodEntries) isAction()        {}
func (AddMoodEntry) isAction()          {}
func (DeleteMoodEntry) isAction()       {}
func (SetExerciseSessions) isAction()   {}
func (AddExerciseSession) isAction()    {}
func (UpdateExerciseSession) isAction() {}
func (SetRoutineSessions) isAction()    {}
func (AddRoutineSession) isAction()     {}
func (UpdateRoutineSession) isAction()  {}
func (SetUserPreferences) isAction()    {}
func (UpdateUserPreferences) isAction() {}
func (ClearAllData) isAction()          {}
