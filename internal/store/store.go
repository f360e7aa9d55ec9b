// Package store holds the in-memory application state. The store is the
// single writer: every mutation is a dispatched action, applied under lock,
// in arrival order.
//
// Invariant carried through the whole app: a storage write completes BEFORE
// the matching action is dispatched. State may therefore lag storage during
// an in-flight write, but it never claims a write that did not happen.
package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pitchmind/pitchmind/internal/logger"
	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/storage"
)

// LoadErrorMessage is the generic user-facing message when the initial load
// fails. The error flag never blocks the UI; loading is always cleared.
const LoadErrorMessage = "Failed to load app data"

type Store struct {
	mu      sync.Mutex
	state   models.AppState
	service *storage.Service
}

// New creates a store in the initial (loading) state.
func New(service *storage.Service) *Store {
	return &Store{
		state:   models.InitialState(),
		service: service,
	}
}

// State returns a snapshot copy of the current application state.
func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies one action. Concurrent dispatches are serialized in the
// order they acquire the lock.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, action)
}

// Load runs the initial load protocol: mark loading, clear any stale error,
// fetch all four collections concurrently, apply them, clear loading. On
// failure the error flag is set but loading is still cleared so the UI is
// never stuck.
func (s *Store) Load(ctx context.Context) {
	s.Dispatch(SetLoading{Loading: true})
	s.Dispatch(SetError{})

	var (
		moods     []models.MoodEntry
		exercises []models.ExerciseSession
		routines  []models.RoutineSession
		prefs     models.UserPreferences
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		moods = s.service.MoodEntries()
		return ctx.Err()
	})
	g.Go(func() error {
		exercises = s.service.ExerciseSessions()
		return ctx.Err()
	})
	g.Go(func() error {
		routines = s.service.RoutineSessions()
		return ctx.Err()
	})
	g.Go(func() error {
		prefs = s.service.UserPreferences()
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		logger.Error("initial data load failed", "error", err)
		s.Dispatch(SetError{Message: LoadErrorMessage})
		s.Dispatch(SetLoading{Loading: false})
		return
	}

	s.Dispatch(SetMoodEntries{Entries: moods})
	s.Dispatch(SetExerciseSessions{Sessions: exercises})
	s.Dispatch(SetRoutineSessions{Sessions: routines})
	s.Dispatch(SetUserPreferences{Preferences: prefs})
	s.Dispatch(SetLoading{Loading: false})
}

// reduce is the pure transition function.
func reduce(state models.AppState, action Action) models.AppState {
	switch a := action.(type) {
	case SetLoading:
		state.IsLoading = a.Loading

	case SetError:
		state.Error = a.Message

	case SetMoodEntries:
		state.MoodEntries = a.Entries

	case AddMoodEntry:
		// Same dedup-by-date rule as the storage service; the two must agree
		// because the store never reads back after a write.
		state.MoodEntries = models.UpsertMoodEntry(state.MoodEntries, a.Entry)

	case DeleteMoodEntry:
		filtered := make([]models.MoodEntry, 0, len(state.MoodEntries))
		for _, e := range state.MoodEntries {
			if e.ID != a.EntryID {
				filtered = append(filtered, e)
			}
		}
		state.MoodEntries = filtered

	case SetExerciseSessions:
		state.ExerciseSessions = a.Sessions

	case AddExerciseSession:
		sessions := append([]models.ExerciseSession{a.Session}, state.ExerciseSessions...)
		models.SortExerciseSessions(sessions)
		state.ExerciseSessions = sessions

	case UpdateExerciseSession:
		sessions := append([]models.ExerciseSession(nil), state.ExerciseSessions...)
		resort := false
		for i, session := range sessions {
			if session.ID == a.SessionID {
				sessions[i] = a.Patch.Apply(session)
				resort = resort || !sessions[i].StartTime.Equal(session.StartTime)
			}
		}
		if resort {
			models.SortExerciseSessions(sessions)
		}
		state.ExerciseSessions = sessions

	case SetRoutineSessions:
		state.RoutineSessions = a.Sessions

	case AddRoutineSession:
		sessions := append([]models.RoutineSession{a.Session}, state.RoutineSessions...)
		models.SortRoutineSessions(sessions)
		state.RoutineSessions = sessions

	case UpdateRoutineSession:
		sessions := append([]models.RoutineSession(nil), state.RoutineSessions...)
		for i, session := range sessions {
			if session.ID == a.SessionID {
				sessions[i] = a.Patch.Apply(session)
			}
		}
		state.RoutineSessions = sessions

	case SetUserPreferences:
		state.UserPreferences = a.Preferences

	case UpdateUserPreferences:
		state.UserPreferences = a.Patch.Apply(state.UserPreferences)

	case ClearAllData:
		state = models.InitialState()
		state.IsLoading = false
	}

	return state
}
