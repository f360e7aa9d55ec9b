package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pitchmind/pitchmind/internal/batch"
	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/logger"
	"github.com/pitchmind/pitchmind/internal/models"
)

// Service is the typed collection layer over the key-value store. Reads fail
// soft: a missing or corrupted blob yields an empty collection (or default
// preferences) so bad local state never blocks startup. Writes return an
// error the caller treats as "not persisted".
type Service struct {
	kv    KV
	queue *batch.Queue
}

// NewService creates a storage service over the given provider.
func NewService(kv KV) *Service {
	return &Service{kv: kv}
}

// NewBatchedService creates a storage service whose mood writes coalesce
// through the given queue. Queued operations are read-modify-writes against a
// single collection, so replaying a failed batch is safe.
func NewBatchedService(kv KV, queue *batch.Queue) *Service {
	return &Service{kv: kv, queue: queue}
}

func getCollection[T any](s *Service, key string) []T {
	items, err := readCollection[T](s, key)
	if err != nil {
		logger.Warn("storage read failed, using empty collection", "key", key, "error", err)
		return []T{}
	}
	return items
}

// readCollection is the strict read path. Callers that must not mistake a
// broken store for an empty one (export) get the error instead of a default.
func readCollection[T any](s *Service, key string) ([]T, error) {
	data, ok, err := s.kv.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func setCollection[T any](s *Service, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// Mood entries

func (s *Service) MoodEntries() []models.MoodEntry {
	return getCollection[models.MoodEntry](s, constants.KeyMoodEntries)
}

func (s *Service) SaveMoodEntries(entries []models.MoodEntry) error {
	return setCollection(s, constants.KeyMoodEntries, entries)
}

// AddMoodEntry reads the full list, replaces any entry for the same date,
// and writes the list back sorted newest first. When the service is batched,
// the read-modify-write is coalesced with neighboring adds; the call still
// blocks until its write lands.
func (s *Service) AddMoodEntry(entry models.MoodEntry) error {
	if s.queue == nil {
		return s.addMoodEntryNow(entry)
	}

	result := make(chan error, 1)
	s.queue.Add(func() error {
		err := s.addMoodEntryNow(entry)
		// Non-blocking: a failed batch gets replayed, and the caller only
		// waits for the first outcome.
		select {
		case result <- err:
		default:
		}
		return err
	})
	return <-result
}

func (s *Service) addMoodEntryNow(entry models.MoodEntry) error {
	entries := s.MoodEntries()
	return s.SaveMoodEntries(models.UpsertMoodEntry(entries, entry))
}

func (s *Service) DeleteMoodEntry(entryID string) error {
	entries := s.MoodEntries()
	filtered := make([]models.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != entryID {
			filtered = append(filtered, e)
		}
	}
	return s.SaveMoodEntries(filtered)
}

// Exercise sessions

func (s *Service) ExerciseSessions() []models.ExerciseSession {
	return getCollection[models.ExerciseSession](s, constants.KeyExerciseSessions)
}

func (s *Service) SaveExerciseSessions(sessions []models.ExerciseSession) error {
	return setCollection(s, constants.KeyExerciseSessions, sessions)
}

func (s *Service) AddExerciseSession(session models.ExerciseSession) error {
	sessions := append([]models.ExerciseSession{session}, s.ExerciseSessions()...)
	models.SortExerciseSessions(sessions)
	return s.SaveExerciseSessions(sessions)
}

func (s *Service) UpdateExerciseSession(sessionID string, patch models.ExerciseSessionPatch) error {
	sessions := s.ExerciseSessions()
	for i, session := range sessions {
		if session.ID == sessionID {
			sessions[i] = patch.Apply(session)
		}
	}
	return s.SaveExerciseSessions(sessions)
}

// Routine sessions

func (s *Service) RoutineSessions() []models.RoutineSession {
	return getCollection[models.RoutineSession](s, constants.KeyRoutineSessions)
}

func (s *Service) SaveRoutineSessions(sessions []models.RoutineSession) error {
	return setCollection(s, constants.KeyRoutineSessions, sessions)
}

func (s *Service) AddRoutineSession(session models.RoutineSession) error {
	sessions := append([]models.RoutineSession{session}, s.RoutineSessions()...)
	models.SortRoutineSessions(sessions)
	return s.SaveRoutineSessions(sessions)
}

func (s *Service) UpdateRoutineSession(sessionID string, patch models.RoutineSessionPatch) error {
	sessions := s.RoutineSessions()
	for i, session := range sessions {
		if session.ID == sessionID {
			sessions[i] = patch.Apply(session)
		}
	}
	return s.SaveRoutineSessions(sessions)
}

// User preferences

func (s *Service) UserPreferences() models.UserPreferences {
	prefs, err := s.readPreferences()
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "error", err)
		return models.DefaultPreferences()
	}
	return prefs
}

func (s *Service) readPreferences() (models.UserPreferences, error) {
	data, ok, err := s.kv.Get(constants.KeyUserPreferences)
	if err != nil {
		return models.UserPreferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}
	if !ok {
		return models.DefaultPreferences(), nil
	}

	var prefs models.UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return models.UserPreferences{}, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return prefs, nil
}

func (s *Service) SaveUserPreferences(prefs models.UserPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to serialize preferences: %w", err)
	}
	if err := s.kv.Set(constants.KeyUserPreferences, data); err != nil {
		return fmt.Errorf("failed to persist preferences: %w", err)
	}
	return nil
}

func (s *Service) UpdateUserPreferences(patch models.PreferencesPatch) error {
	return s.SaveUserPreferences(patch.Apply(s.UserPreferences()))
}

// Utility operations

// ClearAllData removes every collection. It succeeds only if all four
// removals succeed.
func (s *Service) ClearAllData() error {
	keys := []string{
		constants.KeyMoodEntries,
		constants.KeyExerciseSessions,
		constants.KeyRoutineSessions,
		constants.KeyUserPreferences,
	}
	for _, key := range keys {
		if err := s.kv.Remove(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

// HasLocalData reports whether any user data has been recorded yet.
func (s *Service) HasLocalData() bool {
	return len(s.MoodEntries()) > 0 ||
		len(s.ExerciseSessions()) > 0 ||
		len(s.RoutineSessions()) > 0
}

// ExportDocument is the external backup format. There is deliberately no
// import path; export is a one-way snapshot for the user's records.
type ExportDocument struct {
	MoodEntries      []models.MoodEntry       `json:"moodEntries"`
	ExerciseSessions []models.ExerciseSession `json:"exerciseSessions"`
	RoutineSessions  []models.RoutineSession  `json:"routineSessions"`
	UserPreferences  models.UserPreferences   `json:"userPreferences"`
	ExportDate       time.Time                `json:"exportDate"`
}

// ExportData serializes a snapshot of all four collections as pretty-printed
// JSON. Unlike list reads, a read failure here aborts the export: a backup of
// silently-emptied data would be worse than no backup at all.
func (s *Service) ExportData(now time.Time) (string, error) {
	moods, err := readCollection[models.MoodEntry](s, constants.KeyMoodEntries)
	if err != nil {
		return "", fmt.Errorf("export aborted: %w", err)
	}
	exercises, err := readCollection[models.ExerciseSession](s, constants.KeyExerciseSessions)
	if err != nil {
		return "", fmt.Errorf("export aborted: %w", err)
	}
	routines, err := readCollection[models.RoutineSession](s, constants.KeyRoutineSessions)
	if err != nil {
		return "", fmt.Errorf("export aborted: %w", err)
	}
	prefs, err := s.readPreferences()
	if err != nil {
		return "", fmt.Errorf("export aborted: %w", err)
	}

	doc := ExportDocument{
		MoodEntries:      moods,
		ExerciseSessions: exercises,
		RoutineSessions:  routines,
		UserPreferences:  prefs,
		ExportDate:       now,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize export: %w", err)
	}
	return string(data), nil
}

// ValidateDataIntegrity runs the structural predicate over every item in
// every entity collection. The result is an aggregate pass/fail.
func (s *Service) ValidateDataIntegrity() bool {
	for _, entry := range s.MoodEntries() {
		if !entry.Valid() {
			logger.Warn("invalid mood entry", "id", entry.ID)
			return false
		}
	}
	for _, session := range s.ExerciseSessions() {
		if !session.Valid() {
			logger.Warn("invalid exercise session", "id", session.ID)
			return false
		}
	}
	for _, session := range s.RoutineSessions() {
		if !session.Valid() {
			logger.Warn("invalid routine session", "id", session.ID)
			return false
		}
	}
	return true
}
