package models

import (
	"fmt"
	"sort"
	"time"
)

type GameType string

const (
	GameTypePractice GameType = "practice"
	GameTypeGame     GameType = "game"
	GameTypeTraining GameType = "training"
)

// MoodLabel returns the display label for a 1-5 rating.
func MoodLabel(rating int) string {
	switch rating {
	case 1:
		return "Very Anxious"
	case 2:
		return "Anxious"
	case 3:
		return "Okay"
	case 4:
		return "Confident"
	case 5:
		return "Peak Flow"
	default:
		return fmt.Sprintf("Rating %d", rating)
	}
}

// MoodEntry is one anxiety/confidence self-rating for a calendar day.
// Rating runs 1 (very anxious) to 5 (peak flow).
type MoodEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Rating    int       `json:"rating"`
	Notes     string    `json:"notes,omitempty"`
	GameType  GameType  `json:"game_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the entry is structurally sound.
func (e MoodEntry) Valid() bool {
	if e.ID == "" || e.Date == "" {
		return false
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return false
	}
	if e.Rating < 1 || e.Rating > 5 {
		return false
	}
	switch e.GameType {
	case "", GameTypePractice, GameTypeGame, GameTypeTraining:
	default:
		return false
	}
	return !e.CreatedAt.IsZero()
}

// UpsertMoodEntry replaces any existing entry for the same date with the new
// entry and returns the list sorted newest first. Both the storage service and
// the state store reducer apply this exact rule so the two never diverge.
func UpsertMoodEntry(entries []MoodEntry, entry MoodEntry) []MoodEntry {
	merged := make([]MoodEntry, 0, len(entries)+1)
	merged = append(merged, entry)
	for _, e := range entries {
		if e.Date != entry.Date {
			merged = append(merged, e)
		}
	}
	SortMoodEntries(merged)
	return merged
}

// SortMoodEntries sorts entries descending by date.
func SortMoodEntries(entries []MoodEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

// MoodEntryPatch carries a partial update for a mood entry. Nil fields are
// left untouched.
type MoodEntryPatch struct {
	Rating   *int      `json:"rating,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
	GameType *GameType `json:"game_type,omitempty"`
}

// Apply merges the patch onto the entry.
func (p MoodEntryPatch) Apply(e MoodEntry) MoodEntry {
	if p.Rating != nil {
		e.Rating = *p.Rating
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.GameType != nil {
		e.GameType = *p.GameType
	}
	return e
}
