// Package cli holds the kong command implementations. Commands talk to the
// state store for reads and to the trackers/service for writes, mirroring how
// the interactive UI drives the same layers.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/session"
	"github.com/pitchmind/pitchmind/internal/storage"
	"github.com/pitchmind/pitchmind/internal/store"
)

type Context struct {
	KV        storage.KV
	Service   *storage.Service
	Store     *store.Store
	Exercises *session.ExerciseTracker
	Routines  *session.RoutineTracker
}

// LoadState runs the initial load protocol and surfaces its error flag, so
// commands can bail out instead of rendering empty data as truth.
func (c *Context) LoadState(ctx context.Context) error {
	c.Store.Load(ctx)
	if state := c.Store.State(); state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	return nil
}

// FormatSeconds renders a second count as "4m 30s" / "45s".
func FormatSeconds(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds%60 == 0 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// ParseGameType validates a game-type flag value. Empty means unset.
func ParseGameType(s string) (models.GameType, error) {
	switch models.GameType(strings.ToLower(s)) {
	case "":
		return "", nil
	case models.GameTypePractice:
		return models.GameTypePractice, nil
	case models.GameTypeGame:
		return models.GameTypeGame, nil
	case models.GameTypeTraining:
		return models.GameTypeTraining, nil
	default:
		return "", fmt.Errorf("invalid game type %q (expected practice, game, or training)", s)
	}
}

// ParseExerciseType validates an exercise-type argument.
func ParseExerciseType(s string) (models.ExerciseType, error) {
	switch models.ExerciseType(strings.ToLower(s)) {
	case models.ExerciseBreathing:
		return models.ExerciseBreathing, nil
	case models.ExerciseVisualization:
		return models.ExerciseVisualization, nil
	case models.ExerciseHeartRate:
		return models.ExerciseHeartRate, nil
	default:
		return "", fmt.Errorf("invalid exercise type %q (expected breathing, visualization, or heartrate)", s)
	}
}
