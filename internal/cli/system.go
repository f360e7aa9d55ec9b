package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/stats"
	"github.com/pitchmind/pitchmind/internal/store"
)

type InitCmd struct {
	Force bool `help:"Delete any existing storage before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		path := ctx.KV.Path()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.KV.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.KV.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized pitchmind storage at: %s\n", ctx.KV.Path())
	return nil
}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Printf("Storage: %s\n", ctx.KV.Path())

	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	state := ctx.Store.State()
	fmt.Printf("Mood entries:      %d\n", len(state.MoodEntries))
	fmt.Printf("Exercise sessions: %d\n", len(state.ExerciseSessions))
	fmt.Printf("Routine sessions:  %d\n", len(state.RoutineSessions))

	if ctx.Service.ValidateDataIntegrity() {
		fmt.Println("Integrity check:   OK")
		return nil
	}
	fmt.Println("Integrity check:   FAILED (see log for details)")
	return fmt.Errorf("data integrity check failed")
}

type ClearCmd struct {
	Force bool `help:"Confirm deleting all data."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if !ctx.Service.HasLocalData() {
		fmt.Println("Nothing to clear.")
		return nil
	}
	if !c.Force {
		return fmt.Errorf("this deletes all mood, exercise, and routine data; re-run with --force to confirm")
	}

	if err := ctx.Service.ClearAllData(); err != nil {
		return err
	}
	ctx.Store.Dispatch(store.ClearAllData{})

	fmt.Println("All data cleared.")
	return nil
}

type ExportCmd struct {
	Out string `help:"Write the export to a file instead of stdout." default:""`
}

func (c *ExportCmd) Run(ctx *Context) error {
	data, err := ctx.Service.ExportData(time.Now())
	if err != nil {
		return err
	}

	if c.Out == "" {
		fmt.Println(data)
		return nil
	}

	if err := os.WriteFile(c.Out, []byte(data), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported data to: %s\n", c.Out)
	return nil
}

type InsightsCmd struct{}

func (c *InsightsCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	state := ctx.Store.State()
	now := time.Now()
	overview := stats.Summarize(state, now)
	if overview.TotalActivities == 0 {
		fmt.Println("No activity yet. Log a mood or run an exercise to get started.")
		return nil
	}

	fmt.Println("Your Progress")
	fmt.Printf("  Activities:      %d over %d day(s)\n", overview.TotalActivities, overview.DaysSinceStart)
	fmt.Printf("  Exercise time:   %d minute(s)\n", overview.TotalExerciseMinutes)

	moodStats := stats.Mood(state.MoodEntries, now)
	if moodStats.Total > 0 {
		fmt.Printf("\nMood: %.1f/5 average, %d day streak, trend %s\n",
			moodStats.Average, moodStats.Streak, moodStats.Trend)
	}

	exStats := stats.Exercise(state.ExerciseSessions, now)
	if exStats.TotalSessions > 0 {
		fmt.Printf("Exercises: %d sessions, %d%% completed", exStats.TotalSessions, exStats.CompletionRate)
		if exStats.FavoriteExercise != "" {
			fmt.Printf(", favorite %s", models.ExerciseName(exStats.FavoriteExercise))
		}
		fmt.Println()
	}

	routineStats := stats.Routine(state.RoutineSessions, now)
	if routineStats.TotalSessions > 0 {
		fmt.Printf("Routines: %d completed, current streak %d\n",
			routineStats.CompletedSessions, routineStats.CurrentStreak)
	}

	if impact := stats.Impact(state.MoodEntries, state.RoutineSessions); impact != nil {
		fmt.Printf("\nRoutine impact: mood %.1f with a routine vs %.1f without (%+.1f)\n",
			impact.WithRoutine, impact.WithoutRoutine, impact.Improvement)
	}
	return nil
}
