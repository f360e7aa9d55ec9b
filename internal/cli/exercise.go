package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/stats"
)

type ExerciseCmd struct {
	Log   ExerciseLogCmd   `cmd:"" help:"Record a completed exercise."`
	List  ExerciseListCmd  `cmd:"" help:"List exercise sessions."`
	Stats ExerciseStatsCmd `cmd:"" help:"Show exercise statistics."`
}

type ExerciseLogCmd struct {
	Type     string `arg:"" help:"Exercise type: breathing, visualization, or heartrate."`
	Duration int    `help:"Duration in seconds." required:""`
	Notes    string `help:"Optional note about the session." default:""`
}

func (c *ExerciseLogCmd) Run(ctx *Context) error {
	exType, err := ParseExerciseType(c.Type)
	if err != nil {
		return err
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}

	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	session, err := ctx.Exercises.Record(exType, c.Duration, c.Notes)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %s (%s)\n", models.ExerciseName(session.ExerciseType), FormatSeconds(session.Duration))
	return nil
}

type ExerciseListCmd struct {
	Limit int `help:"Maximum number of sessions to show." default:"14"`
}

func (c *ExerciseListCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	sessions := ctx.Store.State().ExerciseSessions
	if len(sessions) == 0 {
		fmt.Println("No exercise sessions yet. Record one with 'pitchmind exercise log TYPE --duration N'.")
		return nil
	}

	shown := sessions
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}

	for _, s := range shown {
		status := "completed"
		if !s.Completed {
			status = "incomplete"
		}
		fmt.Printf("%s  %-26s %-8s %s\n",
			s.StartTime.Format("2006-01-02 15:04"),
			models.ExerciseName(s.ExerciseType),
			FormatSeconds(s.Duration),
			status)
	}
	return nil
}

type ExerciseStatsCmd struct{}

func (c *ExerciseStatsCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	state := ctx.Store.State()
	exStats := stats.Exercise(state.ExerciseSessions, time.Now())
	if exStats.TotalSessions == 0 {
		fmt.Println("No exercise sessions yet.")
		return nil
	}

	fmt.Printf("Sessions:        %d\n", exStats.TotalSessions)
	fmt.Printf("Completion rate: %d%%\n", exStats.CompletionRate)
	fmt.Printf("Total time:      %s\n", FormatSeconds(exStats.TotalDuration))
	fmt.Printf("Average length:  %s\n", FormatSeconds(exStats.AverageDuration))
	if exStats.FavoriteExercise != "" {
		fmt.Printf("Favorite:        %s\n", models.ExerciseName(exStats.FavoriteExercise))
	}
	if streak := stats.ExerciseStreak(state.ExerciseSessions, time.Now()); streak > 0 {
		fmt.Printf("Streak:          %d day(s)\n", streak)
	}
	return nil
}
