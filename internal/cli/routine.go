package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchmind/pitchmind/internal/stats"
)

type RoutineCmd struct {
	Start  RoutineStartCmd  `cmd:"" help:"Start (or resume) today's pre-game routine."`
	Step   RoutineStepCmd   `cmd:"" help:"Mark a routine step as done."`
	Status RoutineStatusCmd `cmd:"" help:"Show today's routine progress."`
	Stats  RoutineStatsCmd  `cmd:"" help:"Show routine statistics."`
}

type RoutineStartCmd struct{}

func (c *RoutineStartCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	session, err := ctx.Routines.Start()
	if err != nil {
		return err
	}

	if session.Completed {
		fmt.Println("Today's routine is already complete. Nice work!")
		return nil
	}

	fmt.Printf("Pre-game routine for %s (%0.f%% done)\n\n", session.Date, session.Progress())
	for _, step := range session.Steps {
		mark := "[ ]"
		if session.StepCompleted(step.ID) {
			mark = "[x]"
		}
		fmt.Printf("  %s %-14s %s (%s)\n", mark, step.ID, step.Title, step.Duration)
	}
	if next := session.NextStep(); next != nil {
		fmt.Printf("\nNext: pitchmind routine step %s\n", next.ID)
	}
	return nil
}

type RoutineStepCmd struct {
	StepID string `arg:"" help:"ID of the step to complete (e.g. mental-prep)."`
	Undo   bool   `help:"Un-complete the step instead."`
}

func (c *RoutineStepCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	if c.Undo {
		session, err := ctx.Routines.UncompleteStep(c.StepID)
		if err != nil {
			return err
		}
		fmt.Printf("Unmarked %s (%0.f%% done)\n", c.StepID, session.Progress())
		return nil
	}

	session, err := ctx.Routines.CompleteStep(c.StepID)
	if err != nil {
		return err
	}

	if session.Completed {
		fmt.Printf("Routine complete in %s. Go play your game!\n", FormatSeconds(session.TotalDuration))
		return nil
	}

	fmt.Printf("Completed %s (%0.f%% done)\n", c.StepID, session.Progress())
	if next := session.NextStep(); next != nil {
		fmt.Printf("Next: %s (%s)\n", next.Title, next.Duration)
	}
	return nil
}

type RoutineStatusCmd struct{}

func (c *RoutineStatusCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	session, ok := ctx.Routines.Today()
	if !ok {
		fmt.Println("No routine started today. Start one with 'pitchmind routine start'.")
		return nil
	}

	fmt.Printf("Routine for %s: %0.f%% done\n", session.Date, session.Progress())
	for _, step := range session.Steps {
		mark := "[ ]"
		if session.StepCompleted(step.ID) {
			mark = "[x]"
		}
		fmt.Printf("  %s %s\n", mark, step.Title)
	}
	return nil
}

type RoutineStatsCmd struct{}

func (c *RoutineStatsCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	routineStats := stats.Routine(ctx.Store.State().RoutineSessions, time.Now())
	if routineStats.TotalSessions == 0 {
		fmt.Println("No routine sessions yet.")
		return nil
	}

	fmt.Printf("Sessions:        %d (%d completed)\n", routineStats.TotalSessions, routineStats.CompletedSessions)
	fmt.Printf("Completion rate: %d%%\n", routineStats.CompletionRate)
	if routineStats.AverageDuration > 0 {
		fmt.Printf("Average length:  %s\n", FormatSeconds(routineStats.AverageDuration))
	}
	fmt.Printf("Current streak:  %d\n", routineStats.CurrentStreak)
	fmt.Printf("Longest streak:  %d\n", routineStats.LongestStreak)
	return nil
}
