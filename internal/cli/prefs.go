package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/store"
)

type PrefsCmd struct {
	Show      PrefsShowCmd      `cmd:"" help:"Show current preferences." default:"1"`
	Set       PrefsSetCmd       `cmd:"" help:"Update preferences."`
	Reset     PrefsResetCmd     `cmd:"" help:"Reset preferences to defaults."`
	Onboarded PrefsOnboardedCmd `cmd:"" help:"Mark onboarding as completed."`
}

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	prefs := ctx.Store.State().UserPreferences
	fmt.Printf("Notifications:     %v\n", prefs.NotificationsEnabled)
	if prefs.ReminderTime != "" {
		fmt.Printf("Reminder time:     %s\n", prefs.ReminderTime)
	} else {
		fmt.Println("Reminder time:     (not set)")
	}
	fmt.Printf("Exercise duration: %d minutes\n", prefs.PreferredExerciseDuration)
	fmt.Printf("Onboarded:         %v\n", prefs.OnboardingCompleted)
	return nil
}

type PrefsSetCmd struct {
	Notifications *bool   `help:"Enable or disable reminders."`
	Reminder      *string `help:"Daily reminder time in HH:MM format."`
	Duration      *int    `help:"Preferred exercise duration in minutes (1-30)."`
}

func (c *PrefsSetCmd) Run(ctx *Context) error {
	if c.Notifications == nil && c.Reminder == nil && c.Duration == nil {
		return fmt.Errorf("nothing to set, see 'pitchmind prefs set --help'")
	}

	if c.Reminder != nil && *c.Reminder != "" {
		if _, err := time.Parse(constants.ClockFormat, *c.Reminder); err != nil {
			return fmt.Errorf("invalid reminder time %q (expected HH:MM)", *c.Reminder)
		}
	}
	if c.Duration != nil {
		if *c.Duration < constants.MinPreferredExerciseDurationMin || *c.Duration > constants.MaxPreferredExerciseDurationMin {
			return fmt.Errorf("duration must be between %d and %d minutes",
				constants.MinPreferredExerciseDurationMin, constants.MaxPreferredExerciseDurationMin)
		}
	}

	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	patch := models.PreferencesPatch{
		NotificationsEnabled:      c.Notifications,
		ReminderTime:              c.Reminder,
		PreferredExerciseDuration: c.Duration,
	}
	if err := ctx.Service.UpdateUserPreferences(patch); err != nil {
		return err
	}
	ctx.Store.Dispatch(store.UpdateUserPreferences{Patch: patch})

	fmt.Println("Preferences updated.")
	return nil
}

type PrefsResetCmd struct{}

func (c *PrefsResetCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	// A reset keeps the onboarding flag; the user has still seen the intro.
	prefs := models.DefaultPreferences()
	prefs.OnboardingCompleted = ctx.Store.State().UserPreferences.OnboardingCompleted

	if err := ctx.Service.SaveUserPreferences(prefs); err != nil {
		return err
	}
	ctx.Store.Dispatch(store.SetUserPreferences{Preferences: prefs})

	fmt.Println("Preferences reset to defaults.")
	return nil
}

type PrefsOnboardedCmd struct{}

func (c *PrefsOnboardedCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	done := true
	patch := models.PreferencesPatch{OnboardingCompleted: &done}
	if err := ctx.Service.UpdateUserPreferences(patch); err != nil {
		return err
	}
	ctx.Store.Dispatch(store.UpdateUserPreferences{Patch: patch})

	fmt.Println("Onboarding marked complete.")
	return nil
}
