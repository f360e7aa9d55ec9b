package models

import (
	"time"

	"github.com/pitchmind/pitchmind/internal/constants"
)

// UserPreferences is the singleton preferences record. It is created with
// defaults on first use, patched shallowly, and reset rather than deleted.
// ReminderTime is an "HH:MM" clock string; the preferred exercise duration
// is in minutes.
type UserPreferences struct {
	NotificationsEnabled      bool   `json:"notifications_enabled"`
	ReminderTime              string `json:"reminder_time,omitempty"`
	PreferredExerciseDuration int    `json:"preferred_exercise_duration"`
	OnboardingCompleted       bool   `json:"onboarding_completed"`
}

// DefaultPreferences returns the first-launch preference values.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		NotificationsEnabled:      constants.DefaultNotificationsEnabled,
		PreferredExerciseDuration: constants.DefaultExerciseDurationMin,
		OnboardingCompleted:       false,
	}
}

// Valid reports whether the preferences are structurally sound.
func (p UserPreferences) Valid() bool {
	if p.ReminderTime != "" {
		if _, err := time.Parse(constants.ClockFormat, p.ReminderTime); err != nil {
			return false
		}
	}
	return p.PreferredExerciseDuration >= constants.MinPreferredExerciseDurationMin &&
		p.PreferredExerciseDuration <= constants.MaxPreferredExerciseDurationMin
}

// PreferencesPatch carries a partial preferences update. Nil fields are left
// untouched (shallow merge).
type PreferencesPatch struct {
	NotificationsEnabled      *bool   `json:"notifications_enabled,omitempty"`
	ReminderTime              *string `json:"reminder_time,omitempty"`
	PreferredExerciseDuration *int    `json:"preferred_exercise_duration,omitempty"`
	OnboardingCompleted       *bool   `json:"onboarding_completed,omitempty"`
}

// Apply merges the patch onto the preferences.
func (patch PreferencesPatch) Apply(p UserPreferences) UserPreferences {
	if patch.NotificationsEnabled != nil {
		p.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.ReminderTime != nil {
		p.ReminderTime = *patch.ReminderTime
	}
	if patch.PreferredExerciseDuration != nil {
		p.PreferredExerciseDuration = *patch.PreferredExerciseDuration
	}
	if patch.OnboardingCompleted != nil {
		p.OnboardingCompleted = *patch.OnboardingCompleted
	}
	return p
}
