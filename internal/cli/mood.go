package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/models"
	"github.com/pitchmind/pitchmind/internal/stats"
	"github.com/pitchmind/pitchmind/internal/store"
)

type MoodCmd struct {
	Log    MoodLogCmd    `cmd:"" help:"Log how you're feeling today."`
	List   MoodListCmd   `cmd:"" help:"List logged mood entries."`
	Delete MoodDeleteCmd `cmd:"" help:"Delete a mood entry."`
	Stats  MoodStatsCmd  `cmd:"" help:"Show mood statistics."`
}

type MoodLogCmd struct {
	Rating int    `arg:"" help:"Rating from 1 (very anxious) to 5 (peak flow)."`
	Notes  string `help:"Optional note about how you're feeling." default:""`
	Type   string `help:"Context: practice, game, or training." default:""`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *MoodLogCmd) Run(ctx *Context) error {
	if c.Rating < 1 || c.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	gameType, err := ParseGameType(c.Type)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = time.Now().Format(constants.DayFormat)
	} else if _, err := time.Parse(constants.DayFormat, day); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}

	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	entry := models.MoodEntry{
		ID:        uuid.New().String(),
		Date:      day,
		Rating:    c.Rating,
		Notes:     c.Notes,
		GameType:  gameType,
		CreatedAt: time.Now(),
	}

	// Write-then-dispatch: storage first, state second.
	if err := ctx.Service.AddMoodEntry(entry); err != nil {
		return err
	}
	ctx.Store.Dispatch(store.AddMoodEntry{Entry: entry})

	fmt.Printf("Logged %s for %s\n", models.MoodLabel(c.Rating), day)
	return nil
}

type MoodListCmd struct {
	Limit int `help:"Maximum number of entries to show." default:"14"`
}

func (c *MoodListCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	entries := ctx.Store.State().MoodEntries
	if len(entries) == 0 {
		fmt.Println("No mood entries yet. Log one with 'pitchmind mood log RATING'.")
		return nil
	}

	shown := entries
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}

	for _, e := range shown {
		line := fmt.Sprintf("%s  %d/5 %s", e.Date, e.Rating, models.MoodLabel(e.Rating))
		if e.GameType != "" {
			line += fmt.Sprintf(" [%s]", e.GameType)
		}
		if e.Notes != "" {
			line += fmt.Sprintf("  %q", e.Notes)
		}
		fmt.Println(line)
	}
	if len(entries) > len(shown) {
		fmt.Printf("(%d more, use --limit to see them)\n", len(entries)-len(shown))
	}
	return nil
}

type MoodDeleteCmd struct {
	ID string `arg:"" help:"ID of the entry to delete."`
}

func (c *MoodDeleteCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	found := false
	for _, e := range ctx.Store.State().MoodEntries {
		if e.ID == c.ID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no mood entry with id %s", c.ID)
	}

	if err := ctx.Service.DeleteMoodEntry(c.ID); err != nil {
		return err
	}
	ctx.Store.Dispatch(store.DeleteMoodEntry{EntryID: c.ID})

	fmt.Println("Deleted mood entry.")
	return nil
}

type MoodStatsCmd struct{}

func (c *MoodStatsCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}

	moodStats := stats.Mood(ctx.Store.State().MoodEntries, time.Now())
	if moodStats.Total == 0 {
		fmt.Println("No mood entries yet.")
		return nil
	}

	fmt.Printf("Entries:       %d\n", moodStats.Total)
	fmt.Printf("Average:       %.1f/5\n", moodStats.Average)
	fmt.Printf("Streak:        %d day(s)\n", moodStats.Streak)
	fmt.Printf("Trend:         %s\n", moodStats.Trend)
	if moodStats.ThisWeekAverage > 0 {
		fmt.Printf("This week:     %.1f/5\n", moodStats.ThisWeekAverage)
	}
	if moodStats.LastWeekAverage > 0 {
		fmt.Printf("Last week:     %.1f/5\n", moodStats.LastWeekAverage)
	}
	return nil
}
