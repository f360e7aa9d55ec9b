package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/pitchmind/pitchmind/internal/batch"
	"github.com/pitchmind/pitchmind/internal/cli"
	"github.com/pitchmind/pitchmind/internal/constants"
	"github.com/pitchmind/pitchmind/internal/errors"
	"github.com/pitchmind/pitchmind/internal/logger"
	"github.com/pitchmind/pitchmind/internal/session"
	"github.com/pitchmind/pitchmind/internal/storage"
	"github.com/pitchmind/pitchmind/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. A .json extension selects the JSON provider, anything else SQLite." type:"path" default:"~/.config/pitchmind/pitchmind.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize pitchmind storage."`
	Mood     cli.MoodCmd     `cmd:"" help:"Log and review how you're feeling."`
	Exercise cli.ExerciseCmd `cmd:"" help:"Record and review mental exercises."`
	Routine  cli.RoutineCmd  `cmd:"" help:"Work through the pre-game routine."`
	Prefs    cli.PrefsCmd    `cmd:"" help:"Manage preferences."`
	Insights cli.InsightsCmd `cmd:"" help:"Show your progress report."`
	Export   cli.ExportCmd   `cmd:"" help:"Export all data as JSON."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run data integrity checks."`
	Clear    cli.ClearCmd    `cmd:"" help:"Delete all stored data."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pitchmind"),
		kong.Description("Pre-game mental wellness companion for soccer players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var kv storage.KV
	if strings.HasSuffix(CLI.Config, ".json") {
		kv = storage.NewJSONStore(CLI.Config)
	} else {
		kv = storage.NewSQLiteStore(CLI.Config)
	}

	// Every command except init needs an existing store.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := kv.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer kv.Close()

	queue := batch.New(constants.BatchSize, constants.BatchFlushDelay)
	defer queue.Close()

	service := storage.NewBatchedService(kv, queue)
	st := store.New(service)

	appCtx := &cli.Context{
		KV:        kv,
		Service:   service,
		Store:     st,
		Exercises: session.NewExerciseTracker(st, service),
		Routines:  session.NewRoutineTracker(st, service),
	}

	if err := ctx.Run(appCtx); err != nil {
		queue.Close()
		errors.Fatal(err)
	}
}
