// Package errors handles failures at the CLI boundary. A command error
// reaches the player as a single "Error:" line on stderr; the full detail
// lands in the rotating log file.
package errors

import (
	"fmt"
	"os"

	"github.com/pitchmind/pitchmind/internal/logger"
)

// Format renders an error as the one line shown to the user.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Fatal logs the error, prints it to stderr, and exits with code 1. A nil
// error is a no-op so callers can pass command results straight through.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal with printf formatting.
func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
