// Package errors renders command failures for the terminal. Every
// message a dreamlog command prints on failure starts with "Error: ".
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/dreamlog/internal/logger"
)

// Format renders err as the line a failed command prints. A nil error renders empty.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for a message built in place
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal is the exit path of main: err goes to the log file and, formatted,
// to stderr before the process exits with status 1. A nil error is ignored.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

// Fatalf is Fatal for a message built in place
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
