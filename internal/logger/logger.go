// Package logger writes dreamlog's diagnostics to a rotating file at
// <store dir>/logs/dreamlog.log. Only warnings and errors are kept unless
// debug mode is on.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/dreamlog/internal/constants"
)

var (
	// Logger is shared by every package. Before Init it is nil and the
	// helpers below drop messages.
	Logger *log.Logger

	stderr io.Writer = os.Stderr
)

type Config struct {
	// Debug logs at debug level with callers, and mirrors lines to stderr
	Debug bool
	// ConfigDir is the directory holding the store; logs go in its logs/ subdirectory
	ConfigDir string
	// Stderr mirrors log lines to stderr for one-shot CLI commands. The
	// TUI leaves it off so log lines never tear the alt screen.
	Stderr bool
}

// Init opens the rotating log file under cfg.ConfigDir and installs the
// shared Logger. Files rotate at 5 MB, keeping three compressed backups
// for 28 days.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = fileWriter
	if cfg.Debug || cfg.Stderr {
		writer = io.MultiWriter(stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

// Debug records session and navigation steps, visible only in debug mode
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info records routine events such as backups and restores
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn records rejected input and recoverable storage trouble
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error records storage faults the caller absorbed
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs msg and exits with status 1, even before Init
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
