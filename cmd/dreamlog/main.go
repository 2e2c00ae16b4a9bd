package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dreamlog/internal/cli"
	"github.com/julianstephens/dreamlog/internal/cli/backups"
	"github.com/julianstephens/dreamlog/internal/cli/entries"
	"github.com/julianstephens/dreamlog/internal/cli/system"
	"github.com/julianstephens/dreamlog/internal/config"
	"github.com/julianstephens/dreamlog/internal/constants"
	apperrors "github.com/julianstephens/dreamlog/internal/errors"
	"github.com/julianstephens/dreamlog/internal/lock"
	"github.com/julianstephens/dreamlog/internal/logger"
	"github.com/julianstephens/dreamlog/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"YAML config file (default ~/.config/dreamlog/config.yml)." type:"path"`
	Store   string `help:"Store path. A .json extension selects the JSON store, anything else SQLite." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd    `cmd:"" help:"Initialize dreamlog storage."`
	Tui    system.TuiCmd     `cmd:"" help:"Launch the interactive journal." default:"1"`
	Add    entries.AddCmd    `cmd:"" help:"Record a dream."`
	List   entries.ListCmd   `cmd:"" help:"List dreams, newest first."`
	Search entries.SearchCmd `cmd:"" help:"Search dreams by text, type or tag."`
	Show   entries.ShowCmd   `cmd:"" help:"Show one dream."`
	Edit   entries.EditCmd   `cmd:"" help:"Edit a dream."`
	Delete entries.DeleteCmd `cmd:"" help:"Delete a dream."`
	Clear  entries.ClearCmd  `cmd:"" help:"Delete every dream."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Inspect system.DebugCmd  `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// exclusive commands write to the store and take the lockfile
var exclusive = map[string]bool{
	"init":           true,
	"tui":            true,
	"add":            true,
	"edit":           true,
	"delete":         true,
	"clear":          true,
	"backup restore": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A dream journal for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := run(ctx); err != nil {
		apperrors.Fatal(err)
	}
}

func run(ctx *kong.Context) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	command := commandName(ctx.Command())

	// the TUI owns the terminal, so its log lines only go to the file
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.Dir(),
		Stderr:    command != "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Debug("Starting", "command", command, "store", cfg.Store)

	if exclusive[command] {
		l, err := lock.Acquire(cfg.Dir())
		if err != nil {
			return err
		}
		defer func() {
			if err := l.Release(); err != nil {
				logger.Warn("Failed to release lock", "error", err)
			}
		}()
	}

	store := storage.New(cfg.Store)
	defer store.Close()

	// init creates the store; doctor reports a missing one itself
	if command != "init" && command != "doctor" {
		if err := store.Load(); err != nil {
			return fmt.Errorf("%w (run '%s init' first?)", err, constants.AppName)
		}
	}

	return ctx.Run(cli.NewContext(cfg, store))
}

// commandName strips positional placeholders, so "backup restore
// <backup-file>" becomes "backup restore"
func commandName(command string) string {
	var words []string
	for _, w := range strings.Fields(command) {
		if strings.HasPrefix(w, "<") {
			break
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}
