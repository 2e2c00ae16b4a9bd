package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/dreamlog/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			// keep a copy so --force is recoverable
			if backupPath, err := ctx.BackupManager().CreateBackup(); err == nil {
				ctx.Printf("Backed up existing store to: %s\n", backupPath)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized dreamlog storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
