package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/julianstephens/dreamlog/internal/backup"
	"github.com/julianstephens/dreamlog/internal/config"
	"github.com/julianstephens/dreamlog/internal/logger"
	"github.com/julianstephens/dreamlog/internal/models"
	"github.com/julianstephens/dreamlog/internal/repository"
	"github.com/julianstephens/dreamlog/internal/storage"
)

// Context is handed to every command's Run method
type Context struct {
	Config *config.Config
	Store  storage.Provider
	Repo   *repository.Repository

	Out io.Writer
	In  io.Reader
}

func NewContext(cfg *config.Config, store storage.Provider) *Context {
	return &Context{
		Config: cfg,
		Store:  store,
		Repo:   repository.New(store),
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

// Ctx is the context passed to core operations. Commands run to
// completion, so there is nothing to cancel.
func (c *Context) Ctx() context.Context {
	return context.Background()
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question; anything but y/yes is no
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// BackupManager returns a backup manager for the current store
func (c *Context) BackupManager() *backup.Manager {
	var opts []backup.Option
	if c.Config != nil {
		opts = append(opts, backup.WithMaxBackups(c.Config.Backup.Max))
	}
	return backup.NewManager(c.Store.GetConfigPath(), opts...)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Config != nil && !c.Config.Backup.Auto {
		return
	}
	if _, err := c.BackupManager().CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseID parses an entry id argument
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entry id %q", s)
	}
	return id, nil
}

// FindEntry loads the entry with the given id
func (c *Context) FindEntry(id int64) (models.Entry, error) {
	e, ok := c.Repo.Get(c.Ctx(), id)
	if !ok {
		return models.Entry{}, fmt.Errorf("no dream with ID %d", id)
	}
	return e, nil
}
