package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/julianstephens/dreamlog/internal/cli"
	"github.com/julianstephens/dreamlog/internal/constants"
	"github.com/julianstephens/dreamlog/internal/lock"
	"github.com/julianstephens/dreamlog/internal/migration"
	"github.com/julianstephens/dreamlog/internal/models"
	"github.com/julianstephens/dreamlog/internal/storage"
	"github.com/julianstephens/dreamlog/migrations"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsStore checks are skipped when the store cannot be loaded
	needsStore bool
	// warnOnly checks never fail the run
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsStore: true, run: checkSchemaVersion},
	{name: "Dream collection", needsStore: true, run: checkCollection},
	{name: "Pending edit", needsStore: true, warnOnly: true, run: checkPendingEdit},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Lock", warnOnly: true, run: checkLock},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	storeReachable := true

	if err := checkStoreReachable(ctx); err != nil {
		ctx.Printf("❌ Store reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		storeReachable = false
	} else {
		ctx.Printf("✓ Store reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsStore && !storeReachable {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(sqliteStore.GetDB(), subFS)

	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	current, err := runner.CurrentVersion()
	if err != nil {
		return err
	}
	all, err := runner.ReadMigrations()
	if err != nil {
		return err
	}
	if len(all) > 0 && current < all[len(all)-1].Version {
		return fmt.Errorf("schema version %d is behind latest %d", current, all[len(all)-1].Version)
	}
	return nil
}

// checkCollection decodes the stored collection strictly, reporting what
// the repository would otherwise silently treat as empty
func checkCollection(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Get(ctx.Ctx(), constants.EntriesKey)
	if err != nil {
		return fmt.Errorf("failed to read collection: %w", err)
	}
	if !ok {
		return nil
	}

	var entries []models.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return fmt.Errorf("collection does not parse and will read as empty: %w", err)
	}

	var errs []error
	seen := make(map[int64]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("duplicate dream ID %d", e.ID))
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("dream %d: %w", e.ID, err))
		}
	}
	return errors.Join(errs...)
}

func checkPendingEdit(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Get(ctx.Ctx(), constants.PendingEditKey)
	if err != nil {
		return fmt.Errorf("failed to read pending edit: %w", err)
	}
	if !ok {
		return nil
	}

	var e models.Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return fmt.Errorf("pending edit is malformed and will be ignored: %w", err)
	}
	return fmt.Errorf("an edit of dream %d was staged but never submitted", e.ID)
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'dreamlog backup create'")
	}

	return nil
}

func checkLock(ctx *cli.Context) error {
	owner, held, err := lock.Status(filepath.Dir(ctx.Store.GetConfigPath()))
	if err != nil {
		return fmt.Errorf("lockfile unreadable, it will be replaced: %w", err)
	}
	if held {
		return fmt.Errorf("store is in use by %s", owner)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}
