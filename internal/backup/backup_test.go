package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/dreamlog/internal/storage"
)

// setupTestStore creates an initialized store holding key=value
func setupTestStore(t *testing.T, name, value string) string {
	path := filepath.Join(t.TempDir(), name)

	store := storage.New(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init test store: %v", err)
	}
	if err := store.Set(context.Background(), "dreamFormDataArray", value); err != nil {
		t.Fatalf("failed to seed test store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close test store: %v", err)
	}

	return path
}

func readValue(t *testing.T, path string) string {
	store := storage.New(path)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store %s: %v", path, err)
	}
	defer store.Close()

	value, _, err := store.Get(context.Background(), "dreamFormDataArray")
	if err != nil {
		t.Fatalf("failed to read store %s: %v", path, err)
	}
	return value
}

func writeValue(t *testing.T, path, value string) {
	store := storage.New(path)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store %s: %v", path, err)
	}
	defer store.Close()

	if err := store.Set(context.Background(), "dreamFormDataArray", value); err != nil {
		t.Fatalf("failed to write store %s: %v", path, err)
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 14, 6, 45, 0, 0, time.Local)
}

func TestCreateBackup(t *testing.T) {
	for _, name := range []string{"dreamlog.db", "dreamlog.json"} {
		t.Run(name, func(t *testing.T) {
			path := setupTestStore(t, name, `[{"id":1}]`)

			mgr := NewManager(path)
			backupPath, err := mgr.CreateBackup()
			if err != nil {
				t.Fatalf("CreateBackup failed: %v", err)
			}

			if filepath.Ext(backupPath) != filepath.Ext(name) {
				t.Errorf("backup %s should keep the store extension", backupPath)
			}
			if got := readValue(t, backupPath); got != `[{"id":1}]` {
				t.Errorf("backup holds %q, want the original collection", got)
			}
		})
	}
}

func TestCreateBackupMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing store")
	}
}

func TestBackupRotation(t *testing.T) {
	path := setupTestStore(t, "dreamlog.json", "[]")

	const keep = 3
	mgr := NewManager(path, WithMaxBackups(keep), WithClock(fixedClock))

	var created []string
	for i := 0; i < keep+2; i++ {
		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		created = append(created, backupPath)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != keep {
		t.Fatalf("expected %d backups after rotation, got %d", keep, len(backups))
	}

	// newest first, oldest evicted
	if backups[0].Path != created[len(created)-1] {
		t.Errorf("expected newest backup %s first, got %s", created[len(created)-1], backups[0].Path)
	}
	if _, err := os.Stat(created[0]); !os.IsNotExist(err) {
		t.Errorf("oldest backup %s should have been rotated away", created[0])
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted correctly: backup %d is newer than backup %d", i, i-1)
		}
	}
}

func TestListBackups(t *testing.T) {
	path := setupTestStore(t, "dreamlog.db", "[]")
	mgr := NewManager(path)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 2; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	// files that do not look like backups are ignored
	for _, name := range []string{"notes.txt", "dreamlog-garbage.db", "dreamlog-20240101-000000.json"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
	for _, backup := range backups {
		if backup.Size == 0 {
			t.Error("backup size is 0")
		}
		if backup.Timestamp.IsZero() {
			t.Error("backup timestamp is zero")
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	for _, name := range []string{"dreamlog.db", "dreamlog.json"} {
		t.Run(name, func(t *testing.T) {
			path := setupTestStore(t, name, "before")
			mgr := NewManager(path)

			backupPath, err := mgr.CreateBackup()
			if err != nil {
				t.Fatalf("CreateBackup failed: %v", err)
			}

			writeValue(t, path, "after")

			previous, err := mgr.RestoreBackup(backupPath)
			if err != nil {
				t.Fatalf("RestoreBackup failed: %v", err)
			}

			if got := readValue(t, path); got != "before" {
				t.Errorf("expected restored value %q, got %q", "before", got)
			}
			if previous == "" {
				t.Fatal("expected a pre-restore backup")
			}
			if got := readValue(t, previous); got != "after" {
				t.Errorf("pre-restore backup holds %q, want %q", got, "after")
			}
		})
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	for _, name := range []string{"dreamlog.db", "dreamlog.json"} {
		t.Run(name, func(t *testing.T) {
			path := setupTestStore(t, name, "keep")
			mgr := NewManager(path)

			invalidPath := filepath.Join(t.TempDir(), "invalid"+filepath.Ext(name))
			if err := os.WriteFile(invalidPath, []byte("not a store"), 0600); err != nil {
				t.Fatal(err)
			}

			if _, err := mgr.RestoreBackup(invalidPath); err == nil {
				t.Error("RestoreBackup should fail for invalid backup")
			}
			if got := readValue(t, path); got != "keep" {
				t.Errorf("store was modified by failed restore: %q", got)
			}
		})
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	path := setupTestStore(t, "dreamlog.db", "[]")
	mgr := NewManager(path, WithClock(fixedClock))

	paths := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}

		filename := filepath.Base(backupPath)
		if paths[filename] {
			t.Errorf("duplicate backup filename: %s", filename)
		}
		paths[filename] = true
	}
}
