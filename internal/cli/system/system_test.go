package system

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/dreamlog/internal/cli"
	"github.com/julianstephens/dreamlog/internal/constants"
	"github.com/julianstephens/dreamlog/internal/models"
	"github.com/julianstephens/dreamlog/internal/storage"
)

func setupTestContext(t *testing.T, name string) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	store := storage.New(filepath.Join(t.TempDir(), name))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := cli.NewContext(nil, store)
	ctx.Out = out
	ctx.In = strings.NewReader("")
	return ctx, out
}

func seedDream(t *testing.T, ctx *cli.Context, id int64, text string) {
	t.Helper()
	ctx.Repo.Upsert(context.Background(), models.Entry{
		ID:           id,
		DreamText:    text,
		DreamType:    constants.DreamTypeDream,
		Tone:         5,
		SleepQuality: 5,
		SelectedDate: "2024-03-14",
	})
}

func TestDoctorCmd_Healthy(t *testing.T) {
	for _, name := range []string{"dreamlog.db", "dreamlog.json"} {
		t.Run(name, func(t *testing.T) {
			ctx, out := setupTestContext(t, name)
			seedDream(t, ctx, 1, "a calm lake")

			if err := (&DoctorCmd{}).Run(ctx); err != nil {
				t.Fatalf("doctor failed on a healthy store: %v\n%s", err, out)
			}
			if !strings.Contains(out.String(), "✓ Dream collection: OK") {
				t.Errorf("expected collection check to pass, got:\n%s", out)
			}
			// no backups yet is only a warning
			if !strings.Contains(out.String(), "⚠ Backups present: WARNING") {
				t.Errorf("expected backup warning, got:\n%s", out)
			}
		})
	}
}

func TestDoctorCmd_CorruptCollection(t *testing.T) {
	ctx, out := setupTestContext(t, "dreamlog.db")
	if err := ctx.Store.Set(context.Background(), constants.EntriesKey, "{not json"); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail on an unparseable collection")
	}
	if !strings.Contains(out.String(), "❌ Dream collection: FAIL") {
		t.Errorf("expected collection failure, got:\n%s", out)
	}
}

func TestDoctorCmd_InvalidEntries(t *testing.T) {
	ctx, out := setupTestContext(t, "dreamlog.json")
	raw := `[{"id":1,"dreamText":"ok","dreamType":"rêve","tone":5,"sleepQuality":5,"selectedDate":"2024-03-14"},
		{"id":1,"dreamText":"dup","dreamType":"rêve","tone":11,"sleepQuality":5,"selectedDate":"2024-03-14"}]`
	if err := ctx.Store.Set(context.Background(), constants.EntriesKey, raw); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail on duplicate ids and bad ratings")
	}
	for _, want := range []string{"duplicate dream ID 1", "rating out of range"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestDoctorCmd_PendingEditIsWarning(t *testing.T) {
	ctx, out := setupTestContext(t, "dreamlog.json")
	seedDream(t, ctx, 3, "a staircase")
	e, _ := ctx.Repo.Get(context.Background(), 3)
	ctx.Repo.Stage(context.Background(), e)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("a staged edit should not fail doctor: %v", err)
	}
	if !strings.Contains(out.String(), "edit of dream 3 was staged") {
		t.Errorf("expected pending edit warning, got:\n%s", out)
	}
}

func TestDoctorCmd_StoreUnreachable(t *testing.T) {
	store := storage.New(filepath.Join(t.TempDir(), "missing.db"))
	out := &bytes.Buffer{}
	ctx := cli.NewContext(nil, store)
	ctx.Out = out

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail when the store does not exist")
	}
	if !strings.Contains(out.String(), "⊘ Dream collection: SKIPPED") {
		t.Errorf("store checks should be skipped, got:\n%s", out)
	}
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dreamlog.db")
	store := storage.New(path)
	t.Cleanup(func() { store.Close() })
	out := &bytes.Buffer{}
	ctx := cli.NewContext(nil, store)
	ctx.Out = out

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store file not created: %v", err)
	}

	if err := (&InitCmd{}).Run(ctx); err == nil {
		t.Error("second init without --force should fail")
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, out := setupTestContext(t, "dreamlog.json")
	seedDream(t, ctx, 1, "to be reset")

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backed up existing store") {
		t.Errorf("expected a backup before reset, got:\n%s", out)
	}
	if entries := ctx.Repo.LoadAll(context.Background()); len(entries) != 0 {
		t.Errorf("expected an empty journal after reset, got %d dreams", len(entries))
	}

	backups, err := ctx.BackupManager().ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestDebugCmd(t *testing.T) {
	ctx, out := setupTestContext(t, "dreamlog.db")

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("db-path failed: %v", err)
	}
	var path map[string]string
	if err := json.Unmarshal(out.Bytes(), &path); err != nil {
		t.Fatalf("db-path output is not JSON: %v", err)
	}
	if path["path"] != ctx.Store.GetConfigPath() {
		t.Errorf("path = %q, want %q", path["path"], ctx.Store.GetConfigPath())
	}

	out.Reset()
	if err := (&DebugDumpEntriesCmd{}).Run(ctx); err == nil {
		t.Error("dump-entries should fail when nothing is stored")
	}

	seedDream(t, ctx, 9, "raw")
	out.Reset()
	if err := (&DebugDumpEntriesCmd{}).Run(ctx); err != nil {
		t.Fatalf("dump-entries failed: %v", err)
	}
	if !strings.Contains(out.String(), `"dreamText":"raw"`) {
		t.Errorf("expected raw collection, got %s", out)
	}

	if err := (&DebugDumpPendingCmd{}).Run(ctx); err == nil {
		t.Error("dump-pending should fail with an empty slot")
	}
}
