package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var idPattern = regexp.MustCompile(`\(ID: (\d+)\)`)

// setupEnv locates the dreamlog binary and isolates HOME and the store
// in a temp dir
func setupEnv(t *testing.T, storeName string) (string, []string, string) {
	t.Helper()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("DREAMLOG_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "dreamlog")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s; build it with: go build -o bin/dreamlog ./cmd/dreamlog", cliPath)
	}

	tempDir := t.TempDir()
	storePath := filepath.Join(tempDir, "dreamlog", storeName)

	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "DREAMLOG_") {
			env = append(env, e)
		}
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("DREAMLOG_STORE=%s", storePath),
		"DREAMLOG_AUTO_BACKUP=false",
	)

	return cliPath, env, storePath
}

func TestEndToEndWorkflow(t *testing.T) {
	for _, storeName := range []string{"dreamlog.db", "dreamlog.json"} {
		t.Run(storeName, func(t *testing.T) {
			cliPath, env, storePath := setupEnv(t, storeName)

			out := runCmd(t, cliPath, env, "init")
			if !strings.Contains(out, storePath) {
				t.Errorf("init should report the store path, got: %s", out)
			}

			runCmd(t, cliPath, env, "add", "Walking along a beach at night",
				"--type", "lucid", "--tone", "8", "--date", "2024-03-14",
				"--location", "beach", "--hashtag", "sea")
			runCmd(t, cliPath, env, "add", "Late for an exam", "--type", "nightmare", "--tone", "2")

			out = runCmd(t, cliPath, env, "list", "--show-ids")
			if !strings.Contains(out, "2 dreams recorded") {
				t.Fatalf("expected two dreams, got: %s", out)
			}
			if strings.Index(out, "Late for an exam") > strings.Index(out, "Walking along a beach") {
				t.Errorf("newest dream should be listed first, got: %s", out)
			}

			out = runCmd(t, cliPath, env, "search", "BEACH", "--show-ids")
			if !strings.Contains(out, "1 match") {
				t.Fatalf("expected one match, got: %s", out)
			}
			m := idPattern.FindStringSubmatch(out)
			if m == nil {
				t.Fatalf("no dream ID in search output: %s", out)
			}
			id := m[1]

			runCmd(t, cliPath, env, "edit", id, "--text", "Swimming at night", "--add-emotion", "calm")
			out = runCmd(t, cliPath, env, "show", id, "--json")
			for _, want := range []string{`"dreamText": "Swimming at night"`, `"name": "calm"`, `"name": "beach"`} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %s in edited dream, got: %s", want, out)
				}
			}

			out = runCmdFail(t, cliPath, env, "add", "   ")
			if !strings.Contains(out, "Error:") {
				t.Errorf("blank dream should be rejected, got: %s", out)
			}

			runCmd(t, cliPath, env, "backup", "create")
			out = runCmd(t, cliPath, env, "backup", "list")
			if !strings.Contains(out, "1 total") {
				t.Errorf("expected one backup, got: %s", out)
			}

			runCmd(t, cliPath, env, "delete", id)
			out = runCmd(t, cliPath, env, "list")
			if !strings.Contains(out, "1 dream recorded") {
				t.Errorf("expected one dream after delete, got: %s", out)
			}

			runCmd(t, cliPath, env, "clear", "--yes")
			out = runCmd(t, cliPath, env, "list")
			if !strings.Contains(out, "No dreams recorded yet") {
				t.Errorf("expected an empty journal, got: %s", out)
			}

			out = runCmd(t, cliPath, env, "doctor")
			if !strings.Contains(out, "All diagnostics passed!") {
				t.Errorf("doctor should pass, got: %s", out)
			}
		})
	}
}

func TestLockBlocksWriters(t *testing.T) {
	cliPath, env, storePath := setupEnv(t, "dreamlog.db")
	runCmd(t, cliPath, env, "init")

	holder := exec.Command("sleep", "30")
	if err := holder.Start(); err != nil {
		t.Skipf("cannot start a lock holder: %v", err)
	}
	defer func() {
		_ = holder.Process.Kill()
		_ = holder.Wait()
	}()

	lockPath := filepath.Join(filepath.Dir(storePath), "dreamlog.lock")
	content := fmt.Sprintf("%d|sleep", holder.Process.Pid)
	if err := os.WriteFile(lockPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write lockfile: %v", err)
	}

	out := runCmdFail(t, cliPath, env, "add", "blocked")
	if !strings.Contains(out, "another dreamlog process") {
		t.Errorf("add should fail while locked, got: %s", out)
	}

	// readers do not take the lock
	runCmd(t, cliPath, env, "list")

	_ = holder.Process.Kill()
	_ = holder.Wait()

	// the stale lockfile is replaced
	runCmd(t, cliPath, env, "add", "no longer blocked")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	cmd.Stdin = strings.NewReader("")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func runCmdFail(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("Command %s %v should have failed\nOutput: %s", path, args, out)
	}
	return string(out)
}
