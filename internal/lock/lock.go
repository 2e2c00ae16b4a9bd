// Package lock keeps a single dreamlog process writing to a store at a
// time. The lockfile holds "pid|executable" of the owner; a lockfile whose
// process is gone, or whose pid now belongs to another program, is stale
// and gets taken over.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/dreamlog/internal/constants"
	"github.com/julianstephens/dreamlog/internal/logger"
)

var (
	ErrLocked = errors.New("another dreamlog process is using this store")

	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Owner identifies the process holding a lock
type Owner struct {
	PID        int
	Executable string
}

func (o Owner) String() string {
	return fmt.Sprintf("%s (pid %d)", o.Executable, o.PID)
}

type Lock struct {
	path  string
	owner Owner
}

// Path returns the lockfile location for a store directory
func Path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire takes the lock in dir, replacing a stale lockfile
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	self, err := currentOwner()
	if err != nil {
		return nil, err
	}

	path := Path(dir)
	owner, held, err := Status(dir)
	if err != nil {
		logger.Warn("Replacing unreadable lockfile", "path", path, "error", err)
	} else if held {
		if owner.PID == self.PID {
			return &Lock{path: path, owner: self}, nil
		}
		return nil, fmt.Errorf("%w: held by %s", ErrLocked, owner)
	}

	_ = os.Remove(path)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d|%s", self.PID, self.Executable); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	logger.Debug("Lock acquired", "path", path, "pid", self.PID)
	return &Lock{path: path, owner: self}, nil
}

// Release removes the lockfile if it still belongs to this lock
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}

	owner, err := readLockfile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if owner.PID != l.owner.PID {
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Status reports who holds the lock in dir. held is false when there is
// no lockfile or the recorded process is gone.
func Status(dir string) (Owner, bool, error) {
	owner, err := readLockfile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return Owner{}, false, nil
		}
		return Owner{}, false, err
	}

	process, err := findProcessFunc(owner.PID)
	if err != nil || process == nil {
		return owner, false, nil
	}
	if process.Executable() != owner.Executable {
		// pid was recycled by an unrelated program
		return owner, false, nil
	}
	return owner, true, nil
}

func readLockfile(path string) (Owner, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Owner{}, err
	}

	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 2)
	if len(parts) != 2 {
		return Owner{}, errors.New("lockfile is malformed")
	}

	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Owner{}, errors.New("invalid process ID in lockfile")
	}
	if strings.TrimSpace(parts[1]) == "" {
		return Owner{}, errors.New("executable in lockfile is empty")
	}

	return Owner{PID: pid, Executable: parts[1]}, nil
}

func currentOwner() (Owner, error) {
	pid := getpidFunc()
	process, err := findProcessFunc(pid)
	if err != nil {
		return Owner{}, fmt.Errorf("failed to inspect current process: %w", err)
	}

	executable := constants.AppName
	if process != nil && process.Executable() != "" {
		executable = process.Executable()
	}
	return Owner{PID: pid, Executable: executable}, nil
}
