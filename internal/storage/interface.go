package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotInitialized is returned by Load when the backing file does not exist
	ErrNotInitialized = errors.New("storage not initialized, run 'dreamlog init' first")
	// ErrAlreadyInitialized is returned by Init when the backing file already exists
	ErrAlreadyInitialized = errors.New("storage already initialized")
	// ErrNotLoaded is returned by key operations before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a string key-value store. Every call may fail; callers
// decide whether a failure is fatal.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Values
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error

	// Utils
	GetConfigPath() string
}

// New picks a backend by file extension: .json files use JSONStore,
// everything else is treated as a SQLite database.
func New(path string) Provider {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}
