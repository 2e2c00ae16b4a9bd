// Package repository persists dream entries as one JSON array under a
// single storage key, plus a one-slot staging area for the entry being
// edited.
//
// Every mutation is a full read-modify-write of the collection. That does
// not scale, and does not need to: a personal journal stays small.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dreamlog/internal/constants"
	"github.com/julianstephens/dreamlog/internal/logger"
	"github.com/julianstephens/dreamlog/internal/models"
	"github.com/julianstephens/dreamlog/internal/storage"
)

// Repository is the read/write contract for dream entries. Storage and
// decoding faults are logged and absorbed. Reads fall back to empty, and a
// mutation against a collection that cannot be loaded writes nothing.
type Repository struct {
	store      storage.Provider
	ids        *IDGenerator
	entriesKey string
	pendingKey string
}

type Option func(*Repository)

// WithIDGenerator replaces the process-wide id generator
func WithIDGenerator(g *IDGenerator) Option {
	return func(r *Repository) {
		r.ids = g
	}
}

// WithKeys overrides the storage keys for the collection and the staging slot
func WithKeys(entriesKey, pendingKey string) Option {
	return func(r *Repository) {
		r.entriesKey = entriesKey
		r.pendingKey = pendingKey
	}
}

func New(store storage.Provider, opts ...Option) *Repository {
	r := &Repository{
		store:      store,
		ids:        processIDs,
		entriesKey: constants.EntriesKey,
		pendingKey: constants.PendingEditKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadAll returns the stored collection in append order. Absent, unreadable
// or malformed data all read as an empty collection.
func (r *Repository) LoadAll(ctx context.Context) []models.Entry {
	entries, err := r.load(ctx)
	if err != nil {
		logger.Error("Failed to load entries", "key", r.entriesKey, "error", err)
		return []models.Entry{}
	}
	return entries
}

// load reads the collection. Only an absent key is an empty collection;
// read and decode failures are returned so mutations never write over
// data they could not see.
func (r *Repository) load(ctx context.Context) ([]models.Entry, error) {
	raw, ok, err := r.store.Get(ctx, r.entriesKey)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if !ok || raw == "" {
		return []models.Entry{}, nil
	}

	var entries []models.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if entries == nil {
		return []models.Entry{}, nil
	}

	for _, e := range entries {
		r.ids.Observe(e.ID)
	}
	return entries, nil
}

// Upsert replaces the entry with e's id in place, or appends e when no
// such entry exists. The whole collection is written back and returned.
// When the stored collection cannot be loaded nothing is written and the
// result is empty.
func (r *Repository) Upsert(ctx context.Context, e models.Entry) []models.Entry {
	entries, err := r.load(ctx)
	if err != nil {
		logger.Error("Upsert skipped: entries could not be loaded", "key", r.entriesKey, "id", e.ID, "error", err)
		return []models.Entry{}
	}

	e.Normalize()
	replaced := false
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}

	r.write(ctx, entries)
	return entries
}

// Delete removes the entry with the given id. An unknown id leaves the
// stored collection untouched, as does a collection that cannot be loaded.
func (r *Repository) Delete(ctx context.Context, id int64) []models.Entry {
	entries, err := r.load(ctx)
	if err != nil {
		logger.Error("Delete skipped: entries could not be loaded", "key", r.entriesKey, "id", id, "error", err)
		return []models.Entry{}
	}

	kept := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return entries
	}

	r.write(ctx, kept)
	return kept
}

// ClearAll removes the collection key entirely
func (r *Repository) ClearAll(ctx context.Context) {
	if err := r.store.Remove(ctx, r.entriesKey); err != nil {
		logger.Error("Failed to clear entries", "key", r.entriesKey, "error", err)
	}
}

// Get returns the entry with the given id
func (r *Repository) Get(ctx context.Context, id int64) (models.Entry, bool) {
	for _, e := range r.LoadAll(ctx) {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entry{}, false
}

// Stage stores a copy of e in the pending-edit slot, replacing any
// previous occupant
func (r *Repository) Stage(ctx context.Context, e models.Entry) {
	staged := e.Clone()
	staged.Normalize()

	data, err := json.Marshal(staged)
	if err != nil {
		logger.Error("Failed to serialize pending edit", "id", e.ID, "error", err)
		return
	}
	if err := r.store.Set(ctx, r.pendingKey, string(data)); err != nil {
		logger.Error("Failed to stage entry for edit", "id", e.ID, "error", err)
	}
}

// Pending returns the staged entry, if any. A malformed slot reads as empty.
func (r *Repository) Pending(ctx context.Context) (models.Entry, bool) {
	raw, ok, err := r.store.Get(ctx, r.pendingKey)
	if err != nil {
		logger.Error("Failed to read pending edit", "key", r.pendingKey, "error", err)
		return models.Entry{}, false
	}
	if !ok || raw == "" {
		return models.Entry{}, false
	}

	var e models.Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		logger.Warn("Ignoring malformed pending edit", "key", r.pendingKey, "error", err)
		return models.Entry{}, false
	}
	return e, true
}

// ClearPending empties the staging slot
func (r *Repository) ClearPending(ctx context.Context) {
	if err := r.store.Remove(ctx, r.pendingKey); err != nil {
		logger.Error("Failed to clear pending edit", "key", r.pendingKey, "error", err)
	}
}

// NextID returns a fresh entry id
func (r *Repository) NextID() int64 {
	return r.ids.Next()
}

func (r *Repository) write(ctx context.Context, entries []models.Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		logger.Error("Failed to serialize entries", "error", err)
		return
	}
	if err := r.store.Set(ctx, r.entriesKey, string(data)); err != nil {
		logger.Error("Failed to write entries", "key", r.entriesKey, "count", len(entries), "error", err)
	}
}
