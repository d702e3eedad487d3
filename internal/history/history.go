// Package history keeps a capped, append-only log of sheet snapshots.
//
// Each sheet type has its own log stored as a single blob. Snapshots are
// compressed with the same codec as share URLs; restoring an entry yields a
// full character state.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/encore-rpg/sheetsmith/internal/config"
	"github.com/encore-rpg/sheetsmith/internal/game/character"
	"github.com/encore-rpg/sheetsmith/internal/share"
	"github.com/encore-rpg/sheetsmith/internal/storage"
)

// ErrEntryNotFound is returned when no entry matches the given id.
var ErrEntryNotFound = fmt.Errorf("history: entry not found")

// Entry is one logged snapshot.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Tags      []string  `json:"tags,omitempty"`
	// Snapshot is the share-codec payload of the full sheet at log time.
	Snapshot string `json:"snapshot"`
}

// Log reads and writes one sheet type's history.
type Log struct {
	store  storage.Store
	logger *zap.Logger
	max    int
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewLog builds a Log over the given store.
//
// Precondition: store and logger must be non-nil; cfg.MaxEntries must be >= 1.
func NewLog(store storage.Store, logger *zap.Logger, cfg config.HistoryConfig) *Log {
	return &Log{
		store:  store,
		logger: logger,
		max:    cfg.MaxEntries,
		now:    time.Now,
		newID:  uuid.New,
	}
}

func key(sheetType string) string {
	return "history:" + sheetType
}

// List returns the log newest-first.
//
// Postcondition: A missing or corrupt log reads as empty, never an error;
// history must not block editing.
func (l *Log) List(ctx context.Context, sheetType string) ([]Entry, error) {
	raw, err := l.store.Get(ctx, key(sheetType))
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("history: reading log: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		l.logger.Warn("corrupt history log, reading as empty",
			zap.String("sheet_type", sheetType),
			zap.Error(err))
		return nil, nil
	}
	return entries, nil
}

// Append logs a snapshot of the sheet with a message and optional tags.
// When the log is full the oldest entries are evicted.
//
// Postcondition: Returns the new entry; the stored log holds at most the
// configured maximum, newest first.
func (l *Log) Append(ctx context.Context, sheetType string, s *character.State, message string, tags []string) (*Entry, error) {
	snapshot, err := share.Pack(s)
	if err != nil {
		return nil, fmt.Errorf("history: packing snapshot: %w", err)
	}
	entry := Entry{
		ID:        l.newID(),
		Timestamp: l.now().UTC(),
		Message:   message,
		Tags:      append([]string(nil), tags...),
		Snapshot:  snapshot,
	}

	entries, err := l.List(ctx, sheetType)
	if err != nil {
		return nil, err
	}
	entries = append([]Entry{entry}, entries...)
	if len(entries) > l.max {
		entries = entries[:l.max]
	}
	if err := l.write(ctx, sheetType, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Restore decodes the snapshot of the entry with the given id.
func (l *Log) Restore(ctx context.Context, sheetType string, id uuid.UUID) (*character.State, error) {
	entries, err := l.List(ctx, sheetType)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			s, err := share.Unpack(e.Snapshot)
			if err != nil {
				return nil, fmt.Errorf("history: unpacking snapshot %s: %w", id, err)
			}
			return s, nil
		}
	}
	return nil, ErrEntryNotFound
}

// Delete removes the entry with the given id.
func (l *Log) Delete(ctx context.Context, sheetType string, id uuid.UUID) error {
	entries, err := l.List(ctx, sheetType)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return ErrEntryNotFound
	}
	return l.write(ctx, sheetType, kept)
}

// UpdateTags replaces the tag list of the entry with the given id.
func (l *Log) UpdateTags(ctx context.Context, sheetType string, id uuid.UUID, tags []string) error {
	entries, err := l.List(ctx, sheetType)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Tags = append([]string(nil), tags...)
			return l.write(ctx, sheetType, entries)
		}
	}
	return ErrEntryNotFound
}

// Clear wipes the sheet type's entire log.
func (l *Log) Clear(ctx context.Context, sheetType string) error {
	if err := l.store.Delete(ctx, key(sheetType)); err != nil {
		return fmt.Errorf("history: clearing log: %w", err)
	}
	return nil
}

func (l *Log) write(ctx context.Context, sheetType string, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("history: marshaling log: %w", err)
	}
	if err := l.store.Put(ctx, key(sheetType), raw); err != nil {
		return fmt.Errorf("history: writing log: %w", err)
	}
	return nil
}
