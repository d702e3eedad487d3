// Package session owns the authoritative in-memory copy of a character
// sheet.
//
// Exactly one session holds a sheet type's mutable state at a time. Every
// transformation works on a clone and replaces the held state wholesale on
// success, so a failed operation never leaves a half-edited sheet behind.
// Persistence faults degrade instead of crashing: a missing or corrupt blob
// loads as a fresh default sheet with a logged warning.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
	"github.com/encore-rpg/sheetsmith/internal/game/character"
	"github.com/encore-rpg/sheetsmith/internal/storage"
)

// SheetType selects which of the two sheets a session edits.
type SheetType string

const (
	// SheetHero is the standard character sheet.
	SheetHero SheetType = "hero"
	// SheetDiva is the performer variant sheet.
	SheetDiva SheetType = "diva"
)

// ParseSheetType validates a sheet type name.
func ParseSheetType(s string) (SheetType, error) {
	switch SheetType(s) {
	case SheetHero, SheetDiva:
		return SheetType(s), nil
	default:
		return "", fmt.Errorf("session: unknown sheet type %q", s)
	}
}

// SheetKey is the storage key for a sheet type's state blob.
func SheetKey(t SheetType) string {
	return "sheet:" + string(t)
}

// UserCatalogKey is the storage key for the user dataset blob, shared by
// both sheet types.
const UserCatalogKey = "catalog:user"

// Session is one sheet's editing session.
type Session struct {
	sheetType SheetType
	store     storage.Store
	logger    *zap.Logger
	state     *character.State
}

// Open loads the sheet type's persisted state into a new session.
//
// Precondition: store and logger must be non-nil.
// Postcondition: A missing, unreadable, or corrupt blob yields a fresh
// default sheet with a logged warning; Open fails only on an invalid sheet
// type.
func Open(ctx context.Context, store storage.Store, logger *zap.Logger, sheetType SheetType) (*Session, error) {
	if _, err := ParseSheetType(string(sheetType)); err != nil {
		return nil, err
	}
	s := &Session{
		sheetType: sheetType,
		store:     store,
		logger:    logger,
	}

	raw, err := store.Get(ctx, SheetKey(sheetType))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("reading sheet failed, starting fresh",
				zap.String("sheet_type", string(sheetType)),
				zap.Error(err))
		}
		s.state = character.NewState()
		return s, nil
	}

	state, err := decodeState(raw)
	if err != nil {
		logger.Warn("corrupt sheet blob, starting fresh",
			zap.String("sheet_type", string(sheetType)),
			zap.Error(err))
		s.state = character.NewState()
		return s, nil
	}
	s.state = state
	return s, nil
}

// SheetType returns the sheet type this session edits.
func (s *Session) SheetType() SheetType {
	return s.sheetType
}

// State returns the authoritative sheet state. Callers must treat it as
// read-only and go through Apply for mutation.
func (s *Session) State() *character.State {
	return s.state
}

// Apply runs a transformation on a clone of the state and replaces the held
// state wholesale on success.
//
// Postcondition: On error the held state is unchanged.
func (s *Session) Apply(fn func(*character.State) error) error {
	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// Replace swaps in a complete new state, as after a history restore or a
// decoded share URL.
//
// Precondition: state must be non-nil.
func (s *Session) Replace(state *character.State) {
	s.state = state
}

// Save persists the current state.
func (s *Session) Save(ctx context.Context) error {
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("session: marshaling sheet: %w", err)
	}
	if err := s.store.Put(ctx, SheetKey(s.sheetType), raw); err != nil {
		return fmt.Errorf("session: writing sheet: %w", err)
	}
	return nil
}

// Export serializes the sheet for download.
func (s *Session) Export() ([]byte, error) {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("session: exporting sheet: %w", err)
	}
	return raw, nil
}

// Import replaces the state from an uploaded JSON document. Import is
// tolerant: missing fields default and unknown fields are ignored; the
// derivation layer clamps whatever it is handed. Only syntactically invalid
// JSON is rejected.
func (s *Session) Import(raw []byte) error {
	state, err := decodeState(raw)
	if err != nil {
		return fmt.Errorf("session: importing sheet: %w", err)
	}
	s.state = state
	return nil
}

func decodeState(raw []byte) (*character.State, error) {
	var state character.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	if state.Version == 0 {
		state.Version = character.SheetVersion
	}
	return &state, nil
}

// LoadUserData reads the shared user dataset blob.
//
// Postcondition: A missing or corrupt blob yields an empty dataset with a
// logged warning, never an error. User data quality must not block the app.
func LoadUserData(ctx context.Context, store storage.Store, logger *zap.Logger) *catalog.UserData {
	raw, err := store.Get(ctx, UserCatalogKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("reading user catalog failed, using empty", zap.Error(err))
		}
		return &catalog.UserData{}
	}
	var data catalog.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Warn("corrupt user catalog blob, using empty", zap.Error(err))
		return &catalog.UserData{}
	}
	return &data
}

// SaveUserData persists the shared user dataset blob.
func SaveUserData(ctx context.Context, store storage.Store, data *catalog.UserData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: marshaling user catalog: %w", err)
	}
	if err := store.Put(ctx, UserCatalogKey, raw); err != nil {
		return fmt.Errorf("session: writing user catalog: %w", err)
	}
	return nil
}
