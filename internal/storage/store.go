package storage

import (
	"context"
	"strings"

	"github.com/lgbarn/alderchess-go/internal/errors"
)

// DefaultSlot is the slot used when none is configured.
const DefaultSlot = "saved_game"

// Store keeps one blob per slot name. Implementations are safe for
// concurrent use.
type Store interface {
	// Put replaces the contents of slot.
	Put(ctx context.Context, slot string, data []byte) error

	// Get returns the contents of slot, or an error wrapping
	// errors.ErrSlotNotFound if it was never written.
	Get(ctx context.Context, slot string) ([]byte, error)

	// Slots lists the slot names in lexical order.
	Slots(ctx context.Context) ([]string, error)

	Close() error
}

// ValidateSlot rejects names that are empty or could escape the data directory.
func ValidateSlot(slot string) error {
	if slot == "" || slot == "." || slot == ".." || strings.ContainsAny(slot, `/\:`) {
		return &errors.ParseError{
			Err:      errors.ErrPersistence,
			Input:    slot,
			Field:    "slot",
			Expected: "a plain name",
			Got:      "\"" + slot + "\"",
		}
	}
	return nil
}

// Store backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*BadgerStore)(nil)
)

// Open returns the store for backend rooted at dataDir.
// An empty dataDir means GetDataDir.
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dataDir)
	case BackendBadger:
		dbDir, err := GetDatabaseDir(dataDir)
		if err != nil {
			return nil, errors.WrapPersistence(err, "resolve database dir")
		}
		return OpenBadger(dbDir)
	}
	return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown storage backend %q", backend)
}
