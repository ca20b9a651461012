package storage

import (
	"context"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/alderchess-go/internal/errors"
)

const slotPrefix = "slot/"

// BadgerStore keeps slots as keys in a BadgerDB database.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the slot database in dir.
// An empty dir opens a throwaway in-memory database.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.WrapPersistence(err, "open badger")
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the database
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func slotKey(slot string) []byte {
	return []byte(slotPrefix + slot)
}

// Put stores data under slot.
func (s *BadgerStore) Put(ctx context.Context, slot string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateSlot(slot); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(slotKey(slot), data)
	})
	return errors.WrapPersistence(err, "put slot")
}

// Get loads the data stored under slot.
func (s *BadgerStore) Get(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slotKey(slot))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrSlotNotFound, "slot %q", slot)
		}
		if err != nil {
			return errors.WrapPersistence(err, "get slot")
		}

		data, err = item.ValueCopy(nil)
		return errors.WrapPersistence(err, "copy slot")
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Slots lists the stored slot names.
func (s *BadgerStore) Slots(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var slots []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(slotPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			slots = append(slots, string(key[len(slotPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapPersistence(err, "list slots")
	}
	sort.Strings(slots)
	return slots, nil
}
