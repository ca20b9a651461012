package main

import (
	"context"
	"encoding/hex"
	"os"

	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/storage"
)

// runDump decodes a saved game. A path argument names a save file directly;
// without one the configured slot is read from the configured store.
func runDump(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("dump")
	raw := fs.Bool("hex", false, "Also print the raw save bytes")
	list := fs.Bool("slots", false, "List the slots in the store and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data []byte
	switch {
	case *list:
		return listSlots(ctx, a)
	case fs.NArg() > 0:
		var err error
		data, err = os.ReadFile(fs.Arg(0))
		if err != nil {
			return errors.WrapPersistence(err, "read save file")
		}
	default:
		var err error
		data, err = readSlot(ctx, a)
		if err != nil {
			return err
		}
	}

	if *raw {
		a.printf("%s", hex.Dump(data))
	}

	b := engine.New()
	if err := b.UnmarshalBinary(data); err != nil {
		return err
	}
	return a.writePosition(b)
}

func openStore(a *app) (storage.Store, error) {
	return a.cfg.Storage.Open()
}

func readSlot(ctx context.Context, a *app) ([]byte, error) {
	store, err := openStore(a)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Get(ctx, a.cfg.Storage.Slot)
}

func listSlots(ctx context.Context, a *app) error {
	store, err := openStore(a)
	if err != nil {
		return err
	}
	defer store.Close()

	slots, err := store.Slots(ctx)
	if err != nil {
		return err
	}
	for _, s := range slots {
		a.printf("%s\n", s)
	}
	return nil
}
