package storage

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lgbarn/alderchess-go/internal/errors"
)

// FileExt is appended to the slot name to form the file name.
const FileExt = ".alderchess"

// FileStore keeps each slot in its own file, the way a desktop build keeps
// saved_game.alderchess in the user's preference directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir, creating it if needed.
// An empty dir means GetDataDir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		var err error
		if dir, err = GetDataDir(); err != nil {
			return nil, errors.WrapPersistence(err, "resolve data dir")
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WrapPersistence(err, "create data dir")
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the slot files.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file that backs slot.
func (s *FileStore) Path(slot string) string {
	return filepath.Join(s.dir, slot+FileExt)
}

// Put writes data to a temporary file and renames it over the slot so a
// reader never sees a partial save.
func (s *FileStore) Put(ctx context.Context, slot string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateSlot(slot); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return errors.WrapPersistence(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WrapPersistence(err, "write slot")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapPersistence(err, "close slot")
	}
	if err := os.Rename(tmp.Name(), s.Path(slot)); err != nil {
		return errors.WrapPersistence(err, "replace slot")
	}
	return nil
}

// Get reads the slot file.
func (s *FileStore) Get(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(slot))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(errors.ErrSlotNotFound, "slot %q", slot)
	}
	if err != nil {
		return nil, errors.WrapPersistence(err, "read slot")
	}
	return data, nil
}

// Slots lists every *.alderchess file in the directory.
func (s *FileStore) Slots(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.WrapPersistence(err, "list slots")
	}

	var slots []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, FileExt) {
			continue
		}
		slots = append(slots, strings.TrimSuffix(name, FileExt))
	}
	sort.Strings(slots)
	return slots, nil
}

// Close is a no-op; files are closed after every call.
func (s *FileStore) Close() error {
	return nil
}
