// Package config provides runtime configuration for alderchess.
package config

import (
	"runtime"

	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/storage"
)

// Config holds every setting the CLI and the session layer read.
type Config struct {
	Storage *StorageConfig
	Logging *LoggingConfig
	Perft   *PerftConfig
	Output  *OutputConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Storage: NewStorageConfig(),
		Logging: NewLoggingConfig(),
		Perft:   NewPerftConfig(),
		Output:  NewOutputConfig(),
	}
}

// Validate reports the first setting that cannot be used.
// The returned error wraps errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Storage == nil || c.Logging == nil || c.Perft == nil || c.Output == nil {
		return errors.Wrap(errors.ErrInvalidConfig, "missing section")
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.Perft.Validate()
}

// StorageConfig selects where saved games live.
type StorageConfig struct {
	// Backend is storage.BackendFile or storage.BackendBadger.
	Backend string

	// DataDir overrides the platform data directory when non-empty.
	DataDir string

	// Slot is the save slot used by single-game commands.
	Slot string
}

// NewStorageConfig creates a StorageConfig with default values.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		Backend: storage.BackendFile,
		Slot:    storage.DefaultSlot,
	}
}

// Validate checks the backend name and the slot.
func (s *StorageConfig) Validate() error {
	switch s.Backend {
	case storage.BackendFile, storage.BackendBadger:
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "storage backend %q", s.Backend)
	}
	if err := storage.ValidateSlot(s.Slot); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "storage slot %q", s.Slot)
	}
	return nil
}

// Open opens the configured store.
func (s *StorageConfig) Open() (storage.Store, error) {
	return storage.Open(s.Backend, s.DataDir)
}

// PerftConfig holds the defaults of the perft command.
type PerftConfig struct {
	// Depth is the default search depth in plies.
	Depth int

	// Workers bounds the number of root moves counted at once.
	Workers int

	// CacheEntries sizes the transposition table (0 disables it).
	CacheEntries int
}

// NewPerftConfig creates a PerftConfig with default values.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{
		Depth:   3,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Validate checks that depth and workers are in range.
func (p *PerftConfig) Validate() error {
	if p.Depth < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft depth %d", p.Depth)
	}
	if p.Workers < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft workers %d", p.Workers)
	}
	if p.CacheEntries < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft cache entries %d", p.CacheEntries)
	}
	return nil
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSONFormat enables JSON position reports instead of text diagrams
	JSONFormat bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{}
}
