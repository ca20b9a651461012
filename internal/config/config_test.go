package config

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/storage"
)

// TestStorageConfig_Defaults verifies StorageConfig has sensible defaults
func TestStorageConfig_Defaults(t *testing.T) {
	cfg := NewStorageConfig()

	if cfg.Backend != storage.BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Backend, storage.BackendFile)
	}
	if cfg.DataDir != "" {
		t.Errorf("DataDir = %q, want empty", cfg.DataDir)
	}
	if cfg.Slot != storage.DefaultSlot {
		t.Errorf("Slot = %q, want %q", cfg.Slot, storage.DefaultSlot)
	}
}

func TestOutputConfig_Defaults(t *testing.T) {
	if NewOutputConfig().JSONFormat {
		t.Error("JSONFormat should be false by default")
	}
}

func TestLoggingConfig_Defaults(t *testing.T) {
	cfg := NewLoggingConfig()

	if cfg.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Level)
	}
	if cfg.Development {
		t.Error("Development should be false by default")
	}
}

func TestPerftConfig_Defaults(t *testing.T) {
	cfg := NewPerftConfig()

	if cfg.Depth != 3 {
		t.Errorf("Depth = %d, want 3", cfg.Depth)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", cfg.Workers)
	}
	if cfg.CacheEntries != 0 {
		t.Errorf("CacheEntries = %d, want 0", cfg.CacheEntries)
	}
}

func TestNewConfig_Valid(t *testing.T) {
	cfg := NewConfig()
	if cfg.Storage == nil || cfg.Logging == nil || cfg.Perft == nil || cfg.Output == nil {
		t.Fatal("NewConfig left a section nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfigBuilder(t *testing.T) {
	cfg := NewConfigBuilder().
		WithBackend(storage.BackendBadger).
		WithDataDir("/tmp/alder").
		WithSlot("ladder").
		WithLogLevel("debug").
		WithDevelopmentLogging(true).
		WithPerftDepth(5).
		WithPerftWorkers(2).
		WithPerftCache(1 << 16).
		WithJSONOutput(true).
		Build()

	if cfg.Storage.Backend != storage.BackendBadger {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, storage.BackendBadger)
	}
	if cfg.Storage.DataDir != "/tmp/alder" {
		t.Errorf("DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Storage.Slot != "ladder" {
		t.Errorf("Slot = %q", cfg.Storage.Slot)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Development {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Perft.Depth != 5 || cfg.Perft.Workers != 2 || cfg.Perft.CacheEntries != 1<<16 {
		t.Errorf("Perft = %+v", cfg.Perft)
	}
	if !cfg.Output.JSONFormat {
		t.Error("JSONFormat should be set")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfig_ValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Config
	}{
		{"unknown backend", func() *Config { return NewConfigBuilder().WithBackend("sqlite").Build() }},
		{"empty slot", func() *Config { return NewConfigBuilder().WithSlot("").Build() }},
		{"slot with separator", func() *Config { return NewConfigBuilder().WithSlot("a/b").Build() }},
		{"bad log level", func() *Config { return NewConfigBuilder().WithLogLevel("loud").Build() }},
		{"negative depth", func() *Config { return NewConfigBuilder().WithPerftDepth(-1).Build() }},
		{"no workers", func() *Config { return NewConfigBuilder().WithPerftWorkers(0).Build() }},
		{"negative cache", func() *Config { return NewConfigBuilder().WithPerftCache(-1).Build() }},
		{"missing section", func() *Config { return &Config{Storage: NewStorageConfig()} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if !stderrors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoggingConfig_Logger(t *testing.T) {
	tests := []struct {
		level       string
		development bool
	}{
		{"debug", false},
		{"info", true},
		{"error", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &LoggingConfig{Level: tt.level, Development: tt.development}
			logger, err := cfg.Logger(&bytes.Buffer{})
			if err != nil {
				t.Fatalf("Logger() error = %v", err)
			}
			level, err := zapcore.ParseLevel(tt.level)
			if err != nil {
				t.Fatal(err)
			}
			if ce := logger.Check(level, "probe"); ce == nil {
				t.Errorf("logger does not enable level %s", tt.level)
			}
		})
	}

	if _, err := (&LoggingConfig{Level: "loud"}).Logger(&bytes.Buffer{}); !stderrors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("Logger() with bad level = %v, want ErrInvalidConfig", err)
	}
}

func TestLoggingConfig_LoggerWritesToWriter(t *testing.T) {
	tests := []struct {
		name        string
		development bool
	}{
		{"production", false},
		{"development", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := (&LoggingConfig{Level: "info", Development: tt.development}).Logger(&buf)
			if err != nil {
				t.Fatalf("Logger() error = %v", err)
			}
			logger.Info("session started", zap.String("slot", "autosave"))
			logger.Debug("below the level")
			if err := logger.Sync(); err != nil {
				t.Fatalf("Sync() error = %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, "session started") || !strings.Contains(out, "autosave") {
				t.Errorf("log output = %q, want the message and its field", out)
			}
			if strings.Contains(out, "below the level") {
				t.Errorf("log output = %q, debug entry should be filtered", out)
			}
		})
	}
}

func TestStorageConfig_Open(t *testing.T) {
	cfg := NewConfigBuilder().WithDataDir(t.TempDir()).Build()
	store, err := cfg.Storage.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if _, ok := store.(*storage.FileStore); !ok {
		t.Errorf("Open() = %T, want *storage.FileStore", store)
	}
}
