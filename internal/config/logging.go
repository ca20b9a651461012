package config

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/alderchess-go/internal/errors"
)

// LoggingConfig controls the zap logger built for the CLI.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn or error.
	Level string

	// Development switches to the console encoder with caller info.
	Development bool
}

// NewLoggingConfig creates a LoggingConfig with default values.
func NewLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level: "warn",
	}
}

// Validate checks that Level names a zap level.
func (l *LoggingConfig) Validate() error {
	if _, err := zapcore.ParseLevel(l.Level); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "log level %q", l.Level)
	}
	return nil
}

// Logger builds a logger writing to w at the configured level: JSON lines
// normally, console lines with caller info in development mode.
func (l *LoggingConfig) Logger(w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "log level %q", l.Level)
	}

	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	var opts []zap.Option
	if l.Development {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		opts = append(opts, zap.AddCaller(), zap.Development())
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core, opts...), nil
}
