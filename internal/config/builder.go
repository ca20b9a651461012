package config

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithBackend sets the storage backend.
func (b *ConfigBuilder) WithBackend(backend string) *ConfigBuilder {
	b.cfg.Storage.Backend = backend
	return b
}

// WithDataDir sets the data directory.
func (b *ConfigBuilder) WithDataDir(dir string) *ConfigBuilder {
	b.cfg.Storage.DataDir = dir
	return b
}

// WithSlot sets the save slot.
func (b *ConfigBuilder) WithSlot(slot string) *ConfigBuilder {
	b.cfg.Storage.Slot = slot
	return b
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Logging.Level = level
	return b
}

// WithDevelopmentLogging enables the development encoder.
func (b *ConfigBuilder) WithDevelopmentLogging(enabled bool) *ConfigBuilder {
	b.cfg.Logging.Development = enabled
	return b
}

// WithPerftDepth sets the default perft depth.
func (b *ConfigBuilder) WithPerftDepth(depth int) *ConfigBuilder {
	b.cfg.Perft.Depth = depth
	return b
}

// WithPerftWorkers sets the perft worker limit.
func (b *ConfigBuilder) WithPerftWorkers(n int) *ConfigBuilder {
	b.cfg.Perft.Workers = n
	return b
}

// WithPerftCache sets the transposition table size.
func (b *ConfigBuilder) WithPerftCache(entries int) *ConfigBuilder {
	b.cfg.Perft.CacheEntries = entries
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}
