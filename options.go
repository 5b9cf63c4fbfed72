package canopy

import "go.uber.org/zap"

// Config holds engine configuration. All fields are exported to allow
// inspection after construction.
type Config struct {
	// ComputeCacheSize bounds the cross-call count cache (see cache.go). It has
	// no effect on the unique table or the per-operation compute tables, which
	// are sized only by weak-reference liveness, never by an LRU policy.
	ComputeCacheSize int

	// Logger receives diagnostic messages: engine construction, and stale
	// weak-reference evictions from the unique tables and the BDD ite compute
	// table (the ZDD compute tables evict without logging). Never required
	// for correctness.
	Logger *zap.Logger
}

// Option configures an engine using the functional options pattern. Options
// are applied in the order given to NewBooleanEngine / NewCombinationEngine.
type Option func(*Config)

// WithComputeCacheSize bounds the number of node identities the cross-call
// count cache retains. Values <= 0 are rejected at engine construction with
// ErrCacheSize.
func WithComputeCacheSize(n int) Option {
	return func(c *Config) {
		c.ComputeCacheSize = n
	}
}

// WithLogger overrides the engine's logger. A nil logger is treated as
// zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// newConfig applies sensible defaults, then the given options, in order.
//
// Defaults:
//   - ComputeCacheSize: 4096
//   - Logger: zap.NewNop()
func newConfig(opts ...Option) *Config {
	cfg := &Config{
		ComputeCacheSize: 4096,
		Logger:           zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return cfg
}
