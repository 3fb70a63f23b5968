package store

import (
	"errors"

	"go.uber.org/zap"

	"github.com/arloliu/axmeta/internal/options"
	"github.com/arloliu/axmeta/meta"
)

// Config holds the construction parameters of stores and views.
type Config struct {
	capacity  int
	readOnly  bool
	initial   []meta.Item
	logger    *zap.Logger
	hasLogger bool
}

// Option configures a store or view at construction.
type Option = options.Option[*Config]

// Validate implements options.Validator.
func (c *Config) Validate() error {
	if c.capacity < 0 {
		return errors.New("store: capacity cannot be negative")
	}

	return nil
}

// WithCapacity pre-sizes a Memory store for n items.
func WithCapacity(n int) Option {
	return options.NoError(func(c *Config) {
		c.capacity = n
	})
}

// WithReadOnly makes a Memory store read-only, holding exactly items. The
// status is permanent: later Add calls return errs.ErrReadOnly.
func WithReadOnly(items ...meta.Item) Option {
	return options.NoError(func(c *Config) {
		c.readOnly = true
		c.initial = append(c.initial, items...)
	})
}

// WithLogger sets the logger used to report items skipped during enumeration.
// Views inherit the logger of their source store unless one is given.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logger
		c.hasLogger = logger != nil
	})
}

func newConfig(fallback *zap.Logger, opts []Option) (*Config, error) {
	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if !cfg.hasLogger {
		cfg.logger = fallback
	}

	return cfg, nil
}
