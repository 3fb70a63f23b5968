package snapshot

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/format"
	"github.com/arloliu/axmeta/internal/options"
)

// Config holds encoder and reader settings. Open only honors WithLogger.
type Config struct {
	compression     format.CompressionType
	bigEndian       bool
	skipUnsupported bool
	logger          *zap.Logger
}

// Option configures an Encoder or a Reader.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{
		compression: format.CompressionS2,
		logger:      zap.NewNop(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate implements options.Validator.
func (c *Config) Validate() error {
	if !c.compression.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, uint8(c.compression))
	}

	return nil
}

// WithCompression selects the payload codec. The default is format.CompressionS2.
func WithCompression(c format.CompressionType) Option {
	return options.NoError(func(cfg *Config) {
		cfg.compression = c
	})
}

// WithBigEndian writes numeric fields most significant byte first.
func WithBigEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.bigEndian = true
	})
}

// WithLittleEndian writes numeric fields least significant byte first. This
// is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.bigEndian = false
	})
}

// WithSkipUnsupported makes the encoder leave out items it cannot store,
// logging each at debug level, instead of failing.
func WithSkipUnsupported() Option {
	return options.NoError(func(cfg *Config) {
		cfg.skipUnsupported = true
	})
}

// WithLogger sets the logger for skipped items and encoding statistics.
func WithLogger(logger *zap.Logger) Option {
	return options.New(func(cfg *Config) error {
		if logger == nil {
			return errors.New("snapshot: nil logger")
		}
		cfg.logger = logger

		return nil
	})
}
