package fs9721

import (
	"fmt"
	"time"

	"github.com/arloliu/go-dmm/logger"
)

// Default configuration values matching the chipset's documented behavior.
const (
	// DefaultRetries is the default number of frame read attempts.
	DefaultRetries = 3

	// DefaultTimeout is the default serial read timeout. The meter emits a
	// frame every 250ms, so 3 seconds of silence means it is not talking.
	DefaultTimeout = 3 * time.Second

	// DefaultBaudRate is the fixed line speed of FS9721-family chipsets.
	DefaultBaudRate = 2400
)

// MaxRetries bounds the configurable retry limit.
const MaxRetries = 100

// Config holds all configuration for a Client.
type Config struct {
	retries  int
	timeout  time.Duration
	baudRate int

	logger logger.Logger
}

// NewConfig creates a Config with defaults, then applies opts in order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		retries:  DefaultRetries,
		timeout:  DefaultTimeout,
		baudRate: DefaultBaudRate,
		logger:   logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Retries returns the frame read retry limit.
func (cfg *Config) Retries() int { return cfg.retries }

// Timeout returns the serial read timeout.
func (cfg *Config) Timeout() time.Duration { return cfg.timeout }

// BaudRate returns the serial line speed.
func (cfg *Config) BaudRate() int { return cfg.baudRate }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// Option is a functional option for configuring a Client.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithRetries sets the number of frame read attempts before a read fails
// with ErrReadFailure. Valid range is [1, MaxRetries].
func WithRetries(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 1 || n > MaxRetries {
			return fmt.Errorf("fs9721: retries %d out of range [1, %d]", n, MaxRetries)
		}
		cfg.retries = n

		return nil
	})
}

// WithTimeout sets the serial read timeout. Only meaningful when the client
// owns the port (see Open); must be positive.
func WithTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return fmt.Errorf("fs9721: timeout %v must be positive", d)
		}
		cfg.timeout = d

		return nil
	})
}

// WithBaudRate overrides the serial line speed. FS9721 chipsets are fixed at
// 2400 baud; this exists for meters behind rate-converting adapters.
func WithBaudRate(rate int) Option {
	return optFunc(func(cfg *Config) error {
		if rate <= 0 {
			return fmt.Errorf("fs9721: baud rate %d must be positive", rate)
		}
		cfg.baudRate = rate

		return nil
	})
}

// WithLogger sets the logger used by the client.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return fmt.Errorf("fs9721: logger is nil")
		}
		cfg.logger = l

		return nil
	})
}
