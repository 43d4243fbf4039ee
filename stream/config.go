package stream

import (
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/validation"
)

const (
	DefaultBufferSize = 16
	DefaultTraceLevel = "debug"
)

// Config tunes the bridges and tracing of the stream package.
type Config struct {
	// BufferSize is the channel capacity used by Values.
	BufferSize int `yaml:"buffer_size" mapstructure:"buffer_size" validate:"gte=1"`
	// TraceLevel is the log level Trace writes events at.
	TraceLevel string `yaml:"trace_level" mapstructure:"trace_level" validate:"oneof=trace debug info warn error"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.BufferSize == 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.TraceLevel == "" {
		c.TraceLevel = DefaultTraceLevel
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// Option configures stream helpers that buffer or log.
type Option func(*options)

type options struct {
	cfg Config
	log *logger.Logger
}

// WithConfig replaces the whole configuration. Unset fields get defaults.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		cfg.ApplyDefaults()
		o.cfg = cfg
	}
}

// WithBufferSize sets the buffer used by Values. Values below 1 are ignored.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cfg.BufferSize = n
		}
	}
}

// WithTraceLevel sets the level Trace logs at.
func WithTraceLevel(level string) Option {
	return func(o *options) {
		if logger.IsLevel(level) {
			o.cfg.TraceLevel = level
		}
	}
}

// WithLogger sets the logger. The default is logger.Get("stream").
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func applyOptions(opts []Option) options {
	o := options{}
	o.cfg.ApplyDefaults()
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("stream")
	}
	return o
}
