package sse

import (
	"time"

	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/stream"
)

// DefaultKeepAlive is the idle interval after which a keepalive comment is
// written. Proxies commonly drop connections idle for 60s.
const DefaultKeepAlive = 30 * time.Second

// Option configures Serve and the handler adapters.
type Option func(*options)

type options struct {
	name       string
	keepAlive  time.Duration
	log        *logger.Logger
	streamOpts []stream.Option
}

// WithName names the stream in logs and in failure events. Default "sse".
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithKeepAlive sets the keepalive interval. Zero or negative disables it.
func WithKeepAlive(d time.Duration) Option {
	return func(o *options) { o.keepAlive = d }
}

// WithLogger sets the logger. The default is logger.Get("sse").
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithStreamOptions passes options to the underlying stream.Values bridge,
// for example stream.WithBufferSize.
func WithStreamOptions(opts ...stream.Option) Option {
	return func(o *options) { o.streamOpts = append(o.streamOpts, opts...) }
}

func applyOptions(opts []Option) options {
	o := options{name: "sse", keepAlive: DefaultKeepAlive}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("sse")
	}
	return o
}
