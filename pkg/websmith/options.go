package websmith

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultWaitTimeout   = 12 * time.Second
	DefaultPollInterval  = 500 * time.Millisecond
	DefaultSettleTimeout = 30 * time.Second

	sessionTracer = "websmith.session"
)

// WaitConfig bounds the Wait primitive. Zero fields fall back to the
// package defaults.
type WaitConfig struct {
	Timeout       time.Duration
	PollInterval  time.Duration
	SettleTimeout time.Duration
}

func (c WaitConfig) withDefaults() WaitConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultWaitTimeout
	}

	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}

	if c.SettleTimeout <= 0 {
		c.SettleTimeout = DefaultSettleTimeout
	}

	return c
}

type options struct {
	logger   *zap.Logger
	tracer   trace.Tracer
	observer Observer
	wait     WaitConfig
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func WithWaitConfig(cfg WaitConfig) Option {
	return func(o *options) {
		o.wait = cfg
	}
}

func WithWaitTimeout(d time.Duration) Option {
	return func(o *options) {
		o.wait.Timeout = d
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		o.wait.PollInterval = d
	}
}

func WithSettleTimeout(d time.Duration) Option {
	return func(o *options) {
		o.wait.SettleTimeout = d
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(sessionTracer),
		observer: nopObserver{},
	}

	for _, opt := range opts {
		opt(&o)
	}

	o.wait = o.wait.withDefaults()

	return o
}

// Observer receives the outcome of every action and wait. Implementations
// must be safe for concurrent use when sessions run in parallel.
type Observer interface {
	ObserveAction(action string, elapsed time.Duration, err error)
	ObserveWait(condition string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveAction(string, time.Duration, error) {}
func (nopObserver) ObserveWait(string, time.Duration, error)   {}
