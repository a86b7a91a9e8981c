package websmith

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"websmith/pkg/apperr"
	"websmith/pkg/logg"
	"websmith/pkg/tracing"
)

// Session binds one Driver for the lifetime of a test. Every action and
// finder is a method on the session; once Close runs they fail with
// ErrNoBoundDriver. A Session is not meant to be shared between goroutines
// issuing actions, but Close may be called from anywhere.
type Session struct {
	id       uuid.UUID
	logger   *zap.Logger
	tracer   trace.Tracer
	observer Observer
	waitCfg  WaitConfig

	mu     sync.RWMutex
	driver Driver
	waiter *Waiter
}

// Open binds driver to a new Session.
func Open(driver Driver, opts ...Option) (*Session, error) {
	const op = "Open"

	if driver == nil {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeInvalidArgument, "nil_driver")
	}

	o := buildOptions(opts)
	id := uuid.New()
	logger := o.logger.With(zap.String(logg.Layer, "Session"), zap.String(logg.SessionID, id.String()))

	s := &Session{
		id:       id,
		logger:   logger,
		tracer:   o.tracer,
		observer: o.observer,
		waitCfg:  o.wait,
		driver:   driver,
		waiter:   NewWaiter(driver, o.wait, logger, o.observer),
	}

	logger.Info("Session opened",
		zap.Duration("wait_timeout", o.wait.Timeout),
		zap.Duration("poll_interval", o.wait.PollInterval))

	return s, nil
}

// With opens a Session on driver, runs fn and closes the session on the way
// out, including when fn panics.
func With(driver Driver, fn func(*Session) error, opts ...Option) (err error) {
	s, err := Open(driver, opts...)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(s)
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Bound reports whether the session still holds a driver.
func (s *Session) Bound() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.driver != nil
}

// Waiter exposes the session's wait primitive.
func (s *Session) Waiter() (*Waiter, error) {
	_, w, err := s.bound("Waiter")

	return w, err
}

// Close releases the driver reference. The driver itself is not quit; it
// belongs to whoever created it. Calling Close more than once is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.driver == nil {
		return nil
	}

	s.driver = nil
	s.waiter = nil
	s.logger.Info("Session closed")

	return nil
}

func (s *Session) bound(op string) (Driver, *Waiter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.driver == nil {
		return nil, nil, apperr.Wrap(op, apperr.CodeNoBoundDriver, ErrNoBoundDriver, map[string]any{
			apperr.MetaReason: "session_closed",
			apperr.MetaStage:  apperr.StageSession,
		})
	}

	return s.driver, s.waiter, nil
}

type call struct {
	name   string
	fields []zap.Field
	attrs  []attribute.KeyValue
}

func action(name string, fields ...zap.Field) call {
	c := call{name: name, fields: fields}

	for _, f := range fields {
		if f.Type == zapcore.StringType {
			c.attrs = append(c.attrs, attribute.String(f.Key, f.String))
		}
	}

	return c
}

// perform logs the action with its arguments, traces it and reports the
// outcome to the observer.
func perform[T any](ctx context.Context, s *Session, c call, fn func(ctx context.Context, d Driver, w *Waiter) (T, error)) (result T, err error) {
	logger := s.logger.With(zap.String(logg.Action, c.name))
	logger.Info("ACTION", c.fields...)

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, c.name, c.attrs...)
	start := time.Now()

	defer func() {
		step.End(err)
		s.observer.ObserveAction(c.name, time.Since(start), err)
	}()

	d, w, err := s.bound(c.name)
	if err != nil {
		return result, err
	}

	return fn(ctx, d, w)
}

func performErr(ctx context.Context, s *Session, c call, fn func(ctx context.Context, d Driver, w *Waiter) error) error {
	_, err := perform(ctx, s, c, func(ctx context.Context, d Driver, w *Waiter) (struct{}, error) {
		return struct{}{}, fn(ctx, d, w)
	})

	return err
}
