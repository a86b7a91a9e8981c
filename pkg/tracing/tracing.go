package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"websmith/pkg/apperr"
)

type Span struct {
	span   trace.Span
	logger *zap.Logger
	ctx    context.Context
}

func StartSpan(ctx context.Context, tracer trace.Tracer, logger *zap.Logger, name string, attrs ...attribute.KeyValue) (context.Context, *Span) {
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))

	return ctx, &Span{
		span:   span,
		logger: logger,
		ctx:    ctx,
	}
}

// End closes the span, recording err when non-nil. An *apperr.Error also
// contributes its code and reason as span attributes. Failures are logged at
// debug level so they are visible without an exporter.
func (s *Span) End(err error) {
	if err != nil {
		s.span.SetStatus(codes.Error, err.Error())
		s.span.RecordError(err)
		s.span.SetAttributes(errorAttributes(err)...)
		s.logger.Debug("span failed", zap.Error(err))
	} else {
		s.span.SetStatus(codes.Ok, "")
	}

	s.span.End()
}

func (s *Span) AddEvent(name string, attrs ...attribute.KeyValue) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

func (s *Span) SetAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}

func (s *Span) Context() context.Context {
	return s.ctx
}

func errorAttributes(err error) []attribute.KeyValue {
	var attrs []attribute.KeyValue

	if code := apperr.CodeOf(err); code != "" {
		attrs = append(attrs, attribute.String("error.code", code))
	}

	if reason, ok := apperr.Meta(err, apperr.MetaReason); ok {
		if r, ok := reason.(string); ok {
			attrs = append(attrs, attribute.String("error.reason", r))
		}
	}

	return attrs
}
