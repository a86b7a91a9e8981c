package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"websmith/pkg/apperr"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	return recorder, tp
}

func TestStartSpan_EndOK(t *testing.T) {
	recorder, tp := newRecorder()

	_, span := StartSpan(context.Background(), tp.Tracer("test"), zap.NewNop(), "Go", attribute.String("url", "http://x"))
	span.AddEvent("navigating")
	span.End(nil)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "Go", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "navigating", ended[0].Events()[0].Name)
}

func TestStartSpan_EndWithError(t *testing.T) {
	recorder, tp := newRecorder()

	ctx, span := StartSpan(context.Background(), tp.Tracer("test"), zap.NewNop(), "Hover")
	assert.Equal(t, ctx, span.Context())
	span.SetAttributes(attribute.String("locator", "id=missing"))
	span.End(errors.New("not interactable"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "not interactable", ended[0].Status().Description)
}

func TestStartSpan_EndWithAppError(t *testing.T) {
	recorder, tp := newRecorder()

	_, span := StartSpan(context.Background(), tp.Tracer("test"), zap.NewNop(), "Wait")
	span.End(apperr.Wrap("Wait", apperr.CodeTimeout, errors.New("gave up"), map[string]any{
		apperr.MetaReason: "element_not_present",
	}))

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	attrs := map[attribute.Key]string{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value.AsString()
	}

	assert.Equal(t, apperr.CodeTimeout, attrs["error.code"])
	assert.Equal(t, "element_not_present", attrs["error.reason"])
}
