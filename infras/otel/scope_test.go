package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"hotelbook/infras/otel"
)

type roomStatus string

func (s roomStatus) String() string { return string(s) }

func record(t *testing.T, use func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)

	use(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_SetAttributes(t *testing.T) {
	at := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.id":   int64(42),
			"room.count":   3,
			"occupancy":    37.5,
			"walk_in":      true,
			"room.status":  roomStatus("occupied"),
			"check_in":     at,
			"room.numbers": []string{"101", "102"},
			"room.ids":     []int64{1, 2},
			"other":        struct{ N int }{N: 7},
		})
	})

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		got[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(42), got["booking.id"].AsInt64())
	assert.Equal(t, int64(3), got["room.count"].AsInt64())
	assert.InDelta(t, 37.5, got["occupancy"].AsFloat64(), 0.001)
	assert.True(t, got["walk_in"].AsBool())
	assert.Equal(t, "occupied", got["room.status"].AsString())
	assert.Equal(t, "2025-03-10T12:00:00Z", got["check_in"].AsString())
	assert.Equal(t, []string{"101", "102"}, got["room.numbers"].AsStringSlice())
	assert.Equal(t, []int64{1, 2}, got["room.ids"].AsInt64Slice())
	assert.Equal(t, "{7}", got["other"].AsString())
}

func TestScope_TraceError(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceIfError(nil)
	})
	assert.Equal(t, codes.Unset, span.Status().Code)

	span = record(t, func(scope otel.Scope) {
		scope.AddEvent("room.locked")
		scope.TraceIfError(errors.New("room 101 is booked for the requested dates"))
	})
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "room 101 is booked for the requested dates", span.Status().Description)
	require.Len(t, span.Events(), 2)
	assert.Equal(t, "room.locked", span.Events()[0].Name)
	assert.Equal(t, "exception", span.Events()[1].Name)
}
