package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// resetLogger resets the global logger state for testing
func resetLogger() {
	baseLogger = nil
	initBaseLoggerOnce = sync.Once{}
}

// observe swaps the base logger for an in-memory observer at the given level.
func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(level)
	baseLogger = zap.New(core).Sugar()
	t.Cleanup(resetLogger)

	return logs
}

func TestInit(t *testing.T) {
	t.Run("successful initialization with valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			resetLogger()
			err := Init(level)
			require.NoError(t, err, level)
			assert.NotNil(t, baseLogger, level)
		}
	})

	t.Run("error with invalid level", func(t *testing.T) {
		resetLogger()
		err := Init("invalid")
		assert.Error(t, err)
		assert.Nil(t, baseLogger)
	})

	t.Run("init only once", func(t *testing.T) {
		resetLogger()

		require.NoError(t, Init("debug"))
		firstLogger := baseLogger

		require.NoError(t, Init("error"))
		assert.Equal(t, firstLogger, baseLogger, "Init() should only initialize once")
	})
}

func TestHelpersBeforeInit(t *testing.T) {
	resetLogger()

	assert.NotPanics(t, func() {
		Debug(t.Context(), "debug")
		Info(t.Context(), "info")
		Warn(t.Context(), "warn")
		Error(t.Context(), "error")
	})
	assert.NoError(t, Sync())
}

func TestDerive(t *testing.T) {
	t.Run("derived fields are attached to later entries", func(t *testing.T) {
		logs := observe(t, zapcore.DebugLevel)

		ctx := Derive(t.Context(), "operation", "GetBalance")
		Info(ctx, "fetching", "address", "0xabc")

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "fetching", entries[0].Message)
		assert.Equal(t, "GetBalance", entries[0].ContextMap()["operation"])
		assert.Equal(t, "0xabc", entries[0].ContextMap()["address"])
	})

	t.Run("derive nests on top of an existing context logger", func(t *testing.T) {
		logs := observe(t, zapcore.DebugLevel)

		ctx := Derive(t.Context(), "first", 1)
		ctx = Derive(ctx, "second", 2)
		Warn(ctx, "nested")

		fields := logs.All()[0].ContextMap()
		assert.EqualValues(t, 1, fields["first"])
		assert.EqualValues(t, 2, fields["second"])
	})

	t.Run("derive with no key-value pairs", func(t *testing.T) {
		observe(t, zapcore.DebugLevel)

		ctx := Derive(t.Context())
		l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger)
		assert.True(t, ok)
		assert.NotNil(t, l)
	})
}

func TestDeriveFromCtx(t *testing.T) {
	t.Run("adds trace identifiers when a span is active", func(t *testing.T) {
		logs := observe(t, zapcore.DebugLevel)

		tp := sdktrace.NewTracerProvider()
		defer func() { _ = tp.Shutdown(t.Context()) }()

		ctx, span := tp.Tracer("test").Start(t.Context(), "test-span")
		defer span.End()

		Debug(ctx, "traced")

		fields := logs.All()[0].ContextMap()
		assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
		assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	})

	t.Run("omits trace identifiers without a span", func(t *testing.T) {
		logs := observe(t, zapcore.DebugLevel)

		Debug(t.Context(), "untraced")

		fields := logs.All()[0].ContextMap()
		assert.NotContains(t, fields, "trace_id")
	})
}

func TestLevels(t *testing.T) {
	logs := observe(t, zapcore.WarnLevel)

	Debug(t.Context(), "dropped")
	Info(t.Context(), "dropped")
	Warn(t.Context(), "kept")
	Error(t.Context(), "kept")

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
