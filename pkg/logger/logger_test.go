package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"technotes/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("builds logger for both environments and any known level", func(t *testing.T) {
		levels := []string{"debug", "info", "warn", "error", ""}

		for _, env := range []logger.Environment{logger.Development, logger.Production} {
			for _, level := range levels {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			}
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "chatty")
		require.Error(t, err)
		assert.Nil(t, log)
		assert.Contains(t, err.Error(), "failed to parse log level")
	})

	t.Run("With creates new logger instance", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		newLog := log.With(zap.String("key", "value"))
		assert.NotNil(t, newLog)
		assert.NotSame(t, log, newLog)
	})

	t.Run("logging methods do not panic", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := context.Background()
		assert.NotPanics(t, func() {
			log.Debug(ctx, "debug message")
			log.Info(ctx, "info message")
			log.Warn(ctx, "warning message")
			log.Error(ctx, "error message")
		})
	})
}

func TestFromContext(t *testing.T) {
	t.Run("success when logger exists in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		retrievedLogger, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrievedLogger)
	})

	t.Run("error when no logger in context", func(t *testing.T) {
		retrievedLogger, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, retrievedLogger)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("context hierarchy maintains logger", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		type childKeyType struct{}
		childKey := childKeyType{}

		loggerCtx := logger.NewContext(context.Background(), testLogger)
		childCtx := context.WithValue(loggerCtx, childKey, "child-value")

		retrievedLogger, err := logger.FromContext(childCtx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrievedLogger)
	})
}

func TestLog(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	t.Run("returns logger from context when available", func(t *testing.T) {
		contextLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		globalLogger, err := logger.NewLogger(logger.Production, "error")
		require.NoError(t, err)
		logger.SetGlobalLogger(globalLogger)

		ctx := logger.NewContext(context.Background(), contextLogger)

		result := logger.Log(ctx)
		assert.Same(t, contextLogger, result)
		assert.NotSame(t, globalLogger, result)
	})

	t.Run("returns global logger when no logger in context", func(t *testing.T) {
		globalLogger, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)
		logger.SetGlobalLogger(globalLogger)

		result := logger.Log(context.Background())
		assert.Same(t, globalLogger, result)
	})

	t.Run("returns the same fallback logger instance each time", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		ctx := context.Background()
		result1 := logger.Log(ctx)
		result2 := logger.Log(ctx)

		require.NotNil(t, result1)
		assert.Same(t, result1, result2, "fallback logger should be a singleton")
	})
}

func TestInitGlobalLogger(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	t.Run("successfully initializes global logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		err := logger.InitGlobalLogger(logger.Development)
		require.NoError(t, err)

		assert.NotNil(t, logger.Log(context.Background()))
	})

	t.Run("keeps existing global logger on repeated init", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "info"))
		firstLogger := logger.Log(context.Background())
		require.NotNil(t, firstLogger)

		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
		secondLogger := logger.Log(context.Background())

		assert.Same(t, firstLogger, secondLogger)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("stores provided request ID in context", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "test-request-id-123")

		retrievedID, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "test-request-id-123", retrievedID)
	})

	t.Run("generates request ID when empty string provided", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		retrievedID, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.NotEmpty(t, retrievedID)
	})

	t.Run("returns false when no request ID in context", func(t *testing.T) {
		retrievedID, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
		assert.Empty(t, retrievedID)
	})

	t.Run("generated IDs are valid unique UUIDs", func(t *testing.T) {
		id1 := logger.GenerateRequestID()
		id2 := logger.GenerateRequestID()

		assert.NotEqual(t, id1, id2)

		parsedUUID, err := uuid.Parse(id1)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsedUUID.Version())
	})
}

func TestWithRequestID(t *testing.T) {
	t.Run("adds request ID field when present in context", func(t *testing.T) {
		baseLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewRequestIDContext(context.Background(), "test-request-id-456")

		loggerWithID := baseLogger.WithRequestID(ctx)
		assert.NotSame(t, baseLogger, loggerWithID)

		assert.NotPanics(t, func() {
			loggerWithID.Info(ctx, "test message with request ID")
		})
	})

	t.Run("returns original logger when no request ID in context", func(t *testing.T) {
		baseLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		resultLogger := baseLogger.WithRequestID(context.Background())
		assert.Same(t, baseLogger, resultLogger)
	})
}
