package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug level with text format", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info level with json format", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "upper case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "invalid", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.Level())

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput(&buf, "debug", "json")

	logger.Debug("saved document", F(FieldLocation, "/data/donnees-comptes.json"))

	assert.Contains(t, buf.String(), `"msg":"saved document"`)
	assert.Contains(t, buf.String(), `"location":"/data/donnees-comptes.json"`)
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		existingLogger := logrus.New()
		logger := NewLogrusAdapterFromLogger(existingLogger)

		adapter, ok := logger.(*LogrusAdapter)
		require.True(t, ok)
		assert.Equal(t, existingLogger, adapter.logger)
	})

	t.Run("with nil logger creates new one", func(t *testing.T) {
		adapter, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
		require.True(t, ok)
		assert.NotNil(t, adapter.logger)
	})
}

func TestLogrusAdapter_LoggingMethods(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...Field)
		message string
		fields  []Field
	}{
		{
			name:    "Debug with fields",
			logFunc: func(l Logger, msg string, fields ...Field) { l.Debug(msg, fields...) },
			message: "debug message",
			fields:  []Field{{Key: "key1", Value: "value1"}},
		},
		{
			name:    "Info with fields",
			logFunc: func(l Logger, msg string, fields ...Field) { l.Info(msg, fields...) },
			message: "info message",
			fields:  []Field{{Key: "key2", Value: "value2"}},
		},
		{
			name:    "Warn with fields",
			logFunc: func(l Logger, msg string, fields ...Field) { l.Warn(msg, fields...) },
			message: "warn message",
			fields:  []Field{{Key: "key3", Value: "value3"}},
		},
		{
			name:    "Error with fields",
			logFunc: func(l Logger, msg string, fields ...Field) { l.Error(msg, fields...) },
			message: "error message",
			fields:  []Field{{Key: "key4", Value: "value4"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedLogger(logrus.DebugLevel)

			tt.logFunc(logger, tt.message, tt.fields...)

			output := buf.String()
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, tt.fields[0].Key)
		})
	}
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.InfoLevel)

	logger.
		WithField(FieldOperation, "save").
		WithFields(F(FieldBackend, "file")).
		WithError(errors.New("disk full")).
		Error("operation failed")

	output := buf.String()
	assert.Contains(t, output, "operation failed")
	assert.Contains(t, output, "operation=save")
	assert.Contains(t, output, "backend=file")
	assert.Contains(t, output, "disk full")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConvertFields(t *testing.T) {
	logrusFields := convertFields([]Field{
		{Key: "key1", Value: "value1"},
		{Key: "key2", Value: 42},
	})

	assert.Len(t, logrusFields, 2)
	assert.Equal(t, "value1", logrusFields["key1"])
	assert.Equal(t, 42, logrusFields["key2"])
	assert.Len(t, convertFields(nil), 0)
}

func TestOrDefault(t *testing.T) {
	mock := NewMockLogger()
	assert.Same(t, mock, OrDefault(mock))
	assert.NotNil(t, OrDefault(nil))
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()
	testErr := errors.New("boom")

	mock.WithField(FieldOperation, "load").WithError(testErr).Warn("load failed")
	mock.Info("done")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, testErr, entries[0].Error)
	op, ok := entries[0].FieldValue(FieldOperation)
	assert.True(t, ok)
	assert.Equal(t, "load", op)

	assert.True(t, mock.HasEntry("INFO", "done"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
