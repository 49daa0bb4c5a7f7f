package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	atomic := zap.NewAtomicLevelAt(level)
	core, logs := observer.New(atomic)
	return &Logger{sugar: zap.New(core).Sugar().Named("test"), level: atomic}, logs
}

func TestLoggerLevelFiltering(t *testing.T) {
	l, logs := newObservedLogger(zapcore.InfoLevel)

	l.Debug("debug %s", "message")
	l.Info("info %s", "message")
	l.Warn("warning %s", "message")
	l.Error("error %s", "message")

	entries := logs.All()
	assert.Len(t, entries, 3, "debug should be filtered at INFO level")
	assert.Equal(t, "info message", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestLoggerSetLevel(t *testing.T) {
	l, logs := newObservedLogger(zapcore.InfoLevel)

	l.Debug("dropped")
	l.SetLevel(DEBUG)
	l.Debug("kept")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
}

func TestLoggerWithComponent(t *testing.T) {
	l, logs := newObservedLogger(zapcore.InfoLevel)

	l.WithComponent("decoder").Info("hello")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "test.decoder", entries[0].LoggerName)
}

func TestLoggerWithError(t *testing.T) {
	l, logs := newObservedLogger(zapcore.InfoLevel)

	l.WithError(assert.AnError).Error("request failed")

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Contains(t, fields, "error")
}

func TestNewWithoutFileSink(t *testing.T) {
	l := New(INFO, "test", nil)
	assert.NotNil(t, l)
	l.Info("console only")
}
