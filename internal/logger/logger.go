// Package logger provides the leveled, component-tagged logger used across
// the module, backed by zap with an optional rotating file sink.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	// DEBUG level for detailed debugging information
	DEBUG LogLevel = iota
	// INFO level for general operational information
	INFO
	// WARN level for warning messages
	WARN
	// ERROR level for error messages
	ERROR
	// FATAL level for fatal errors that require immediate attention
	FATAL
)

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps a level name to a LogLevel, defaulting to INFO.
func ParseLevel(name string) LogLevel {
	switch name {
	case "debug":
		return DEBUG
	case "warn":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// FileConfig enables a rotating file sink in addition to stdout.
type FileConfig struct {
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"maxsize"` // megabytes
	MaxAge     int    `yaml:"maxage"`  // days
	MaxBackups int    `yaml:"maxbackups"`
	Compress   bool   `yaml:"compress"`
}

// Logger is a leveled logger with a component tag.
type Logger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// InitLogger initializes the default logger. file may be nil for
// console-only output.
func InitLogger(level LogLevel, component string, file *FileConfig) {
	once.Do(func() {
		defaultLogger = New(level, component, file)
	})
}

// New builds a standalone logger instance.
func New(level LogLevel, component string, file *FileConfig) *Logger {
	atomic := zap.NewAtomicLevelAt(level.zapLevel())

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), atomic),
	}
	if file != nil && file.Filename != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   file.Filename,
			MaxSize:    file.MaxSize,
			MaxAge:     file.MaxAge,
			MaxBackups: file.MaxBackups,
			Compress:   file.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder, sink, atomic))
	}

	z := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logger{sugar: z.Sugar().Named(component), level: atomic}
}

// GetLogger returns the default logger instance.
func GetLogger() *Logger {
	if defaultLogger == nil {
		InitLogger(INFO, "default", nil)
	}
	return defaultLogger
}

// WithComponent creates a logger with a nested component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{sugar: l.sugar.Named(component), level: l.level}
}

// WithError attaches an error field to subsequent log lines.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{sugar: l.sugar.With("error", err), level: l.level}
}

// SetLevel sets the logging level.
func (l *Logger) SetLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

// Debug logs debug level messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs info level messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs warning level messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs error level messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Fatal logs fatal level messages and exits
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.sugar.Fatalf(format, args...)
}
