package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	base  *zap.Logger
	info  func(template string, args ...interface{})
	error func(template string, args ...interface{})
	warn  func(template string, args ...interface{})
}

func New() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		base = zap.NewNop()
	}
	return wrap(base)
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return wrap(zap.NewNop())
}

// FromZap wraps an existing zap logger, e.g. one built on an observer core.
func FromZap(base *zap.Logger) *Logger {
	return wrap(base)
}

func wrap(base *zap.Logger) *Logger {
	sugar := base.Sugar()
	return &Logger{
		base:  base,
		info:  sugar.Infof,
		error: sugar.Errorf,
		warn:  sugar.Warnf,
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.info(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.error(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.warn(format, v...)
}

// With returns a child logger carrying structured fields, e.g. the service name.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return wrap(l.base.With(fields...))
}

func (l *Logger) Sync() error {
	return l.base.Sync()
}
