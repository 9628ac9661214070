package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger keeps the printf-style call sites used across the services while
// routing everything through zap.
type Logger struct {
	base  *zap.Logger
	info  func(template string, args ...interface{})
	warn  func(template string, args ...interface{})
	error func(template string, args ...interface{})
}

func New() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		base = zap.NewExample()
	}
	return wrap(base)
}

// NewNop returns a logger that discards everything. Handy in tests.
func NewNop() *Logger {
	return wrap(zap.NewNop())
}

func wrap(base *zap.Logger) *Logger {
	sugar := base.Sugar()
	return &Logger{
		base:  base,
		info:  sugar.Infof,
		warn:  sugar.Warnf,
		error: sugar.Errorf,
	}
}

func (l *Logger) Info(template string, args ...interface{}) {
	l.info(template, args...)
}

func (l *Logger) Warn(template string, args ...interface{}) {
	l.warn(template, args...)
}

func (l *Logger) Error(template string, args ...interface{}) {
	l.error(template, args...)
}

// With returns a child logger carrying structured fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return wrap(l.base.With(fields...))
}

// Zap exposes the underlying logger for libraries that want one.
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

func (l *Logger) Sync() {
	_ = l.base.Sync()
}
