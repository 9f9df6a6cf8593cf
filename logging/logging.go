// Package logging contains the logger construction used across the motion
// packages, backed by zap.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger is the logging interface the motion packages depend on. It is
// satisfied by *zap.SugaredLogger.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// NewLoggerConfig returns the default console config: Info+, ISO-8601 times,
// no stacktraces.
func NewLoggerConfig() zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}

// NewLogger returns a named logger that outputs Info+ logs to stdout.
func NewLogger(name string) Logger {
	logger, err := NewLoggerConfig().Build()
	if err != nil {
		panic(err)
	}
	return logger.Sugar().Named(name)
}

// NewDebugLogger returns a named logger that outputs Debug+ logs to stdout.
func NewDebugLogger(name string) Logger {
	cfg := NewLoggerConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Sugar().Named(name)
}

// NewTestLogger returns a Debug+ logger that routes output through the test.
func NewTestLogger(tb testing.TB) Logger {
	return zaptest.NewLogger(tb, zaptest.Level(zap.DebugLevel)).Sugar()
}
