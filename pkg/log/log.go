// Package log provides the logging functionality for cuda-archs.
//
// All output goes to stderr. Stdout is reserved for the target list that
// CMake reads back.
package log

import (
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *archsLogger
var nopLogger = zap.NewNop().Sugar()

func init() {
	Logger = CreateLogger(false)
}

// DefaultLoggerConfig returns the non-verbose configuration:
// info level, lines of the form "ERROR: message".
func DefaultLoggerConfig() *zap.Config {
	return NewLoggerConfig(false)
}

// NewLoggerConfig returns the stderr console configuration.
// Verbose mode lowers the level to debug and drops the level prefix.
func NewLoggerConfig(verbose bool) *zap.Config {
	lvl := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		lvl = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return &zap.Config{
		Level:             lvl,
		Encoding:          "console",
		EncoderConfig:     newEncoderConfig(verbose),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
}

func newEncoderConfig(verbose bool) zapcore.EncoderConfig {
	c := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		NameKey:          zapcore.OmitKey,
		TimeKey:          zapcore.OmitKey,
		CallerKey:        zapcore.OmitKey,
		StacktraceKey:    zapcore.OmitKey,
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: ": ",
	}
	if verbose {
		c.LevelKey = zapcore.OmitKey
	}
	return c
}

func CreateLogger(verbose bool) *archsLogger {
	return CreateLoggerWithConfig(NewLoggerConfig(verbose))
}

func CreateLoggerWithConfig(config *zap.Config) *archsLogger {
	if config == nil {
		config = DefaultLoggerConfig()
	}

	l, err := config.Build()
	if err != nil {
		panic(err)
	}

	return newArchsLogger(l.Sugar())
}

// CreateLoggerWithWriter builds the same console logger as CreateLogger
// but writes to w instead of stderr.
func CreateLoggerWithWriter(w io.Writer, verbose bool) *archsLogger {
	if w == nil {
		w = os.Stderr
	}
	cfg := NewLoggerConfig(verbose)
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg.EncoderConfig),
		zapcore.AddSync(w),
		cfg.Level,
	)
	return newArchsLogger(zap.New(core).Sugar())
}

type archsLogger struct {
	logger atomic.Pointer[zap.SugaredLogger]
}

func newArchsLogger(logger *zap.SugaredLogger) *archsLogger {
	l := &archsLogger{}
	l.set(logger)
	return l
}

func (l *archsLogger) get() *zap.SugaredLogger {
	if l == nil {
		return nopLogger
	}
	logger := l.logger.Load()
	if logger == nil {
		return nopLogger
	}
	return logger
}

func (l *archsLogger) set(logger *zap.SugaredLogger) {
	if logger == nil {
		logger = nopLogger
	}
	l.logger.Store(logger)
}

func SetLogger(logger *archsLogger) {
	if logger == nil {
		Logger.set(nil)
		return
	}
	Logger.set(logger.get())
}

func (l *archsLogger) Debug(args ...interface{}) {
	l.get().Debug(args...)
}

func (l *archsLogger) Debugf(template string, args ...interface{}) {
	l.get().Debugf(template, args...)
}

func (l *archsLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.get().Debugw(msg, keysAndValues...)
}

func (l *archsLogger) Info(args ...interface{}) {
	l.get().Info(args...)
}

func (l *archsLogger) Infof(template string, args ...interface{}) {
	l.get().Infof(template, args...)
}

func (l *archsLogger) Warn(args ...interface{}) {
	l.get().Warn(args...)
}

func (l *archsLogger) Warnf(template string, args ...interface{}) {
	l.get().Warnf(template, args...)
}

func (l *archsLogger) Error(args ...interface{}) {
	l.get().Error(args...)
}

func (l *archsLogger) Errorf(template string, args ...interface{}) {
	l.get().Errorf(template, args...)
}

func (l *archsLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.get().Errorw(msg, keysAndValues...)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func (l *archsLogger) Sync() {
	_ = l.get().Sync()
}
