package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.Mutex
	root *zap.SugaredLogger
)

// Options configures the root logger.
type Options struct {
	Level      string // one of debug, info, warn, error (default info)
	Name       string // optional name prefixed to all loggers
	Stacktrace bool   // attach stacktraces to warn and above
}

// Setup builds the root logger from the given options. It may be called once,
// later calls are ignored so libraries cannot silently reconfigure the
// logging of the binary embedding them.
func Setup(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if root != nil {
		root.Warn("can't re setup root logger")
		return nil
	}

	level, err := parseLogLevel(opts.Level)
	if err != nil {
		return err
	}

	root = build(level, opts.Name, opts.Stacktrace)
	return nil
}

// Default returns the root logger. If Setup was never called, an info-level
// logger is built on first use.
func Default() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		root = build(zapcore.InfoLevel, "", false)
	}
	return root
}

// GetLogger returns a named child of the root logger.
func GetLogger(name string) *zap.SugaredLogger {
	return Default().Named(name)
}

// build assembles the zap logger. Messages below warn go to stdout, warn and
// above go to stderr.
func build(level zapcore.Level, name string, stacktrace bool) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.ConsoleSeparator = " | "

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= level && lvl < zapcore.WarnLevel
			}),
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= level && lvl >= zapcore.WarnLevel
			}),
		),
	}

	var zapOpts []zap.Option
	if stacktrace {
		zapOpts = append(zapOpts, zap.AddStacktrace(zapcore.WarnLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zapOpts...).Sugar()
	if name != "" {
		logger = logger.Named(name)
	}
	return logger
}

// parseLogLevel converts a string level to a zapcore.Level
func parseLogLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warning", "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}
