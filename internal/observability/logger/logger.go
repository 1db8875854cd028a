// Package logger wraps zap behind a process-wide singleton plus context
// propagation. Init once in main; everywhere else use From(ctx) or L().
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the logger.
type Config struct {
	// Env selects the encoder: "prod" emits JSON, anything else a colored
	// console layout.
	Env string

	// Level is the minimum level: "debug", "info", "warn", "error".
	Level string

	// ServiceName is attached to every entry when set.
	ServiceName string
}

var (
	once     sync.Once
	instance *zap.Logger
)

// Init initializes the singleton. Idempotent: only the first call wins.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L returns the singleton, initializing a dev/info logger if Init was
// never called.
func L() *zap.Logger {
	if instance == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// Named returns a logger tagged with a component name.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered entries. Call with defer in main.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}

func build(cfg Config) *zap.Logger {
	level := parseLevel(cfg.Level)

	var zcfg zap.Config
	if strings.ToLower(cfg.Env) == "prod" {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zcfg.DisableStacktrace = true
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	l, err := zcfg.Build()
	if err != nil {
		l, _ = zap.NewProduction()
	}
	if cfg.ServiceName != "" {
		l = l.With(zap.String("service", cfg.ServiceName))
	}
	return l
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
