// Package logger holds the process-wide zap logger. Until Initialize runs, Get
// returns a no-op logger so packages can log unconditionally in tests.
package logger

import (
	"fmt"
	"os"

	"bio-kids-puzzles/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

func encoderFor(env string) zapcore.Encoder {
	if env == "production" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return zapcore.NewConsoleEncoder(cfg)
}

// Initialize replaces the global logger. An empty level means info.
func Initialize(loggerCfg config.LoggerConfig) error {
	level := zapcore.InfoLevel
	if loggerCfg.Level != "" {
		if err := level.UnmarshalText([]byte(loggerCfg.Level)); err != nil {
			return fmt.Errorf("invalid logger level %q: %w", loggerCfg.Level, err)
		}
	}

	core := zapcore.NewCore(encoderFor(loggerCfg.Env), zapcore.Lock(os.Stdout), level)
	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", "bio-kids-puzzles"))
	return nil
}

// Get returns the global logger
func Get() *zap.Logger {
	return log
}

func Sync() error {
	return log.Sync()
}
