package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger. In debug mode it uses the colored console
// encoder; otherwise JSON production output at the given level
// ("debug", "info", "warn", "error"; empty means info).
func New(level string, debug bool) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	return cfg.Build()
}

// Must creates a logger or panics
func Must(level string, debug bool) *zap.Logger {
	log, err := New(level, debug)
	if err != nil {
		panic(err)
	}
	return log
}
