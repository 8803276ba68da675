package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is shared by every logger handed out, so the configured
// log level applies to loggers created before the config is read
var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// NewLogger returns a sugared logger named after the package using it
func NewLogger(name string) *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}

	// flushes buffer, if any
	defer logger.Sync()

	return logger.Named(name).Sugar()
}

// SetLevel changes the level of every logger, e.g. "debug", "info", "warn" or "error"
func SetLevel(text string) error {
	return level.UnmarshalText([]byte(text))
}

func Level() zapcore.Level {
	return level.Level()
}

// NewNopLogger returns a logger that discards everything, for tests & quiet CLI runs
func NewNopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
