package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.SugaredLogger
}

// NewLogger returns a console logger named after the pipeline stage. level is a zap level name;
// an unknown level falls back to info.
func NewLogger(name, level string) Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = lvl > zapcore.DebugLevel

	baseLogger, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return Logger{baseLogger.Sugar().Named(name)}
}

func NewNopLogger() Logger {
	return Logger{zap.NewNop().Sugar()}
}

func (logger Logger) WithStage(stage string) Logger {
	return Logger{logger.With("stage", stage)}
}
