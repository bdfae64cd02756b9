// Package logging builds the application logger and adapts it to the
// projection engine's logging seam.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a zap logger for the given level and format. Format "json"
// uses the production encoder; anything else gets the console encoder.
func New(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// EngineLogger adapts a zap logger to the calculation engine's Logger
// interface.
type EngineLogger struct {
	sugar *zap.SugaredLogger
}

// NewEngineLogger wraps a zap logger for use by the engine.
func NewEngineLogger(logger *zap.Logger) *EngineLogger {
	return &EngineLogger{sugar: logger.Sugar()}
}

func (l *EngineLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *EngineLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *EngineLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *EngineLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }
