package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// CriticalLevel is the zap level used for CRITICAL entries. Loggers built by a Registry
// never run in development mode, so entries at this level do not panic.
const CriticalLevel = zapcore.DPanicLevel

// Off is the filter value that disables a logger and every logger below it.
const Off = "OFF"

// ParseLevel maps a level name (debug, info, warning, error, critical) to a zap level.
// Matching is case-insensitive and "warn" is accepted for warning.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warning", "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "critical":
		return CriticalLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// LevelName returns the column text written for lvl.
func LevelName(lvl zapcore.Level) string {
	switch {
	case lvl <= zapcore.DebugLevel:
		return "DEBUG"
	case lvl == zapcore.InfoLevel:
		return "INFO"
	case lvl == zapcore.WarnLevel:
		return "WARNING"
	case lvl == zapcore.ErrorLevel:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

// levelCore gates an unfiltered core with a per-logger level. Unlike
// zapcore.NewIncreaseLevelCore it may lower the level below the wrapped core's.
type levelCore struct {
	zapcore.Core
	level zapcore.LevelEnabler
}

func (c *levelCore) Enabled(lvl zapcore.Level) bool {
	return c.level.Enabled(lvl)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), level: c.level}
}

func (c *levelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}
