package logger

import (
	"fmt"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes lln lines through a zap logger.
//
// The message and each argument become one frame:
//
//	log.Info("LOGIN", field.Pair("user", "alice"), 3, map[string]any{"ok": true})
//	// 2024-05-01T10:00:00.000|web1|INFO|billing.auth|LOGIN|user=alice|3|${"ok": true}
//
// A message containing "%s" is formatted with its arguments instead and written as is.
type Logger struct {
	name  string
	zl    *zap.Logger
	level zap.AtomicLevel
}

// Name returns the full dotted name of the logger.
func (l *Logger) Name() string {
	return l.name
}

// Zap returns the underlying zap logger. Use Fields to attach positional frames to its
// entries.
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Level returns the minimum enabled level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// SetLevel changes the minimum enabled level of this logger only.
func (l *Logger) SetLevel(lvl zapcore.Level) {
	l.level.SetLevel(lvl)
}

// Enabled reports whether entries at lvl are written.
func (l *Logger) Enabled(lvl zapcore.Level) bool {
	return l.zl.Core().Enabled(lvl)
}

func (l *Logger) Debug(msg string, args ...any)    { l.log(zapcore.DebugLevel, msg, args) }
func (l *Logger) Info(msg string, args ...any)     { l.log(zapcore.InfoLevel, msg, args) }
func (l *Logger) Warning(msg string, args ...any)  { l.log(zapcore.WarnLevel, msg, args) }
func (l *Logger) Error(msg string, args ...any)    { l.log(zapcore.ErrorLevel, msg, args) }
func (l *Logger) Critical(msg string, args ...any) { l.log(CriticalLevel, msg, args) }

// Traceback logs err and the current goroutine stack at ERROR as a TRACEBACK entry.
func (l *Logger) Traceback(err error) {
	if !l.Enabled(zapcore.ErrorLevel) {
		return
	}

	args := make([]any, 0, 2)
	if err != nil {
		args = append(args, fmt.Sprintf("%+v", err))
	}
	args = append(args, strings.TrimRight(string(debug.Stack()), "\n"))

	l.Error("TRACEBACK", args...)
}

// With returns a child logger whose entries start with args after the message.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}

	return &Logger{name: l.name, zl: l.zl.With(Values(args...)), level: l.level}
}

// Sync flushes the sinks of the logger.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) log(lvl zapcore.Level, msg string, args []any) {
	if !l.Enabled(lvl) {
		return
	}

	if strings.Contains(msg, "%s") {
		if ce := l.zl.Check(lvl, fmt.Sprintf(msg, args...)); ce != nil {
			ce.Write(zap.Reflect("", rawMessage{}))
		}

		return
	}

	if ce := l.zl.Check(lvl, msg); ce != nil {
		ce.Write(Values(args...))
	}
}
