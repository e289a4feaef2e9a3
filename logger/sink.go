package logger

import (
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/arloliu/lln/config"
)

// syslogWriter is the subset of *syslog.Writer used by the syslog sink.
type syslogWriter interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Crit(m string) error
	Close() error
}

// syslogCore sends every entry as one syslog message with a severity matching its level.
type syslogCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	out syslogWriter
}

func newSyslogCore(enc zapcore.Encoder, out syslogWriter, enab zapcore.LevelEnabler) *syslogCore {
	return &syslogCore{LevelEnabler: enab, enc: enc, out: out}
}

func (c *syslogCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &syslogCore{LevelEnabler: c.LevelEnabler, enc: c.enc.Clone(), out: c.out}
	for i := range fields {
		fields[i].AddTo(clone.enc)
	}

	return clone
}

func (c *syslogCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

func (c *syslogCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimSuffix(buf.String(), "\n")
	buf.Free()

	switch {
	case ent.Level <= zapcore.DebugLevel:
		return c.out.Debug(msg)
	case ent.Level == zapcore.InfoLevel:
		return c.out.Info(msg)
	case ent.Level == zapcore.WarnLevel:
		return c.out.Warning(msg)
	case ent.Level == zapcore.ErrorLevel:
		return c.out.Err(msg)
	default:
		return c.out.Crit(msg)
	}
}

func (c *syslogCore) Sync() error {
	return nil
}

// fileSink returns a rotating file writer for cfg.
func fileSink(cfg config.FileConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}
