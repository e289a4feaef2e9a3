package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/lln/config"
	"github.com/arloliu/lln/internal/options"
)

// Registry builds and caches the named loggers of one application. All loggers share the
// sinks configured for the registry and differ only in name and level.
type Registry struct {
	cfg    config.LoggingConfig
	out    zapcore.WriteSyncer
	clock  zapcore.Clock
	syslog syslogWriter
	extra  map[string]string

	base      *zap.Logger
	rootLevel zapcore.Level
	levels    map[string]zapcore.Level
	disabled  []string
	closers   []io.Closer

	mu      sync.Mutex
	loggers map[string]*Logger
}

// Option configures a Registry.
type Option = options.Option[*Registry]

// WithFilters adds filter entries on top of the configured ones. Keys are logger names,
// values are a level name or OFF.
func WithFilters(filters map[string]string) Option {
	return options.NoError(func(r *Registry) {
		if r.extra == nil {
			r.extra = make(map[string]string, len(filters))
		}
		for k, v := range filters {
			r.extra[k] = v
		}
	})
}

// WithOutput replaces os.Stdout as the destination of the stdout sink.
func WithOutput(ws zapcore.WriteSyncer) Option {
	return options.New(func(r *Registry) error {
		if ws == nil {
			return errors.New("logger: output must not be nil")
		}
		r.out = ws

		return nil
	})
}

// WithClock sets the clock that timestamps entries.
func WithClock(clock zapcore.Clock) Option {
	return options.New(func(r *Registry) error {
		if clock == nil {
			return errors.New("logger: clock must not be nil")
		}
		r.clock = clock

		return nil
	})
}

func withSyslogWriter(w syslogWriter) Option {
	return options.NoError(func(r *Registry) {
		r.syslog = w
	})
}

// New creates a registry from cfg.
//
// Sinks:
//   - stdout when cfg.Stdout is set
//   - a rotating file when cfg.File.Path is set
//   - syslog when cfg.Syslog.Enabled is set
//
// Filter keys starting with '.' are relative to cfg.Root. An OFF entry disables every
// logger whose full name starts with the key.
func New(cfg config.LoggingConfig, opts ...Option) (*Registry, error) {
	r := &Registry{
		cfg:     cfg,
		out:     zapcore.Lock(os.Stdout),
		clock:   zapcore.DefaultClock,
		levels:  make(map[string]zapcore.Level),
		loggers: make(map[string]*Logger),
	}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	r.rootLevel = zapcore.DebugLevel
	if cfg.Level != "" {
		lvl, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		r.rootLevel = lvl
	}

	r.addFilters(cfg.Filters)
	r.addFilters(r.extra)
	if lvl, ok := r.levels[cfg.Root]; ok {
		r.rootLevel = lvl
	}

	core, err := r.buildCore()
	if err != nil {
		return nil, err
	}
	r.base = zap.New(core, zap.WithClock(r.clock))

	return r, nil
}

func (r *Registry) buildCore() (zapcore.Core, error) {
	host := r.cfg.Hostname
	if host == "" {
		host, _ = os.Hostname()
	}
	enc := NewEncoder(host)
	all := zap.LevelEnablerFunc(func(zapcore.Level) bool { return true })

	var cores []zapcore.Core
	if r.cfg.Stdout {
		cores = append(cores, zapcore.NewCore(enc, r.out, all))
	}

	if r.cfg.File.Path != "" {
		lj := fileSink(r.cfg.File)
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(lj), all))
		r.closers = append(r.closers, lj)
	}

	if r.cfg.Syslog.Enabled {
		w := r.syslog
		if w == nil {
			tag := r.cfg.Syslog.Tag
			if tag == "" {
				tag = r.cfg.Root
			}

			var err error
			w, err = dialSyslog(r.cfg.Syslog, tag)
			if err != nil {
				return nil, errors.Join(fmt.Errorf("dialing syslog: %w", err), r.closeSinks())
			}
		}
		cores = append(cores, newSyslogCore(enc.Clone(), w, all))
		r.closers = append(r.closers, w)
	}

	return zapcore.NewTee(cores...), nil
}

func (r *Registry) addFilters(filters map[string]string) {
	for name, value := range filters {
		if strings.HasPrefix(name, ".") {
			name = r.cfg.Root + name
		}
		if strings.EqualFold(value, Off) {
			r.disabled = append(r.disabled, name)
			continue
		}
		// Unknown level names are ignored.
		if lvl, err := ParseLevel(value); err == nil {
			r.levels[name] = lvl
		}
	}
}

// Root returns the root logger.
func (r *Registry) Root() *Logger {
	return r.Get("")
}

// Get returns the logger for name, creating it on first use. The name is relative to the
// root logger: Get("db") on a registry rooted at "billing" returns "billing.db". An empty
// name returns the root logger.
func (r *Registry) Get(name string) *Logger {
	full := r.cfg.Root
	if name = strings.TrimPrefix(name, "."); name != "" {
		full = r.cfg.Root + "." + name
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[full]; ok {
		return l
	}
	l := r.newLogger(full)
	r.loggers[full] = l

	return l
}

func (r *Registry) newLogger(full string) *Logger {
	for _, prefix := range r.disabled {
		if strings.HasPrefix(full, prefix) {
			return &Logger{name: full, zl: zap.NewNop(), level: zap.NewAtomicLevelAt(r.rootLevel)}
		}
	}

	lvl := r.rootLevel
	if filtered, ok := r.levels[full]; ok {
		lvl = filtered
	}
	atom := zap.NewAtomicLevelAt(lvl)

	zl := r.base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return &levelCore{Core: c, level: atom}
	})).Named(full)

	return &Logger{name: full, zl: zl, level: atom}
}

// Sync flushes every sink.
func (r *Registry) Sync() error {
	return r.base.Sync()
}

// Close flushes and closes the file and syslog sinks. Loggers must not be used afterwards.
func (r *Registry) Close() error {
	err := r.Sync()

	return errors.Join(err, r.closeSinks())
}

func (r *Registry) closeSinks() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	r.closers = nil

	return errors.Join(errs...)
}
