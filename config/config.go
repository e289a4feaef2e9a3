// Package config loads the settings shared by the lln logger and archive writer.
//
// Files are YAML (.yaml, .yml) or JSON with comments and trailing commas (.json, .jsonc).
// Fields missing from the file keep the values from Default.
//
//	logging:
//	  root: billing
//	  level: info
//	  filters:
//	    .db: warning
//	    billing.http: OFF
//	  syslog:
//	    enabled: true
//	    address: 127.0.0.1:514
//	    facility: 2
//	archive:
//	  compression: zstd
//	  max_lines: 4096
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/lln/format"
)

// Config is the top-level configuration document.
type Config struct {
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Archive ArchiveConfig `yaml:"archive" json:"archive"`
}

// LoggingConfig configures the logger registry.
type LoggingConfig struct {
	// Root is the name of the root logger. Relative logger names (".db") are resolved
	// against it.
	// Default: noapp
	Root string `yaml:"root" json:"root"`

	// Hostname is written in the host column of every line. Only the first label is used.
	// Default: os.Hostname()
	Hostname string `yaml:"hostname" json:"hostname"`

	// Stdout enables the stdout sink.
	// Default: true
	Stdout bool `yaml:"stdout" json:"stdout"`

	// Level is the minimum level of loggers without a filter entry.
	// Values: debug, info, warning, error, critical
	// Default: debug
	Level string `yaml:"level" json:"level"`

	// Filters maps logger names to a level or OFF. OFF disables every logger whose
	// full name starts with the entry.
	Filters map[string]string `yaml:"filters" json:"filters"`

	Syslog SyslogConfig `yaml:"syslog" json:"syslog"`
	File   FileConfig   `yaml:"file" json:"file"`
}

// SyslogConfig configures the syslog sink.
type SyslogConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Network is "udp", "tcp" or "unixgram". Empty dials the local syslog daemon.
	// Default: udp
	Network string `yaml:"network" json:"network"`

	// Default: 127.0.0.1:514
	Address string `yaml:"address" json:"address"`

	// Facility selects LOCAL0 through LOCAL7.
	// Default: 0
	Facility int `yaml:"facility" json:"facility"`

	// Tag is the syslog program tag. Empty uses the root logger name.
	Tag string `yaml:"tag" json:"tag"`
}

// FileConfig configures the rotating file sink. The sink is disabled when Path is empty.
type FileConfig struct {
	Path string `yaml:"path" json:"path"`

	// Default: 100
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb"`

	// Default: 7
	MaxBackups int `yaml:"max_backups" json:"max_backups"`

	// Default: 30
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days"`

	Compress bool `yaml:"compress" json:"compress"`
}

// ArchiveConfig configures archive writers.
type ArchiveConfig struct {
	// Values: none, zstd, s2, lz4
	// Default: zstd
	Compression string `yaml:"compression" json:"compression"`

	// Default: 4096
	MaxLines int `yaml:"max_lines" json:"max_lines"`

	// Default: 1048576
	MaxBytes int `yaml:"max_bytes" json:"max_bytes"`
}

var validLevels = map[string]bool{
	"debug":    true,
	"info":     true,
	"warning":  true,
	"warn":     true,
	"error":    true,
	"critical": true,
}

// Default returns the default configuration.
func Default() *Config {
	host, _ := os.Hostname()

	return &Config{
		Logging: LoggingConfig{
			Root:     "noapp",
			Hostname: host,
			Stdout:   true,
			Level:    "debug",
			Filters:  map[string]string{},
			Syslog: SyslogConfig{
				Network: "udp",
				Address: "127.0.0.1:514",
			},
			File: FileConfig{
				MaxSizeMB:  100,
				MaxBackups: 7,
				MaxAgeDays: 30,
			},
		},
		Archive: ArchiveConfig{
			Compression: "zstd",
			MaxLines:    4096,
			MaxBytes:    1 << 20,
		},
	}
}

// Load reads the configuration file at path on top of Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes data in the format named by ext (".yaml", ".yml", ".json" or ".jsonc")
// on top of Default and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Logging.Root == "" {
		errs = append(errs, errors.New("logging.root is required"))
	}

	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("logging.level: invalid level %q", c.Logging.Level))
	}

	for name, level := range c.Logging.Filters {
		if level != "OFF" && !validLevels[strings.ToLower(level)] {
			errs = append(errs, fmt.Errorf("logging.filters[%s]: invalid level %q", name, level))
		}
	}

	if c.Logging.Syslog.Enabled {
		if c.Logging.Syslog.Facility < 0 || c.Logging.Syslog.Facility > 7 {
			errs = append(errs, fmt.Errorf("logging.syslog.facility: %d is not in 0..7", c.Logging.Syslog.Facility))
		}
		switch c.Logging.Syslog.Network {
		case "", "udp", "tcp", "unix", "unixgram":
		default:
			errs = append(errs, fmt.Errorf("logging.syslog.network: unsupported network %q", c.Logging.Syslog.Network))
		}
	}

	if c.Logging.File.Path != "" && c.Logging.File.MaxSizeMB <= 0 {
		errs = append(errs, errors.New("logging.file.max_size_mb must be positive"))
	}

	if _, ok := format.ParseCompressionType(c.Archive.Compression); !ok {
		errs = append(errs, fmt.Errorf("archive.compression: unknown algorithm %q", c.Archive.Compression))
	}
	if c.Archive.MaxLines <= 0 {
		errs = append(errs, errors.New("archive.max_lines must be positive"))
	}
	if c.Archive.MaxBytes <= 0 {
		errs = append(errs, errors.New("archive.max_bytes must be positive"))
	}

	return errors.Join(errs...)
}

// CompressionType returns the archive compression as a format.CompressionType.
// It assumes Validate has passed.
func (a ArchiveConfig) CompressionType() format.CompressionType {
	ct, _ := format.ParseCompressionType(a.Compression)

	return ct
}
