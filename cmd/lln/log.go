package main

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/lln/config"
	"github.com/arloliu/lln/field"
	"github.com/arloliu/lln/logger"
)

type logOptions struct {
	configPath string
	name       string
	level      string
}

func newLogCmd() *cobra.Command {
	var opts logOptions

	cmd := &cobra.Command{
		Use:   "log MESSAGE [text|key=value ...]",
		Short: "Write one log entry through the configured sinks",
		Long: `Write one entry with the logging section of --config (stdout only by default).
Arguments of the form key=value become pairs, everything else is text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "configuration file (yaml or jsonc)")
	cmd.Flags().StringVar(&opts.name, "name", "", "logger name relative to the root logger")
	cmd.Flags().StringVar(&opts.level, "level", "info", "entry level: debug|info|warning|error|critical")

	return cmd
}

func runLog(cmd *cobra.Command, args []string, opts logOptions) error {
	lvl, err := logger.ParseLevel(opts.level)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if opts.configPath != "" {
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}

	reg, err := logger.New(cfg.Logging, logger.WithOutput(zapcore.AddSync(cmd.OutOrStdout())))
	if err != nil {
		return err
	}

	values := make([]any, 0, len(args)-1)
	for _, arg := range args[1:] {
		values = append(values, argField(arg))
	}

	log := reg.Get(opts.name)
	switch lvl {
	case zapcore.DebugLevel:
		log.Debug(args[0], values...)
	case zapcore.InfoLevel:
		log.Info(args[0], values...)
	case zapcore.WarnLevel:
		log.Warning(args[0], values...)
	case zapcore.ErrorLevel:
		log.Error(args[0], values...)
	default:
		log.Critical(args[0], values...)
	}

	return reg.Close()
}

func argField(arg string) field.Field {
	if key, value, ok := strings.Cut(arg, "="); ok && key != "" {
		return field.Pair(key, value)
	}

	return field.Text(arg)
}
