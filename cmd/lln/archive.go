package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/lln/archive"
	"github.com/arloliu/lln/codec"
	"github.com/arloliu/lln/config"
	"github.com/arloliu/lln/format"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Pack lines into segment archives and read them back",
	}
	cmd.AddCommand(newArchivePackCmd(), newArchiveCatCmd())

	return cmd
}

type packOptions struct {
	configPath  string
	compression string
	maxLines    int
	maxBytes    int
	validate    bool
}

func newArchivePackCmd() *cobra.Command {
	var opts packOptions

	cmd := &cobra.Command{
		Use:   "pack <in> <out>",
		Short: "Write the lines of a file into an archive",
		Long: `Read encoded lines from <in> ("-" for stdin) and write them to the archive
<out> in compressed segments. Settings come from the archive section of --config
and are overridden by explicit flags.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "configuration file (yaml or jsonc)")
	cmd.Flags().StringVar(&opts.compression, "compression", "zstd", "segment compression: none|zstd|s2|lz4")
	cmd.Flags().IntVar(&opts.maxLines, "max-lines", archive.DefaultMaxLines, "lines per segment")
	cmd.Flags().IntVar(&opts.maxBytes, "max-bytes", archive.DefaultMaxBytes, "raw bytes per segment")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "reject lines that do not decode")

	return cmd
}

func runPack(cmd *cobra.Command, args []string, opts packOptions) error {
	settings := config.Default().Archive
	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		settings = cfg.Archive
	}
	flags := cmd.Flags()
	if flags.Changed("compression") || opts.configPath == "" {
		settings.Compression = opts.compression
	}
	if flags.Changed("max-lines") || opts.configPath == "" {
		settings.MaxLines = opts.maxLines
	}
	if flags.Changed("max-bytes") || opts.configPath == "" {
		settings.MaxBytes = opts.maxBytes
	}

	compression, ok := format.ParseCompressionType(settings.Compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", settings.Compression)
	}

	in, err := openInput(cmd, args[:1])
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	w, err := archive.NewWriter(out,
		archive.WithCompression(compression),
		archive.WithMaxLines(settings.MaxLines),
		archive.WithMaxBytes(settings.MaxBytes),
	)
	if err != nil {
		return err
	}

	lines := 0
	err = eachLine(in, func(n int, line []byte) error {
		if opts.validate {
			if _, err := codec.Decode(line); err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
		}
		lines++

		return w.WriteLine(line)
	})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	stats := w.Stats()
	fmt.Fprintf(cmd.ErrOrStderr(), "%d lines, %d segments, %d -> %d bytes (%.1f%% saved, %s)\n",
		lines, w.Segments(), stats.RawSize, stats.CompressedSize, stats.SpaceSavings(), compression)

	return nil
}

func newArchiveCatCmd() *cobra.Command {
	var (
		headers bool
		decode  bool
	)

	cmd := &cobra.Command{
		Use:   "cat <in>",
		Short: "Print the lines stored in an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			stdout := cmd.OutOrStdout()
			r := archive.NewReader(in)
			for seg, err := range r.All() {
				if err != nil {
					return err
				}

				if headers {
					st := seg.Stats()
					fmt.Fprintf(stdout, "# segment offset=%d lines=%d compression=%s raw=%d stored=%d created=%s\n",
						seg.Offset, seg.LineCount(), seg.Header.Compression, st.RawSize, st.CompressedSize,
						seg.CreatedAt().UTC().Format(time.RFC3339Nano))
				}

				if !decode {
					for line := range seg.Lines() {
						fmt.Fprintf(stdout, "%s\n", line)
					}

					continue
				}

				for i, res := range seg.Fields(nil) {
					if res.Err != nil {
						return fmt.Errorf("segment at %d, line %d: %w", seg.Offset, i+1, res.Err)
					}
					fmt.Fprintf(stdout, "%v\n", res.Fields)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&headers, "headers", false, "print a header row before each segment")
	cmd.Flags().BoolVar(&decode, "decode", false, "print decoded fields instead of raw lines")

	return cmd
}
