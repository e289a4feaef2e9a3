package main

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/arloliu/lln/codec"
)

var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("lln: CBOR encoder initialization failed: " + err.Error())
	}
}

type decodeOptions struct {
	output     string
	primitives bool
	keepGoing  bool
}

func newDecodeCmd() *cobra.Command {
	var opts decodeOptions

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode lines into field documents",
		Long: `Decode every input line and print its fields.

With --output json (the default) each line becomes one JSON array of field
documents. With --output cbor the arrays are written as a CBOR sequence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "output format: json|cbor")
	cmd.Flags().BoolVar(&opts.primitives, "primitives", false, "decode bare None, True, False and numbers as primitives")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "report malformed lines on stderr and continue")

	return cmd
}

func runDecode(cmd *cobra.Command, args []string, opts decodeOptions) error {
	dec, err := codec.NewDecoder(codec.WithPrimitiveLiterals(opts.primitives))
	if err != nil {
		return err
	}

	var emit func(docs []document) error
	switch opts.output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		emit = func(docs []document) error { return enc.Encode(docs) }
	case "cbor":
		enc := cborEncMode.NewEncoder(cmd.OutOrStdout())
		emit = func(docs []document) error {
			for i := range docs {
				docs[i].Value = plainValue(docs[i].Value)
			}

			return enc.Encode(docs)
		}
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	bad := 0
	err = eachLine(in, func(n int, line []byte) error {
		fields, err := dec.Decode(line)
		if err != nil {
			if !opts.keepGoing {
				return fmt.Errorf("line %d: %w", n, err)
			}
			bad++
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", n, err)

			return nil
		}

		return emit(toDocuments(fields))
	})
	if err != nil {
		return err
	}

	if bad > 0 {
		return fmt.Errorf("%d malformed lines", bad)
	}

	return nil
}
