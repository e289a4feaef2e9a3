package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/arloliu/lln/codec"
)

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a JSON array of fields as one line",
		Long: `Read a JSON (or JSONC) array of fields and print the encoded line.

Items are either field documents or bare JSON values:

  ["LOGIN", {"type": "pair", "key": "user", "value": "alice"}, 42, [1, 2]]

Document types: null, bool, number, text, opaque, pair, structured.
Bare strings are text, bare numbers are numbers and bare lists are structured.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			fields, err := parseDocuments(jsonc.ToJSON(data))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", codec.Encode(fields...))

			return err
		},
	}
}
