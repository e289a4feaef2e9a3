package main

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// maxLineSize bounds a single input line.
const maxLineSize = 64 << 20

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lln",
		Short: "Work with lln lines",
		Long: `lln reads and writes the line notation used by the lln logger.

A line is a sequence of frames joined by '|': bare text, key=value pairs,
$-prefixed JSON, and length-prefixed frames for payloads holding reserved bytes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newInspectCmd(),
		newArchiveCmd(),
		newLogCmd(),
	)

	return root
}

// openInput opens the file named by args[0], or stdin when there is no argument or the
// argument is "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	return os.Open(args[0])
}

// eachLine calls fn for every line of r with its 1-based number. A trailing CR is
// dropped. The slice passed to fn is only valid during the call.
func eachLine(r io.Reader, fn func(n int, line []byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	n := 0
	for sc.Scan() {
		n++
		if err := fn(n, bytes.TrimSuffix(sc.Bytes(), []byte{'\r'})); err != nil {
			return err
		}
	}

	return sc.Err()
}
