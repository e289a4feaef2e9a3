package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/lln/codec"
	"github.com/arloliu/lln/format"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the frames of every line",
		Long: `Print one row per frame: line number, byte span, frame kind, payload length and
the raw frame text. Pair payloads are shown as "left,right" byte counts.
Malformed lines report the error after their valid frames.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LINE\tSPAN\tKIND\tPAYLOAD\tFRAME")

			bad := 0
			err = eachLine(in, func(n int, line []byte) error {
				for fr, err := range codec.Frames(line) {
					if err != nil {
						bad++
						fmt.Fprintf(tw, "%d\t\terror\t\t%v\n", n, err)
						break
					}
					fmt.Fprintf(tw, "%d\t%d-%d\t%s\t%s\t%q\n", n, fr.Start, fr.End, fr.Kind, payloadSize(fr), line[fr.Start:fr.End])
				}

				return nil
			})
			if ferr := tw.Flush(); err == nil {
				err = ferr
			}
			if err != nil {
				return err
			}

			if bad > 0 {
				return fmt.Errorf("%d malformed lines", bad)
			}

			return nil
		},
	}
}

func payloadSize(fr codec.Frame) string {
	switch fr.Kind {
	case format.FrameBarePair, format.FrameLenPair:
		return fmt.Sprintf("%d,%d", len(fr.Left), len(fr.Right))
	default:
		return strconv.Itoa(len(fr.Payload))
	}
}
