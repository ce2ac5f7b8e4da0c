package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/peg/source"
)

const defaultChunkSize = 4096

func newPosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pos <file> <offset>...",
		Short: "Resolve byte offsets in a file to line and column",
		Long: `Read a file in chunks, indexing line endings as it goes, and print
the file:line:column location of each byte offset.

Examples:
  pegc pos input.txt 0 17        # Two offsets
  pegc pos --chunk 1 input.txt 9 # Read one byte at a time`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offsets, err := parseOffsets(args[1:])
			if err != nil {
				return err
			}
			chunk := viper.GetInt("chunk")
			if chunk <= 0 {
				return errors.New("chunk size must be positive")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			src, err := source.New(f, source.WithFilename(args[0]), source.WithLogger(logger))
			if err != nil {
				return err
			}
			for {
				buf, err := src.Read(chunk)
				if err != nil {
					return err
				}
				if len(buf) == 0 {
					break
				}
			}
			logger.Debug().
				Str("filename", args[0]).
				Int64("size", src.Pos()).
				Int("lines", len(src.LineEnds())+1).
				Msg("indexed input")

			out := cmd.OutOrStdout()
			for _, offset := range offsets {
				loc := src.Location(offset)
				if offset > src.Pos() {
					fmt.Fprintf(out, "%s (past end of input)\n", loc)
					continue
				}
				fmt.Fprintln(out, loc)
			}
			return nil
		},
	}
	cmd.Flags().Int("chunk", defaultChunkSize, "number of bytes read at a time")
	return cmd
}

func parseOffsets(args []string) ([]int64, error) {
	offsets := make([]int64, 0, len(args))
	for _, arg := range args {
		offset, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid offset %q", arg)
		}
		offsets = append(offsets, offset)
	}
	return offsets, nil
}
