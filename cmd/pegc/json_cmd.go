package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json [file]",
		Short: "Print a compiled grammar as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := compileInput(cmd, args)
			if err != nil {
				return err
			}
			output, err := getOutputJSON(program)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}
