package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/peg/dis"
)

func newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [file]",
		Short: "Disassemble a compiled grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := compileInput(cmd, args)
			if err != nil {
				return err
			}
			instructions, err := dis.Disassemble(program)
			if err != nil {
				return err
			}
			dis.Print(instructions, cmd.OutOrStdout())
			if viper.GetBool("stats") {
				stats := program.Stats()
				fmt.Fprintf(cmd.OutOrStdout(),
					"%d instructions, %d matches, %d packs, %d branches, %d addresses\n",
					stats.InstructionCount, stats.MatchCount, stats.PackCount,
					stats.BranchCount, stats.AddressCount)
			}
			return nil
		},
	}
	addInputFlags(cmd)
	cmd.Flags().Bool("stats", false, "print instruction statistics")
	return cmd
}
