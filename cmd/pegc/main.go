package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/peg/compiler"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pegc",
		Short: "Compile parsing expression grammars to bytecode",
		Long: `pegc compiles YAML grammar documents into bytecode programs and
inspects them.

Examples:
  pegc dis grammar.yaml            # Print the disassembly
  pegc dis -c 'alt: ["a", "b"]'    # Compile a grammar given inline
  pegc json grammar.yaml           # Print the program as JSON
  pegc check 'grammars/**/*.yaml'  # Verify many grammars at once
  pegc pos input.txt 0 120 4096    # Resolve offsets to line:column`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd); err != nil {
				return err
			}
			if err := initConfig(); err != nil {
				return err
			}
			return processGlobalFlags(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default: .pegc.yaml in the working directory)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.Int("max-depth", compiler.DefaultMaxDepth, "maximum grammar nesting depth, 0 for no limit")

	cmd.AddCommand(
		newCheckCmd(),
		newDisCmd(),
		newJSONCmd(),
		newPosCmd(),
		newVersionCmd(),
	)
	return cmd
}

// bindFlags binds the flags of the command being run, including the
// inherited persistent ones, so that the same flag name on sibling
// commands resolves to the invoked one.
func bindFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
