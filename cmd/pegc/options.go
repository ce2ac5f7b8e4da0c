package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/peg"
	"github.com/risor-io/peg/bytecode"
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "grammar document to compile")
	cmd.Flags().Bool("stdin", false, "read the grammar document from stdin")
}

func getPegOptions() []peg.Option {
	return []peg.Option{
		peg.WithLogger(logger),
		peg.WithMaxDepth(viper.GetInt("max-depth")),
	}
}

// compileInput compiles the grammar document named by the command's input
// flags or its path argument.
func compileInput(cmd *cobra.Command, args []string) (*bytecode.Program, error) {
	// There are three possible sources:
	// 1. --code <document>
	// 2. --stdin
	// 3. path as args[0]
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	stdinFlagSet := viper.GetBool("stdin")
	pathSupplied := len(args) > 0

	count := 0
	for _, set := range []bool{codeFlagSet, stdinFlagSet, pathSupplied} {
		if set {
			count++
		}
	}
	if count > 1 {
		return nil, errors.New("multiple input sources specified")
	}
	if count == 0 {
		return nil, errors.New("no input provided")
	}

	opts := getPegOptions()
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return peg.CompileGrammar(data, opts...)
	case pathSupplied:
		return peg.CompileFile(args[0], opts...)
	default:
		return peg.CompileGrammar([]byte(viper.GetString("code")), opts...)
	}
}
