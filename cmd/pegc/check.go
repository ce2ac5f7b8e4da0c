package main

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/risor-io/peg"
	"github.com/risor-io/peg/bytecode"
)

var green = color.New(color.FgGreen).SprintFunc()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <pattern>...",
		Short: "Compile and verify grammar documents",
		Long: `Compile every grammar document matching the given paths or glob
patterns and report the ones that fail. Patterns support ** to match
any number of directories.

Examples:
  pegc check grammar.yaml
  pegc check 'grammars/**/*.yaml'
  pegc check --jobs 1 a.yaml b.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs := viper.GetInt("jobs")
			if jobs < 1 {
				return errors.New("jobs must be at least 1")
			}
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no grammar files matched")
			}

			opts := getPegOptions()
			stats := make([]bytecode.Stats, len(paths))
			failures := make([]error, len(paths))
			var g errgroup.Group
			g.SetLimit(jobs)
			for i, path := range paths {
				i, path := i, path
				g.Go(func() error {
					program, err := peg.CompileFile(path, opts...)
					if err != nil {
						failures[i] = err
						return nil
					}
					stats[i] = program.Stats()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			// Each failure is reported on its own line, so the returned
			// error only summarizes.
			out := cmd.OutOrStdout()
			failed := 0
			for i, path := range paths {
				if failures[i] != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", red("FAIL"), path, failures[i])
					continue
				}
				fmt.Fprintf(out, "%s %s (%d instructions)\n", green("ok"), path, stats[i].InstructionCount)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d grammars failed", failed, len(paths))
			}
			return nil
		},
	}
	cmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "number of grammars compiled concurrently")
	return cmd
}

// expandPatterns resolves glob patterns to a sorted list of unique paths.
// An argument that matches nothing is kept as a literal path so that a
// missing file is reported by the compiler.
func expandPatterns(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var paths []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
