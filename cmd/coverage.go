package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toyinlola/planetscope/pkg/coverage"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage <lcov file>",
	Short: "List unexecuted functions and missed branches in an LCOV tracefile",
	Long: `Coverage reads an LCOV tracefile and prints, for every source file,
the functions that never ran and how many branches were never taken.

  planetscope coverage coverage/lcov.info
  planetscope coverage coverage/lcov.info --format json`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"config": "skip"},
	RunE:        runCoverage,
}

func init() {
	rootCmd.AddCommand(coverageCmd)
}

func runCoverage(cmd *cobra.Command, args []string) error {
	files, err := coverage.ParseFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("coverage: %w", err)
	}

	outFormat := format
	if outFormat == "terminal" {
		outFormat = coverage.FormatText
	}

	w, closeOutput, err := openOutput(cmd)
	if err != nil {
		return fmt.Errorf("coverage: %w", err)
	}
	defer closeOutput() // best-effort cleanup

	return coverage.Write(w, files, outFormat)
}
