package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/toyinlola/planetscope/pkg/report"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <tic id>",
	Short: "Classify a target and print the habitability report",
	Long: `Classify fetches the light curve for a target and runs the full
classification: median flux, trees, habitability, life and resource type.

  planetscope classify "TIC 12345678"
  planetscope classify "TIC 12345678" --format markdown --output report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	f, err := report.NewFormatter(format)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	p, cleanup, err := buildPipeline(cfg)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	defer cleanup()

	rpt, err := p.Run(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	slog.Debug(report.Headline(rpt), "report_id", rpt.ID)

	w, closeOutput, err := openOutput(cmd)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	defer closeOutput() // best-effort cleanup

	if err := f.Format(w, rpt); err != nil {
		return fmt.Errorf("classify: writing report: %w", err)
	}
	return nil
}
