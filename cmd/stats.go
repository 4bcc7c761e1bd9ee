package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/toyinlola/planetscope/pkg/pipeline"
)

var statsCmd = &cobra.Command{
	Use:   "stats <tic id>",
	Short: "Print descriptive statistics of a target's flux",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	p, cleanup, err := buildPipeline(cfg)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	defer cleanup()

	res, err := p.Stats(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	w, closeOutput, err := openOutput(cmd)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	defer closeOutput() // best-effort cleanup

	if err := writeStats(w, res, format); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	return nil
}

func writeStats(w io.Writer, res *pipeline.StatsResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "", "terminal":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Target\t%s\n", res.TicID)
		fmt.Fprintf(tw, "Samples\t%d\n", res.Count)
		fmt.Fprintf(tw, "Mean\t%.6g\n", res.Mean)
		fmt.Fprintf(tw, "Median\t%.6g\n", res.Median)
		fmt.Fprintf(tw, "Std dev\t%.6g\n", res.StdDev)
		fmt.Fprintf(tw, "Peak to peak\t%.6g\n", res.PeakToPeak)
		fmt.Fprintf(tw, "IQR\t%.6g\n", res.IQR)
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format %q (want terminal or json)", format)
	}
}
