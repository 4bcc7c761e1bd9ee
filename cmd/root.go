// Package cmd implements the planetscope CLI commands using Cobra.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/toyinlola/planetscope/pkg/cli"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
	format    string
	output    string

	// cfg is loaded once per invocation by the root pre-run hook.
	cfg *cli.Config
)

var rootCmd = &cobra.Command{
	Use:   "planetscope",
	Short: "Light-curve habitability classifier",
	Long: `Planetscope fetches stellar light curves and classifies targets.

Median flux is bucketed into a number of trees, combined into a
habitability score, and mapped to a life type. The same pipeline is
served over HTTP (planetscope serve) and run one-shot from the CLI
(planetscope classify).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["config"] == "skip" {
			return setupLogging(nil)
		}
		loaded, err := cli.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return setupLogging(cfg)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns any error.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: "+cli.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text|json), overrides log.format")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "output format (terminal|json|markdown|html)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write output to file instead of stdout")
}

// setupLogging installs the default slog logger. c may be nil for commands
// that run without configuration.
func setupLogging(c *cli.Config) error {
	level := slog.LevelInfo
	handlerFormat := "text"
	if c != nil {
		l, err := cli.ParseLevel(c.Log.Level)
		if err != nil {
			return err
		}
		level = l
		handlerFormat = c.Log.Format
	}
	if verbose {
		level = slog.LevelDebug
	}
	if logFormat != "" {
		handlerFormat = logFormat
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch handlerFormat {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text", "":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unsupported log format %q (want text or json)", handlerFormat)
	}
	slog.SetDefault(slog.New(handler))

	return nil
}

// openOutput returns the writer selected by --output, falling back to the
// command's stdout. The returned close func is always safe to call.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if output == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
