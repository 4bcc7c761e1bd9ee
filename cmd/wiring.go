package cmd

import (
	"log/slog"

	"github.com/toyinlola/planetscope/pkg/cli"
	"github.com/toyinlola/planetscope/pkg/lightcurve"
	"github.com/toyinlola/planetscope/pkg/pipeline"
	"github.com/toyinlola/planetscope/pkg/scorer"
	"github.com/toyinlola/planetscope/pkg/store"
)

// buildPipeline wires the light-curve source, archive, history store and
// calculator described by c. The returned cleanup closes the store.
func buildPipeline(c *cli.Config) (*pipeline.Pipeline, func(), error) {
	if err := c.RequireSource(); err != nil {
		return nil, nil, err
	}

	calcOpts, err := c.CalculatorOptions()
	if err != nil {
		return nil, nil, err
	}

	source := lightcurve.NewClient(c.Source.BaseURL,
		lightcurve.WithToken(c.Source.Token),
		lightcurve.WithUserAgent(c.Source.UserAgent),
		lightcurve.WithTimeout(c.Source.Timeout),
	)

	opts := []pipeline.Option{
		pipeline.WithPrefix(c.Identifier.Prefix),
		pipeline.WithCalculator(scorer.NewCalculator(calcOpts...)),
	}

	if c.Archive.Enabled {
		opts = append(opts, pipeline.WithTransitSource(lightcurve.NewArchive(c.Archive.BaseURL,
			lightcurve.WithUserAgent(c.Source.UserAgent),
			lightcurve.WithTimeout(c.Archive.Timeout),
		)))
	}

	cleanup := func() {}
	if c.Store.Path != "" {
		st, err := store.Open(c.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("history store opened", "path", st.Path())
		opts = append(opts, pipeline.WithStore(st))
		cleanup = func() {
			if err := st.Close(); err != nil {
				slog.Warn("closing history store", "error", err)
			}
		}
	}

	slog.Debug("pipeline configured",
		"source", c.Source.BaseURL,
		"archive", c.Archive.Enabled,
		"prefix", c.Identifier.Prefix,
		"history", c.Store.Path != "",
	)

	return pipeline.New(source, opts...), cleanup, nil
}
