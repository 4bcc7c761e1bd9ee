// Package pipeline ties a light-curve source to the statistics and scoring
// packages. Every exported operation validates the identifier before any
// upstream call is made.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/toyinlola/planetscope/pkg/apperr"
	"github.com/toyinlola/planetscope/pkg/interfaces"
	"github.com/toyinlola/planetscope/pkg/lightcurve"
	"github.com/toyinlola/planetscope/pkg/quantity"
	"github.com/toyinlola/planetscope/pkg/scorer"
	"github.com/toyinlola/planetscope/pkg/stats"
)

// DefaultPrefix is the identifier prefix required for TESS Input Catalog targets.
const DefaultPrefix = "TIC "

// Pipeline runs classifications for a single light-curve source.
type Pipeline struct {
	source   interfaces.LightCurveSource
	transits interfaces.TransitSource
	store    interfaces.HistoryStore
	calc     *scorer.Calculator
	prefix   string
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTransitSource sets the archive used for transit parameters.
func WithTransitSource(ts interfaces.TransitSource) Option {
	return func(p *Pipeline) {
		p.transits = ts
	}
}

// WithStore enables persistence of classification results.
func WithStore(s interfaces.HistoryStore) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

// WithCalculator replaces the default scorer.
func WithCalculator(c *scorer.Calculator) Option {
	return func(p *Pipeline) {
		p.calc = c
	}
}

// WithPrefix sets the required identifier prefix. An empty prefix
// accepts any non-empty identifier.
func WithPrefix(prefix string) Option {
	return func(p *Pipeline) {
		p.prefix = prefix
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

var _ interfaces.Pipeline = (*Pipeline)(nil)

// New creates a pipeline reading light curves from source.
func New(source interfaces.LightCurveSource, opts ...Option) *Pipeline {
	p := &Pipeline{
		source: source,
		calc:   scorer.NewCalculator(),
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Calculator returns the scorer used by the pipeline.
func (p *Pipeline) Calculator() *scorer.Calculator {
	return p.calc
}

// HasStore reports whether classification history is being recorded.
func (p *Pipeline) HasStore() bool {
	return p.store != nil
}

// Validate checks identifier against the configured prefix.
// The comparison is case-sensitive and the identifier is not normalized.
func (p *Pipeline) Validate(identifier string) error {
	if identifier == "" {
		return apperr.Input("tic_id is required")
	}
	if !strings.HasPrefix(identifier, p.prefix) {
		return apperr.Input("invalid identifier %q: must start with %q", identifier, p.prefix)
	}
	return nil
}

// LightCurve validates identifier and fetches its light curve.
func (p *Pipeline) LightCurve(ctx context.Context, identifier string) (*interfaces.LightCurve, error) {
	if err := p.Validate(identifier); err != nil {
		return nil, err
	}
	return p.source.Fetch(ctx, identifier)
}

// MedianFlux fetches the light curve and returns its NaN-excluded median flux.
func (p *Pipeline) MedianFlux(ctx context.Context, identifier string) (float64, *interfaces.LightCurve, error) {
	lc, err := p.LightCurve(ctx, identifier)
	if err != nil {
		return 0, nil, err
	}
	median, err := stats.Median(lc.Flux)
	if err != nil {
		return 0, nil, err
	}
	return median, lc, nil
}

// Trees returns the number of trees supported by the target's median flux.
func (p *Pipeline) Trees(ctx context.Context, identifier string) (int, error) {
	median, _, err := p.MedianFlux(ctx, identifier)
	if err != nil {
		return 0, err
	}
	return p.calc.Trees(median), nil
}

// QueryResult is the raw view of a target: its flux and the derived tree count.
type QueryResult struct {
	TicID      string          `json:"tic_id"`
	MedianFlux float64         `json:"median_flux"`
	NumTrees   int             `json:"num_trees"`
	Flux       quantity.Series `json:"flux"`
}

// Query returns the median flux, tree count and full flux series for identifier.
func (p *Pipeline) Query(ctx context.Context, identifier string) (*QueryResult, error) {
	median, lc, err := p.MedianFlux(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return &QueryResult{
		TicID:      identifier,
		MedianFlux: median,
		NumTrees:   p.calc.Trees(median),
		Flux:       lc.Flux,
	}, nil
}

// StatsResult is a flux summary labelled with its target.
type StatsResult struct {
	TicID string `json:"tic_id"`
	interfaces.Summary
}

// Stats returns descriptive statistics over the target's flux.
func (p *Pipeline) Stats(ctx context.Context, identifier string) (*StatsResult, error) {
	lc, err := p.LightCurve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	summary, err := stats.Summarize(lc.Flux)
	if err != nil {
		return nil, err
	}
	return &StatsResult{TicID: identifier, Summary: summary}, nil
}

// Run fetches the light curve for identifier and produces the full
// classification report. The result is recorded when a store is configured.
func (p *Pipeline) Run(ctx context.Context, identifier string) (*interfaces.Report, error) {
	start := time.Now()

	lc, err := p.LightCurve(ctx, identifier)
	if err != nil {
		return nil, err
	}

	summary, err := stats.Summarize(lc.Flux)
	if err != nil {
		return nil, err
	}

	hab := p.calc.Habitability(identifier, summary.Median)

	span, err := lightcurve.Span(lc)
	if err != nil {
		slog.Warn("could not convert light-curve timestamps", "tic_id", identifier, "error", err)
		span = nil
	}

	rpt := &interfaces.Report{
		ID:           uuid.New().String(),
		Timestamp:    p.now(),
		TicID:        identifier,
		Mission:      lc.Mission,
		Summary:      summary,
		Habitability: hab,
		Span:         span,
		Duration:     time.Since(start),
	}

	slog.Info("classification complete",
		"tic_id", identifier,
		"median_flux", summary.Median,
		"num_trees", hab.NumTrees,
		"habitability", hab.Score,
	)

	p.record(ctx, rpt)
	return rpt, nil
}

// record saves the result best-effort; failures are logged only.
func (p *Pipeline) record(ctx context.Context, rpt *interfaces.Report) {
	if p.store == nil {
		return
	}
	rec := &interfaces.Record{
		ID:           rpt.ID,
		TicID:        rpt.TicID,
		MedianFlux:   rpt.Summary.Median,
		NumTrees:     rpt.Habitability.NumTrees,
		Habitability: rpt.Habitability.Score,
		LifeType:     rpt.Habitability.LifeType,
		ResourceType: rpt.Habitability.ResourceType,
		CreatedAt:    rpt.Timestamp,
	}
	if err := p.store.Save(ctx, rec); err != nil {
		slog.Error("saving classification", "tic_id", rpt.TicID, "error", err)
	}
}

// History returns up to limit recent classifications, newest first.
func (p *Pipeline) History(ctx context.Context, limit int) ([]interfaces.Record, error) {
	if p.store == nil {
		return nil, apperr.NotFound("classification history is not enabled")
	}
	return p.store.Recent(ctx, limit)
}

// PlanetRequest carries the inputs to planet-type classification.
// Values may be bare numbers or unit-wrapped quantities. A nil Period is
// looked up from the transit source.
type PlanetRequest struct {
	TicID      string          `json:"tic_id"`
	StarRadius *quantity.Value `json:"star_radius"`
	StarMass   *quantity.Value `json:"star_mass"`
	Period     *quantity.Value `json:"period,omitempty"`
}

// PlanetResult is a planet-type classification and its inputs.
type PlanetResult struct {
	TicID      string                  `json:"tic_id"`
	Inputs     interfaces.PlanetInputs `json:"inputs"`
	PlanetType string                  `json:"planet_type"`
}

// requiredInput returns the value of a required request field.
func requiredInput(name string, v *quantity.Value) (float64, error) {
	if v == nil {
		return 0, apperr.Input("%s is required", name)
	}
	if !v.IsFinite() {
		return 0, apperr.Input("%s must be a finite number", name)
	}
	return v.Float(), nil
}

// PlanetType classifies the target's planet from stellar inputs, its
// median flux and its orbital period.
func (p *Pipeline) PlanetType(ctx context.Context, req PlanetRequest) (*PlanetResult, error) {
	if err := p.Validate(req.TicID); err != nil {
		return nil, err
	}
	starRadius, err := requiredInput("star_radius", req.StarRadius)
	if err != nil {
		return nil, err
	}
	starMass, err := requiredInput("star_mass", req.StarMass)
	if err != nil {
		return nil, err
	}

	var period float64
	switch {
	case req.Period != nil:
		if period, err = requiredInput("period", req.Period); err != nil {
			return nil, err
		}
	case p.transits == nil:
		return nil, apperr.Input("period is required when no exoplanet archive is configured")
	}

	median, _, err := p.MedianFlux(ctx, req.TicID)
	if err != nil {
		return nil, err
	}

	if req.Period == nil {
		tr, err := p.transits.TransitParameters(ctx, req.TicID)
		if err != nil {
			return nil, err
		}
		if !tr.Period.IsFinite() {
			return nil, apperr.NotFound("no orbital period available for %s", req.TicID)
		}
		period = tr.Period.Float()
	}

	in := interfaces.PlanetInputs{
		StarRadius: starRadius,
		StarMass:   starMass,
		Period:     period,
		MedianFlux: median,
	}
	return &PlanetResult{
		TicID:      req.TicID,
		Inputs:     in,
		PlanetType: p.calc.PlanetType(in),
	}, nil
}

// TransitView is the transit page for one target.
type TransitView struct {
	TicID   string               `json:"tic_id"`
	Digits  string               `json:"digits"`
	Period  quantity.Value       `json:"period"`
	T0      quantity.Value       `json:"t0"`
	Samples int                  `json:"samples"`
	Span    *interfaces.TimeSpan `json:"span,omitempty"`
}

// Transit fetches the light curve and the transit parameters concurrently.
// A missing light curve fails the request; a failed transit lookup is
// logged and leaves Period and T0 empty.
func (p *Pipeline) Transit(ctx context.Context, identifier string) (*TransitView, error) {
	if err := p.Validate(identifier); err != nil {
		return nil, err
	}

	view := &TransitView{
		TicID:  identifier,
		Digits: Digits(identifier),
		Period: quantity.Value(math.NaN()),
		T0:     quantity.Value(math.NaN()),
	}

	g, gctx := errgroup.WithContext(ctx)

	var lc *interfaces.LightCurve
	g.Go(func() error {
		var err error
		lc, err = p.source.Fetch(gctx, identifier)
		return err
	})

	var tr *interfaces.Transit
	if p.transits != nil {
		g.Go(func() error {
			var err error
			tr, err = p.transits.TransitParameters(gctx, identifier)
			if err != nil {
				slog.Warn("retrieving transit parameters", "tic_id", identifier, "error", err)
				tr = nil
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pipeline: transit view for %s: %w", identifier, err)
	}

	if tr != nil {
		view.Period = tr.Period
		view.T0 = tr.T0
	}
	view.Samples = lc.Len()

	span, err := lightcurve.Span(lc)
	if err != nil {
		slog.Warn("could not convert light-curve timestamps", "tic_id", identifier, "error", err)
	}
	view.Span = span

	return view, nil
}

// Digits returns only the decimal digits of identifier, in order.
func Digits(identifier string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, identifier)
}
