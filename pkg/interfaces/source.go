package interfaces

import "context"

// LightCurveSource abstracts the third-party light-curve service.
// It resolves an identifier (e.g., "TIC 12345") to its flux time series.
type LightCurveSource interface {
	// Fetch retrieves the light curve for a target. Implementations return an
	// apperr NotFound error when the service has no data for the identifier.
	Fetch(ctx context.Context, identifier string) (*LightCurve, error)
}

// TransitSource looks up published transit parameters for a target.
type TransitSource interface {
	// TransitParameters returns the period and epoch for the target.
	TransitParameters(ctx context.Context, identifier string) (*Transit, error)
}

// HistoryStore persists classification results.
type HistoryStore interface {
	// Save stores a classification record.
	Save(ctx context.Context, rec *Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// Pipeline orchestrates the classification workflow.
// It coordinates the light-curve source, statistics, scorer, and reporter.
type Pipeline interface {
	// Run fetches and classifies a target and returns a report.
	Run(ctx context.Context, identifier string) (*Report, error)
}
