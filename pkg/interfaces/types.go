// Package interfaces defines the shared types and contracts for all planetscope modules.
// This package has no dependencies on other pkg/ packages except pkg/quantity.
// All cross-module communication goes through types and interfaces defined here.
package interfaces

import (
	"time"

	"github.com/toyinlola/planetscope/pkg/quantity"
)

// TimeFormat names the time scale of light-curve timestamps.
type TimeFormat string

const (
	TimeBTJD TimeFormat = "btjd" // TESS: BJD - 2457000
	TimeBKJD TimeFormat = "bkjd" // Kepler/K2: BJD - 2454833
	TimeJD   TimeFormat = "jd"   // Plain Julian date
)

// LightCurve is a flux time series for a single target.
type LightCurve struct {
	Target     string          `json:"target"`
	Mission    string          `json:"mission,omitempty"`
	TimeFormat TimeFormat      `json:"time_format,omitempty"`
	Time       quantity.Series `json:"time"`
	Flux       quantity.Series `json:"flux"`
}

// Len returns the number of samples in the flux series.
func (lc *LightCurve) Len() int {
	if lc == nil {
		return 0
	}
	return len(lc.Flux)
}

// Summary holds descriptive statistics over the finite flux values of a light curve.
type Summary struct {
	Count      int     `json:"count"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"std"`
	PeakToPeak float64 `json:"peak_to_peak"`
	IQR        float64 `json:"iqr"`
}

// Transit holds the transit ephemeris published for a target.
// Values the archive leaves blank are NaN and encode as null.
type Transit struct {
	Period quantity.Value `json:"period"`
	T0     quantity.Value `json:"t0"`
}

// Habitability is the composed classification for one target:
// median flux -> trees -> habitability score -> life type, plus resources.
type Habitability struct {
	TicID        string  `json:"tic_id"`
	Amplitude    float64 `json:"amplitude"`
	NumTrees     int     `json:"num_trees"`
	Score        float64 `json:"habitability"`
	LifeType     string  `json:"life_type"`
	StarRadius   float64 `json:"star_radius"`
	PlanetRadius float64 `json:"planet_radius"`
	ResourceType string  `json:"resource_type"`
}

// PlanetInputs are the scalar inputs to the planet-type rules.
type PlanetInputs struct {
	StarRadius float64 `json:"star_radius"`
	StarMass   float64 `json:"star_mass"`
	Period     float64 `json:"period"`
	MedianFlux float64 `json:"median_flux"`
}

// Report is the final output of a planetscope classification run.
type Report struct {
	ID           string        `json:"id"`
	Timestamp    time.Time     `json:"timestamp"`
	TicID        string        `json:"tic_id"`
	Mission      string        `json:"mission,omitempty"`
	Summary      Summary       `json:"summary"`
	Habitability Habitability  `json:"habitability"`
	Span         *TimeSpan     `json:"span,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// TimeSpan is the UTC range covered by a light curve.
type TimeSpan struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Record is a persisted classification result.
type Record struct {
	ID           string    `json:"id"`
	TicID        string    `json:"tic_id"`
	MedianFlux   float64   `json:"median_flux"`
	NumTrees     int       `json:"num_trees"`
	Habitability float64   `json:"habitability"`
	LifeType     string    `json:"life_type"`
	ResourceType string    `json:"resource_type"`
	CreatedAt    time.Time `json:"created_at"`
}
