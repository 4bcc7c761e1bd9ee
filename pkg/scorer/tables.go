// Package scorer maps light-curve statistics to trees, habitability, life,
// resource and planet classifications through threshold tables and rules.
package scorer

import "github.com/toyinlola/planetscope/pkg/interfaces"

// Life-type labels, highest habitability first.
const (
	LifeAdvanced  = "Advanced life forms such as animals and plants"
	LifeComplex   = "Complex life forms such as fungi and multicellular organisms"
	LifeMicrobial = "Microbial life such as bacteria and archaea"
	LifeNone      = "No known life forms"
)

// Resource-type labels.
const (
	ResourceHeavy = "Heavy elements such as gold, silver, and iron"
	ResourceBasic = "Basic resources such as carbon and minerals"
)

// Planet-type labels.
const (
	PlanetRocky   = "Rocky Planet"
	PlanetGiant   = "Gas Giant"
	PlanetUnknown = "Unknown"
)

// Habitability score weights.
const (
	TreeWeight      = 10
	AmplitudeWeight = 1000
)

// DefaultStarRadius is the assumed stellar radius, in solar radii, when none is known.
const DefaultStarRadius = 1.0

// Registered table names.
const (
	TableTreesFromFlux      = "trees_from_flux"
	TableTreesFromAmplitude = "trees_from_amplitude"
	TableLifeType           = "life_type"
)

// DefaultTreesFromFlux returns the median-flux -> number-of-trees table.
func DefaultTreesFromFlux() *Table[int] {
	return MustTable(Below, []Step[int]{
		{Threshold: 10, Output: 1},
		{Threshold: 40, Output: 10},
		{Threshold: 70, Output: 40},
		{Threshold: 100, Output: 60},
	}, 60)
}

// DefaultTreesFromAmplitude returns the amplitude -> number-of-trees table.
// Larger amplitudes support fewer trees.
func DefaultTreesFromAmplitude() *Table[int] {
	return MustTable(Below, []Step[int]{
		{Threshold: 0.1, Output: 10},
		{Threshold: 0.5, Output: 5},
		{Threshold: 1.0, Output: 1},
	}, 1)
}

// DefaultLifeTypes returns the habitability score -> life-type table.
func DefaultLifeTypes() *Table[string] {
	return MustTable(AtLeast, []Step[string]{
		{Threshold: 80, Output: LifeAdvanced},
		{Threshold: 60, Output: LifeComplex},
		{Threshold: 40, Output: LifeMicrobial},
	}, LifeNone)
}

// ResourceInputs are the inputs to the resource-type rules.
type ResourceInputs struct {
	StarRadius   float64
	PlanetRadius float64
}

// DefaultResourceRules returns the resource-type rules.
func DefaultResourceRules() *Rules[ResourceInputs, string] {
	return NewRules(ResourceBasic,
		Rule[ResourceInputs, string]{
			Name:   "heavy",
			When:   func(in ResourceInputs) bool { return in.StarRadius > 1.0 && in.PlanetRadius > 1.0 },
			Output: ResourceHeavy,
		},
	)
}

// DefaultPlanetRules returns the planet-type rules.
func DefaultPlanetRules() *Rules[interfaces.PlanetInputs, string] {
	return NewRules(PlanetUnknown,
		Rule[interfaces.PlanetInputs, string]{
			Name: "rocky",
			When: func(in interfaces.PlanetInputs) bool {
				return in.StarRadius < 1.0 && in.StarMass < 1.0 && in.Period < 10 && in.MedianFlux < 0.5
			},
			Output: PlanetRocky,
		},
		Rule[interfaces.PlanetInputs, string]{
			Name: "gas_giant",
			When: func(in interfaces.PlanetInputs) bool {
				return in.StarRadius > 1.0 && in.StarMass > 1.0 && in.Period > 100 && in.MedianFlux > 1.0
			},
			Output: PlanetGiant,
		},
	)
}
