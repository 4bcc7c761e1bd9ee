package scorer

import "github.com/toyinlola/planetscope/pkg/interfaces"

// Calculator composes the tables into the habitability workflow.
type Calculator struct {
	treeTable  *Table[int]
	lifeTable  *Table[string]
	resources  *Rules[ResourceInputs, string]
	planets    *Rules[interfaces.PlanetInputs, string]
	starRadius float64
}

// Option configures the Calculator.
type Option func(*Calculator)

// WithTreeTable overrides the median-flux -> trees table.
func WithTreeTable(t *Table[int]) Option {
	return func(c *Calculator) {
		c.treeTable = t
	}
}

// WithLifeTable overrides the score -> life-type table.
func WithLifeTable(t *Table[string]) Option {
	return func(c *Calculator) {
		c.lifeTable = t
	}
}

// WithStarRadius overrides the assumed stellar radius.
func WithStarRadius(r float64) Option {
	return func(c *Calculator) {
		c.starRadius = r
	}
}

// NewCalculator creates a calculator with optional configuration.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		treeTable:  DefaultTreesFromFlux(),
		lifeTable:  DefaultLifeTypes(),
		resources:  DefaultResourceRules(),
		planets:    DefaultPlanetRules(),
		starRadius: DefaultStarRadius,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HabitabilityScore combines a tree count and an amplitude into a unit-less score.
// Formula: trees*10 + amplitude*1000.
func HabitabilityScore(treeCount, amplitude float64) float64 {
	return treeCount*TreeWeight + amplitude*AmplitudeWeight
}

// Trees returns the number of trees supported by a median flux.
func (c *Calculator) Trees(medianFlux float64) int {
	return c.treeTable.Classify(medianFlux)
}

// LifeType classifies a habitability score.
func (c *Calculator) LifeType(score float64) string {
	return c.lifeTable.Classify(score)
}

// Habitability runs the full chain for a target's median flux.
// The median flux doubles as the amplitude, and the planet radius is
// the median flux scaled by the assumed stellar radius.
func (c *Calculator) Habitability(ticID string, medianFlux float64) interfaces.Habitability {
	trees := c.Trees(medianFlux)
	score := HabitabilityScore(float64(trees), medianFlux)
	planetRadius := medianFlux * c.starRadius

	return interfaces.Habitability{
		TicID:        ticID,
		Amplitude:    medianFlux,
		NumTrees:     trees,
		Score:        score,
		LifeType:     c.LifeType(score),
		StarRadius:   c.starRadius,
		PlanetRadius: planetRadius,
		ResourceType: c.ResourceType(c.starRadius, planetRadius),
	}
}

// ResourceType classifies a star/planet radius pair.
func (c *Calculator) ResourceType(starRadius, planetRadius float64) string {
	return c.resources.Classify(ResourceInputs{StarRadius: starRadius, PlanetRadius: planetRadius})
}

// PlanetType classifies a planet from stellar and orbital inputs.
func (c *Calculator) PlanetType(in interfaces.PlanetInputs) string {
	return c.planets.Classify(in)
}
