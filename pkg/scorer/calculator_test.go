package scorer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/toyinlola/planetscope/pkg/interfaces"
)

func TestHabitabilityScore(t *testing.T) {
	tests := []struct {
		trees, amplitude, want float64
	}{
		{0, 0, 0},
		{1, 0.01, 20},
		{1, 5, 5010},
		{60, 0.02, 620},
	}

	for _, tt := range tests {
		if got := HabitabilityScore(tt.trees, tt.amplitude); got != tt.want {
			t.Errorf("HabitabilityScore(%v, %v): expected %v, got %v", tt.trees, tt.amplitude, tt.want, got)
		}
	}
}

func TestCalculator_MedianFluxFive_AdvancedLife(t *testing.T) {
	calc := NewCalculator()
	got := calc.Habitability("TIC 12345", 5)

	want := interfaces.Habitability{
		TicID:        "TIC 12345",
		Amplitude:    5,
		NumTrees:     1,
		Score:        5010,
		LifeType:     LifeAdvanced,
		StarRadius:   1.0,
		PlanetRadius: 5,
		ResourceType: ResourceBasic,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Habitability mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculator_SmallFlux_NoKnownLife(t *testing.T) {
	calc := NewCalculator()
	got := calc.Habitability("TIC 1", 0.02)

	// trees = 1 (0.02 < 10); score = 10 + 20 = 30
	if got.NumTrees != 1 {
		t.Errorf("expected 1 tree, got %d", got.NumTrees)
	}
	if got.Score != 30 {
		t.Errorf("expected score 30, got %v", got.Score)
	}
	if got.LifeType != LifeNone {
		t.Errorf("expected %q, got %q", LifeNone, got.LifeType)
	}
}

func TestCalculator_LargerStarYieldsHeavyResources(t *testing.T) {
	calc := NewCalculator(WithStarRadius(2.0))
	got := calc.Habitability("TIC 2", 0.75)

	// planet radius = 0.75 * 2.0 = 1.5 > 1.0
	if got.PlanetRadius != 1.5 {
		t.Errorf("expected planet radius 1.5, got %v", got.PlanetRadius)
	}
	if got.ResourceType != ResourceHeavy {
		t.Errorf("expected %q, got %q", ResourceHeavy, got.ResourceType)
	}
}

func TestCalculator_CustomTreeTable(t *testing.T) {
	calc := NewCalculator(WithTreeTable(MustTable(Below, []Step[int]{
		{Threshold: 1, Output: 100},
	}, 0)))

	if got := calc.Trees(0.5); got != 100 {
		t.Errorf("expected 100 trees from custom table, got %d", got)
	}
	if got := calc.Trees(1); got != 0 {
		t.Errorf("expected overflow 0, got %d", got)
	}
}

func TestCalculator_ResourceType(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		star, planet float64
		want         string
	}{
		{1.0, 1.0, ResourceBasic}, // strict >
		{1.1, 1.0, ResourceBasic},
		{1.0, 1.1, ResourceBasic},
		{1.1, 1.1, ResourceHeavy},
	}

	for _, tt := range tests {
		if got := calc.ResourceType(tt.star, tt.planet); got != tt.want {
			t.Errorf("ResourceType(%v, %v): expected %q, got %q", tt.star, tt.planet, tt.want, got)
		}
	}
}

func TestCalculator_PlanetType(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name string
		in   interfaces.PlanetInputs
		want string
	}{
		{"rocky", interfaces.PlanetInputs{StarRadius: 0.8, StarMass: 0.7, Period: 3, MedianFlux: 0.2}, PlanetRocky},
		{"gas giant", interfaces.PlanetInputs{StarRadius: 1.5, StarMass: 1.2, Period: 300, MedianFlux: 2}, PlanetGiant},
		{"rocky boundary period", interfaces.PlanetInputs{StarRadius: 0.8, StarMass: 0.7, Period: 10, MedianFlux: 0.2}, PlanetUnknown},
		{"giant boundary flux", interfaces.PlanetInputs{StarRadius: 1.5, StarMass: 1.2, Period: 300, MedianFlux: 1}, PlanetUnknown},
		{"mixed", interfaces.PlanetInputs{StarRadius: 0.5, StarMass: 2, Period: 50, MedianFlux: 1}, PlanetUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.PlanetType(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
