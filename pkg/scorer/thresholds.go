package scorer

import (
	"fmt"
	"math"

	"github.com/toyinlola/planetscope/pkg/apperr"
)

// Direction declares how a table's thresholds are scanned.
type Direction int

const (
	// Below scans thresholds in ascending order and matches the first
	// threshold the value is strictly less than. A value equal to a
	// threshold falls into the next bucket.
	Below Direction = iota
	// AtLeast scans thresholds in descending order and matches the first
	// threshold the value is greater than or equal to.
	AtLeast
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Below:
		return "below"
	case AtLeast:
		return "at_least"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Step is one (threshold, output) pair of a Table.
type Step[T any] struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Output    T       `json:"output" yaml:"output"`
}

// Table maps a scalar to a discrete output through ordered thresholds.
// Tables are immutable once built and safe for concurrent use.
type Table[T any] struct {
	direction Direction
	steps     []Step[T]
	overflow  T
}

// NewTable builds a threshold table.
// Below tables must list thresholds strictly increasing; AtLeast tables
// strictly decreasing, i.e. in the order they are checked. Overflow is
// returned when no threshold matches. A malformed table is a
// configuration error.
func NewTable[T any](dir Direction, steps []Step[T], overflow T) (*Table[T], error) {
	if dir != Below && dir != AtLeast {
		return nil, apperr.Configuration("scorer: unknown table direction %d", int(dir))
	}

	for i, s := range steps {
		if math.IsNaN(s.Threshold) {
			return nil, apperr.Configuration("scorer: threshold %d is NaN", i)
		}
		if i == 0 {
			continue
		}
		prev := steps[i-1].Threshold
		if dir == Below && s.Threshold <= prev {
			return nil, apperr.Configuration(
				"scorer: thresholds must be strictly increasing, got %g after %g at index %d", s.Threshold, prev, i)
		}
		if dir == AtLeast && s.Threshold >= prev {
			return nil, apperr.Configuration(
				"scorer: thresholds must be strictly decreasing, got %g after %g at index %d", s.Threshold, prev, i)
		}
	}

	cp := make([]Step[T], len(steps))
	copy(cp, steps)

	return &Table[T]{direction: dir, steps: cp, overflow: overflow}, nil
}

// MustTable is like NewTable but panics on a malformed table.
// It is intended for package-level defaults.
func MustTable[T any](dir Direction, steps []Step[T], overflow T) *Table[T] {
	t, err := NewTable(dir, steps, overflow)
	if err != nil {
		panic(err)
	}
	return t
}

// Classify returns the output for value.
// NaN compares false against every threshold and therefore yields the overflow output.
func (t *Table[T]) Classify(value float64) T {
	for _, s := range t.steps {
		switch t.direction {
		case Below:
			if value < s.Threshold {
				return s.Output
			}
		case AtLeast:
			if value >= s.Threshold {
				return s.Output
			}
		}
	}
	return t.overflow
}

// Output implements Classifier.
func (t *Table[T]) Output(value float64) any {
	return t.Classify(value)
}

// Direction returns the scan direction.
func (t *Table[T]) Direction() Direction {
	return t.direction
}

// Steps returns a copy of the table's steps in scan order.
func (t *Table[T]) Steps() []Step[T] {
	cp := make([]Step[T], len(t.steps))
	copy(cp, t.steps)
	return cp
}

// Overflow returns the output used when no threshold matches.
func (t *Table[T]) Overflow() T {
	return t.overflow
}
