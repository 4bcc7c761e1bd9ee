// Package quantity normalizes measurement values arriving from external services.
//
// Light-curve services report flux either as bare numbers or as unit-carrying
// objects such as {"value": 1.02, "unit": "electron / s"}. Missing samples come
// through as null or "NaN". Decoding through Value and Series reduces all of
// these to a bare float64 so the scorer never sees a wrapper.
package quantity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a scalar measurement with any unit wrapper stripped.
// Missing values are represented as NaN.
type Value float64

// Float returns the bare numeric value.
func (v Value) Float() float64 {
	return float64(v)
}

// IsFinite reports whether v is neither NaN nor infinite.
func (v Value) IsFinite() bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// wrapper is the unit-carrying form of a measurement.
type wrapper struct {
	Value json.RawMessage `json:"value"`
	Unit  string          `json:"unit"`
}

// UnmarshalJSON accepts a number, null, a numeric string, or a {"value": ...} object.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("quantity: empty value")
	}

	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("quantity: invalid literal %q", data)
		}
		*v = Value(math.NaN())
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("quantity: decoding string: %w", err)
		}
		f, err := parseString(s)
		if err != nil {
			return err
		}
		*v = Value(f)
		return nil
	case '{':
		var w wrapper
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("quantity: decoding wrapped value: %w", err)
		}
		if len(w.Value) == 0 {
			return fmt.Errorf("quantity: wrapped value has no \"value\" field")
		}
		if w.Value[0] == '{' {
			return fmt.Errorf("quantity: nested quantity wrappers are not supported")
		}
		return v.UnmarshalJSON(w.Value)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("quantity: decoding number: %w", err)
		}
		*v = Value(f)
		return nil
	}
}

// MarshalJSON writes NaN and infinities as null, since JSON has no encoding for them.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(v))
}

func parseString(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "null", "--":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity: parsing %q: %w", s, err)
	}
	return f, nil
}

// Series is a sequence of normalized measurements.
type Series []Value

// FromFloats builds a Series from bare numbers.
func FromFloats(fs []float64) Series {
	s := make(Series, len(fs))
	for i, f := range fs {
		s[i] = Value(f)
	}
	return s
}

// Floats returns the series as bare numbers, NaNs included.
func (s Series) Floats() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// Finite returns only the finite values of the series, in order. Infinities
// are dropped along with NaN since JSON cannot carry them.
func (s Series) Finite() []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if v.IsFinite() {
			out = append(out, float64(v))
		}
	}
	return out
}
