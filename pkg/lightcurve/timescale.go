package lightcurve

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/toyinlola/planetscope/pkg/interfaces"
)

// Mission time-scale offsets from Julian date.
const (
	btjdOffset = 2457000.0
	bkjdOffset = 2454833.0
)

// ToTime converts a mission timestamp to UTC. Barycentric corrections are
// ignored; the result is accurate to within a few minutes.
func ToTime(format interfaces.TimeFormat, t float64) (time.Time, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return time.Time{}, fmt.Errorf("lightcurve: non-finite timestamp")
	}

	var jd float64
	switch format {
	case interfaces.TimeBTJD, "":
		jd = t + btjdOffset
	case interfaces.TimeBKJD:
		jd = t + bkjdOffset
	case interfaces.TimeJD:
		jd = t
	default:
		return time.Time{}, fmt.Errorf("lightcurve: unknown time format %q", format)
	}

	return julian.JDToTime(jd).UTC(), nil
}

// Span returns the UTC range covered by the finite timestamps of lc,
// or nil when lc carries no usable timestamps.
func Span(lc *interfaces.LightCurve) (*interfaces.TimeSpan, error) {
	if lc == nil {
		return nil, nil
	}

	ts := lc.Time.Finite()
	if len(ts) == 0 {
		return nil, nil
	}

	lo, hi := ts[0], ts[0]
	for _, t := range ts[1:] {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}

	start, err := ToTime(lc.TimeFormat, lo)
	if err != nil {
		return nil, err
	}
	end, err := ToTime(lc.TimeFormat, hi)
	if err != nil {
		return nil, err
	}

	return &interfaces.TimeSpan{Start: start, End: end}, nil
}
