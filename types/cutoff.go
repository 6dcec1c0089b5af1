package types

import (
	"fmt"
	"math"
)

//------------------------------------------------------------------------------
// CutoffSpec
//------------------------------------------------------------------------------

// CutoffSpec describes how decision thresholds were supplied by the caller.
// Exactly one of the fields may be set:
//   - nothing:  every level defaults to DefaultCutoff
//   - Values:   a single scalar broadcast to every level
//   - ByLevel:  per-level thresholds, missing levels filled with DefaultCutoff
//
// A Values vector longer than one entry is rejected, there is no positional
// mapping from bare numbers to levels.
type CutoffSpec struct {
	Values  []float64          `json:"values,omitempty" bson:"values,omitempty"`
	ByLevel map[string]float64 `json:"by_level,omitempty" bson:"by_level,omitempty"`
}

// Resolve completes cs against the attribute level set and returns one
// threshold per level. A nil receiver behaves like the zero value.
func (cs *CutoffSpec) Resolve(pa *ProtectedAttribute) (map[string]float64, error) {
	cutoffs := make(map[string]float64, len(pa.Levels))
	for _, lvl := range pa.Levels {
		cutoffs[lvl] = DefaultCutoff
	}

	if cs == nil {
		return cutoffs, nil
	}
	if len(cs.Values) > 0 && len(cs.ByLevel) > 0 {
		return nil, fmt.Errorf("%w: both scalar and per-level cutoffs supplied", ErrInvalidCutoff)
	}

	if len(cs.Values) > 0 {
		if len(cs.Values) > 1 {
			return nil, fmt.Errorf("%w: bare numeric vector of length %d", ErrInvalidCutoff, len(cs.Values))
		}
		c := cs.Values[0]
		if err := checkCutoffValue(c); err != nil {
			return nil, err
		}
		for _, lvl := range pa.Levels {
			cutoffs[lvl] = c
		}
		return cutoffs, nil
	}

	for lvl, c := range cs.ByLevel {
		if !pa.HasLevel(lvl) {
			return nil, fmt.Errorf("%w: unrecognized level %q", ErrInvalidCutoff, lvl)
		}
		if err := checkCutoffValue(c); err != nil {
			return nil, err
		}
		cutoffs[lvl] = c
	}

	return cutoffs, nil
}

func checkCutoffValue(c float64) error {
	if math.IsNaN(c) || c < 0 || c > 1 {
		return fmt.Errorf("%w: cutoff %v outside [0,1]", ErrInvalidCutoff, c)
	}
	return nil
}

// ResolveEpsilon validates the fairness tolerance, defaulting when absent.
func ResolveEpsilon(epsilon *float64) (float64, error) {
	if epsilon == nil {
		return DefaultEpsilon, nil
	}
	e := *epsilon
	if math.IsNaN(e) || math.IsInf(e, 0) || e <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidEpsilon, e)
	}
	return e, nil
}
