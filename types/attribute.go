package types

import (
	"fmt"
	"sort"
)

//------------------------------------------------------------------------------
// ProtectedAttribute
//------------------------------------------------------------------------------

// ProtectedAttribute is the canonical categorical form of the sensitive
// attribute. It is built once, up front, so that the level set is fixed and
// validated before any metric computation touches it.
type ProtectedAttribute struct {
	Values     []string `json:"values" bson:"values"`
	Levels     []string `json:"levels" bson:"levels"`
	Privileged string   `json:"privileged" bson:"privileged"`
}

// NewProtectedAttribute coerces a raw categorical vector into its canonical
// form. Levels are derived from the observed values and kept in sorted order.
// The privileged level must be one of them.
func NewProtectedAttribute(values []string, privileged string) (*ProtectedAttribute, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty protected attribute", ErrMissingParameter)
	}
	if privileged == "" {
		return nil, fmt.Errorf("%w: empty privileged group", ErrMissingParameter)
	}

	seen := make(map[string]bool)
	levels := make([]string, 0)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	sort.Strings(levels)

	if !seen[privileged] {
		return nil, fmt.Errorf("%w: %q not in %v", ErrInvalidLevel, privileged, levels)
	}

	// Keep a private copy, the caller still owns its slice
	vals := make([]string, len(values))
	copy(vals, values)

	return &ProtectedAttribute{
		Values:     vals,
		Levels:     levels,
		Privileged: privileged,
	}, nil
}

// HasLevel reports whether lvl belongs to the attribute level set.
func (pa *ProtectedAttribute) HasLevel(lvl string) bool {
	for _, l := range pa.Levels {
		if l == lvl {
			return true
		}
	}
	return false
}

// Rows returns the number of subjects carried by the attribute.
func (pa *ProtectedAttribute) Rows() int {
	return len(pa.Values)
}

// GroupRows returns the row indexes belonging to level lvl. An unknown level
// yields an empty slice, which downstream turns into an all-zero confusion
// matrix rather than a skipped group.
func (pa *ProtectedAttribute) GroupRows(lvl string) []int {
	rows := make([]int, 0)
	for i, v := range pa.Values {
		if v == lvl {
			rows = append(rows, i)
		}
	}
	return rows
}

// Equal reports whether two attributes carry the same values in the same
// order and designate the same privileged level. Merges require exact
// equality, not just equal level sets.
func (pa *ProtectedAttribute) Equal(other *ProtectedAttribute) bool {
	if other == nil {
		return false
	}
	if pa.Privileged != other.Privileged {
		return false
	}
	if len(pa.Values) != len(other.Values) {
		return false
	}
	for i := range pa.Values {
		if pa.Values[i] != other.Values[i] {
			return false
		}
	}
	return true
}
