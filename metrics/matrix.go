package metrics

import (
	"fmt"
	"math"

	"fairmodels/types"

	"gonum.org/v1/gonum/mat"
)

//------------------------------------------------------------------------------
// GroupMetricMatrix
//------------------------------------------------------------------------------

// GroupMetricMatrix is the metrics-by-groups table of one model: one row per
// metric identifier in MetricNames order, one column per protected attribute
// level. Entries are in [0,1] (MCC in [-1,1]) or NaN when the group was too
// sparse for the metric.
type GroupMetricMatrix struct {
	Levels []string
	Data   *mat.Dense
}

// NewGroupMetricMatrix derives the metric vector of every group confusion
// matrix and assembles the full table. The level order is taken from the
// attribute level set, missing groups are an error since BuildGroupConfusionMatrices
// always emits the full set.
func NewGroupMetricMatrix(groups map[string]ConfusionMatrix, levels []string) (*GroupMetricMatrix, error) {
	data := mat.NewDense(MetricCount, len(levels), nil)
	for col, lvl := range levels {
		cm, ok := groups[lvl]
		if !ok {
			return nil, fmt.Errorf("%w: no confusion matrix for level %q", types.ErrInvalidInput, lvl)
		}
		derived := Derive(cm)
		for row := 0; row < MetricCount; row++ {
			data.Set(row, col, derived[row])
		}
	}
	return &GroupMetricMatrix{Levels: levels, Data: data}, nil
}

// Value returns the entry for one metric identifier and one level.
func (g *GroupMetricMatrix) Value(metric, level string) (float64, error) {
	row, ok := MetricIndex[metric]
	if !ok {
		return 0, fmt.Errorf("%w: unknown metric %q", types.ErrInvalidInput, metric)
	}
	col, err := g.levelColumn(level)
	if err != nil {
		return 0, err
	}
	return g.Data.At(row, col), nil
}

// Row returns the per-level values of one metric, in level order.
func (g *GroupMetricMatrix) Row(metric string) ([]float64, error) {
	row, ok := MetricIndex[metric]
	if !ok {
		return nil, fmt.Errorf("%w: unknown metric %q", types.ErrInvalidInput, metric)
	}
	return mat.Row(nil, row, g.Data), nil
}

// NaNCount reports how many entries of the table are degenerate.
func (g *GroupMetricMatrix) NaNCount() int {
	count := 0
	rows, cols := g.Data.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if math.IsNaN(g.Data.At(r, c)) {
				count++
			}
		}
	}
	return count
}

func (g *GroupMetricMatrix) levelColumn(level string) (int, error) {
	for i, lvl := range g.Levels {
		if lvl == level {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown level %q", types.ErrInvalidInput, level)
}

//------------------------------------------------------------------------------
// Parity loss
//------------------------------------------------------------------------------

// ParityLoss reduces the table to one scalar per metric: the sum over levels
// of the absolute deviation from the privileged column. The privileged column
// contributes an exact zero. Any NaN entry in a row makes that row's parity
// loss NaN; the caller counts and surfaces those instead of failing.
func (g *GroupMetricMatrix) ParityLoss(privileged string) ([MetricCount]float64, error) {
	var loss [MetricCount]float64

	privCol, err := g.levelColumn(privileged)
	if err != nil {
		return loss, err
	}

	for row := 0; row < MetricCount; row++ {
		values := mat.Row(nil, row, g.Data)
		ref := values[privCol]
		sum := 0.0
		for _, v := range values {
			sum += math.Abs(v - ref)
		}
		loss[row] = sum
	}

	return loss, nil
}

// NaNLossCount reports how many entries of a parity loss vector are NaN.
func NaNLossCount(loss [MetricCount]float64) int {
	count := 0
	for _, v := range loss {
		if math.IsNaN(v) {
			count++
		}
	}
	return count
}
