package check

import (
	"fairmodels/metrics"
	"fairmodels/types"
)

//------------------------------------------------------------------------------
// AuditObject
//------------------------------------------------------------------------------

// ModelResult bundles everything the audit computed for one model: the
// per-group confusion matrices, the metric table, the parity loss vector and
// the cutoffs the decisions were thresholded with. Degenerate counts the NaN
// entries produced across the table and the loss vector.
type ModelResult struct {
	Label      string
	Groups     map[string]metrics.ConfusionMatrix
	Matrix     *metrics.GroupMetricMatrix
	ParityLoss [metrics.MetricCount]float64
	Cutoffs    map[string]float64
	Degenerate int
}

// AuditObject is the merged result collection: per-model results keyed by
// label, the shared protected attribute, the fairness tolerance and the
// long-format check table. It is immutable once returned by Create; extending
// it means feeding it back into another Create call as a prior.
type AuditObject struct {
	Protected  *types.ProtectedAttribute
	Epsilon    float64
	Truth      []int
	Labels     []string
	Models     map[string]*ModelResult
	CheckTable []metrics.CheckRow
}

// Degenerate reports the total NaN census across all models.
func (o *AuditObject) Degenerate() int {
	total := 0
	for _, m := range o.Models {
		total += m.Degenerate
	}
	return total
}
