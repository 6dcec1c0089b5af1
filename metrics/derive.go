package metrics

import "math"

// MetricCount is the size of the fixed metric vector derived from one
// confusion matrix.
const MetricCount = 13

// Metric identifiers, in derivation order. This order is fixed: it indexes
// the rows of every GroupMetricMatrix and the parity loss vectors.
var MetricNames = [MetricCount]string{
	"TPR", "TNR", "PPV", "NPV", "FNR", "FPR", "FDR", "FOR",
	"TS", "STP", "ACC", "F1", "MCC",
}

// MetricIndex maps a metric identifier to its row position.
var MetricIndex = func() map[string]int {
	m := make(map[string]int, MetricCount)
	for i, name := range MetricNames {
		m[name] = i
	}
	return m
}()

// ratio guards division: a zero denominator yields NaN instead of an error.
// Sparse subgroups routinely produce degenerate confusion matrices and the
// remaining metrics must keep computing.
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// Derive converts one confusion matrix into the fixed 13-metric vector.
// Every division by zero, including a zero factor under MCC's square root,
// produces NaN for that entry only.
func Derive(cm ConfusionMatrix) [MetricCount]float64 {
	tp := float64(cm.TP)
	fp := float64(cm.FP)
	tn := float64(cm.TN)
	fn := float64(cm.FN)

	positives := tp + fn
	negatives := tn + fp
	total := tp + fp + tn + fn

	tpr := ratio(tp, positives)
	ppv := ratio(tp, tp+fp)

	return [MetricCount]float64{
		tpr,
		ratio(tn, negatives),
		ppv,
		ratio(tn, tn+fn),
		ratio(fn, positives),
		ratio(fp, negatives),
		ratio(fp, fp+tp),
		ratio(fn, fn+tn),
		ratio(tp, tp+fn+fp),
		ratio(tp+fp, total),
		ratio(tp+tn, total),
		ratio(2*ppv*tpr, ppv+tpr),
		ratio(tp*tn-fp*fn, math.Sqrt((tp+fp)*(tp+fn)*(tn+fp)*(tn+fn))),
	}
}
