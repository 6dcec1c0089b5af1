package check

import "math"

//------------------------------------------------------------------------------
// Epsilon verdicts
//------------------------------------------------------------------------------

// Verdict summarizes the fairness check of one model: how many rows of its
// check table fall within the epsilon tolerance. A NaN difference cannot
// demonstrate parity, so it counts as failed.
type Verdict struct {
	Label  string
	Passed int
	Failed int
	Fair   bool
}

// Verdicts evaluates every model of the audit against its epsilon, in stored
// label order.
func (o *AuditObject) Verdicts() []Verdict {
	verdicts := make([]Verdict, 0, len(o.Labels))

	for _, label := range o.Labels {
		v := Verdict{Label: label}
		for _, row := range o.CheckTable {
			if row.Model != label {
				continue
			}
			if !math.IsNaN(row.Score) && math.Abs(row.Score) < o.Epsilon {
				v.Passed++
			} else {
				v.Failed++
			}
		}
		v.Fair = v.Failed == 0 && v.Passed > 0
		verdicts = append(verdicts, v)
	}

	return verdicts
}
