package metrics

//------------------------------------------------------------------------------
// Fairness check table
//------------------------------------------------------------------------------

// The five designated fairness-check metrics and the names their difference
// rows carry in the long-format table.
var checkMetrics = []struct {
	id   string
	name string
}{
	{"STP", "statistical parity"},
	{"TPR", "equal opportunity"},
	{"PPV", "predictive parity"},
	{"FPR", "predictive equality"},
	{"ACC", "accuracy equality"},
}

// CheckRow is one row of the long-format fairness-check table: the difference
// of one metric between one unprivileged subgroup and the privileged group,
// for one model. This table is the sole input of the check/report consumers.
type CheckRow struct {
	Metric   string  `json:"metric" bson:"metric"`
	Subgroup string  `json:"subgroup" bson:"subgroup"`
	Score    float64 `json:"score" bson:"score"`
	Model    string  `json:"model" bson:"model"`
}

// FairnessCheckRows derives the check rows of one model from its metric
// table. The privileged level itself is dropped, its difference is zero by
// construction and carries nothing.
func FairnessCheckRows(g *GroupMetricMatrix, privileged, model string) ([]CheckRow, error) {
	rows := make([]CheckRow, 0, len(checkMetrics)*(len(g.Levels)-1))

	for _, cm := range checkMetrics {
		ref, err := g.Value(cm.id, privileged)
		if err != nil {
			return nil, err
		}
		for _, lvl := range g.Levels {
			if lvl == privileged {
				continue
			}
			v, err := g.Value(cm.id, lvl)
			if err != nil {
				return nil, err
			}
			rows = append(rows, CheckRow{
				Metric:   cm.name,
				Subgroup: lvl,
				Score:    v - ref,
				Model:    model,
			})
		}
	}

	return rows, nil
}

// CheckMetricCount is the number of designated fairness-check metrics.
func CheckMetricCount() int {
	return len(checkMetrics)
}
