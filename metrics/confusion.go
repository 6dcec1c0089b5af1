package metrics

import (
	"fmt"

	"fairmodels/types"

	"github.com/rs/zerolog"
)

//------------------------------------------------------------------------------
// ConfusionMatrix
//------------------------------------------------------------------------------

// ConfusionMatrix holds the four outcome counts of one (model, group) pair
// under one cutoff. Built once, never updated.
type ConfusionMatrix struct {
	TP int `json:"tp" bson:"tp"`
	FP int `json:"fp" bson:"fp"`
	TN int `json:"tn" bson:"tn"`
	FN int `json:"fn" bson:"fn"`
}

// Total returns the number of rows the matrix was built from.
func (cm ConfusionMatrix) Total() int {
	return cm.TP + cm.FP + cm.TN + cm.FN
}

// BuildConfusionMatrix thresholds the probabilities at cutoff (predicted
// positive when p >= cutoff) and counts outcomes against the ground truth.
func BuildConfusionMatrix(probs []float64, truth []int, cutoff float64) (ConfusionMatrix, error) {
	var cm ConfusionMatrix

	if len(probs) != len(truth) {
		return cm, fmt.Errorf("%w: %d probabilities vs %d truth values",
			types.ErrInvalidInput, len(probs), len(truth))
	}
	if cutoff < 0 || cutoff > 1 {
		return cm, fmt.Errorf("%w: cutoff %v outside [0,1]", types.ErrInvalidInput, cutoff)
	}

	for i, p := range probs {
		predicted := p >= cutoff
		actual := truth[i] == 1
		switch {
		case predicted && actual:
			cm.TP++
		case predicted && !actual:
			cm.FP++
		case !predicted && !actual:
			cm.TN++
		default:
			cm.FN++
		}
	}

	return cm, nil
}

//------------------------------------------------------------------------------
// Per-group confusion matrices
//------------------------------------------------------------------------------

// BuildGroupConfusionMatrices slices the probability and truth vectors by
// protected attribute level and builds one confusion matrix per level, each
// under its own cutoff. Levels with no rows still yield an all-zero matrix,
// downstream tables are indexed by the full level set.
func BuildGroupConfusionMatrices(probs []float64, truth []int,
	pa *types.ProtectedAttribute, cutoffs map[string]float64,
	l *zerolog.Logger) (map[string]ConfusionMatrix, error) {

	if len(probs) != pa.Rows() || len(truth) != pa.Rows() {
		return nil, fmt.Errorf("%w: %d probabilities, %d truth values, %d protected rows",
			types.ErrInvalidInput, len(probs), len(truth), pa.Rows())
	}

	groups := make(map[string]ConfusionMatrix, len(pa.Levels))
	for _, lvl := range pa.Levels {
		rows := pa.GroupRows(lvl)

		groupProbs := make([]float64, 0, len(rows))
		groupTruth := make([]int, 0, len(rows))
		for _, r := range rows {
			groupProbs = append(groupProbs, probs[r])
			groupTruth = append(groupTruth, truth[r])
		}

		cm, err := BuildConfusionMatrix(groupProbs, groupTruth, cutoffs[lvl])
		if err != nil {
			return nil, err
		}

		l.Debug().
			Str("level", lvl).
			Float64("cutoff", cutoffs[lvl]).
			Int("rows", len(rows)).
			Int("tp", cm.TP).
			Int("fp", cm.FP).
			Int("tn", cm.TN).
			Int("fn", cm.FN).
			Msg("Built group confusion matrix.")

		groups[lvl] = cm
	}

	return groups, nil
}
