package check

import (
	"fmt"

	"fairmodels/metrics"
	"fairmodels/types"

	"github.com/rs/zerolog"
)

// Options carries the caller-supplied audit parameters. Protected and
// Privileged may be left empty when at least one prior audit supplies them.
type Options struct {
	Protected        []string
	Privileged       string
	Cutoff           *types.CutoffSpec
	Epsilon          *float64
	Labels           []string
	FailOnDegenerate bool
}

// Create validates the inputs and merges the new model evaluations with zero
// or more prior audits into one new AuditObject. Validation is fail fast and
// atomic: on any error nothing of the new evaluations is incorporated and the
// priors remain untouched snapshots.
func Create(evals []types.ModelEvaluation, priors []*AuditObject,
	opts Options, l *zerolog.Logger) (*AuditObject, error) {

	//--------------------------------------------------------------------------
	// 1. Resolve protected attribute and privileged group
	//--------------------------------------------------------------------------
	var pa *types.ProtectedAttribute
	if len(opts.Protected) == 0 {
		if len(priors) == 0 {
			return nil, fmt.Errorf("%w: no protected attribute and no prior audit to take it from",
				types.ErrMissingParameter)
		}
		pa = priors[0].Protected
		l.Debug().
			Str("privileged", pa.Privileged).
			Int("levels", len(pa.Levels)).
			Msg("Protected attribute taken from prior audit.")
	} else {
		var err error
		pa, err = types.NewProtectedAttribute(opts.Protected, opts.Privileged)
		if err != nil {
			return nil, err
		}
		l.Debug().
			Str("privileged", pa.Privileged).
			Strs("levels", pa.Levels).
			Msg("Protected attribute resolved.")
	}

	//--------------------------------------------------------------------------
	// 2. Resolve cutoffs
	//--------------------------------------------------------------------------
	cutoffs, err := opts.Cutoff.Resolve(pa)
	if err != nil {
		return nil, err
	}
	l.Debug().Interface("cutoffs", cutoffs).Msg("Cutoffs resolved.")

	//--------------------------------------------------------------------------
	// 3. Resolve epsilon
	//--------------------------------------------------------------------------
	epsilon, err := types.ResolveEpsilon(opts.Epsilon)
	if err != nil {
		return nil, err
	}
	l.Debug().Float64("epsilon", epsilon).Msg("Epsilon resolved.")

	//--------------------------------------------------------------------------
	// 4. Cross-check prior audits against the resolved parameters
	//--------------------------------------------------------------------------
	for i, prior := range priors {
		if !prior.Protected.Equal(pa) {
			return nil, fmt.Errorf("%w: prior audit %d disagrees on protected/privileged",
				types.ErrIncompatibleMerge, i)
		}
	}
	l.Debug().Int("priors", len(priors)).Msg("Prior audits are compatible.")

	//--------------------------------------------------------------------------
	// 5. Cross-check ground truth vectors
	//--------------------------------------------------------------------------
	if len(evals) == 0 {
		return nil, types.ErrNoEvaluations
	}
	truth := evals[0].Truth
	if len(truth) != pa.Rows() {
		return nil, fmt.Errorf("%w: ground truth has %d rows, protected attribute %d",
			types.ErrInconsistentTarget, len(truth), pa.Rows())
	}
	for i, ev := range evals {
		if err := sameTruth(truth, ev.Truth); err != nil {
			return nil, fmt.Errorf("evaluation %d: %w", i, err)
		}
		if len(ev.Probabilities) != len(ev.Truth) {
			return nil, fmt.Errorf("evaluation %d: %w: %d probabilities vs %d truth values",
				i, types.ErrInvalidInput, len(ev.Probabilities), len(ev.Truth))
		}
	}
	for i, prior := range priors {
		if err := sameTruth(truth, prior.Truth); err != nil {
			return nil, fmt.Errorf("prior audit %d: %w", i, err)
		}
	}
	l.Debug().Int("rows", len(truth)).Msg("Ground truth vectors are consistent.")

	//--------------------------------------------------------------------------
	// 6. Resolve labels
	//--------------------------------------------------------------------------
	labels, err := resolveLabels(evals, priors, opts.Labels)
	if err != nil {
		return nil, err
	}
	l.Debug().Strs("labels", labels).Msg("Labels resolved.")

	//--------------------------------------------------------------------------
	// Computation: one metric pipeline run per new evaluation
	//--------------------------------------------------------------------------
	computed := &computedSource{
		order:   labels,
		results: make(map[string]*ModelResult, len(evals)),
	}
	for i, ev := range evals {
		result, rows, err := evaluateModel(ev, labels[i], pa, cutoffs, l)
		if err != nil {
			return nil, err
		}
		if opts.FailOnDegenerate && result.Degenerate > 0 {
			return nil, fmt.Errorf("%w: model %q produced %d degenerate entries",
				types.ErrDegenerateMetric, labels[i], result.Degenerate)
		}
		computed.results[labels[i]] = result
		computed.rows = append(computed.rows, rows...)
	}

	//--------------------------------------------------------------------------
	// Assemble the merged object: new evaluations first, then priors in order
	//--------------------------------------------------------------------------
	sources := make([]resultSource, 0, len(priors)+1)
	sources = append(sources, computed)
	for _, prior := range priors {
		sources = append(sources, &priorSource{obj: prior})
	}

	obj := &AuditObject{
		Protected: pa,
		Epsilon:   epsilon,
		Truth:     append([]int(nil), truth...),
		Models:    make(map[string]*ModelResult),
	}
	for _, src := range sources {
		for _, label := range src.labels() {
			obj.Labels = append(obj.Labels, label)
			obj.Models[label] = src.model(label)
		}
		obj.CheckTable = append(obj.CheckTable, src.checkRows()...)
	}

	if degenerate := obj.Degenerate(); degenerate > 0 {
		l.Warn().
			Int("degenerate", degenerate).
			Msg("Audit contains degenerate metric entries, parity loss is NaN for those metrics.")
	}
	l.Info().
		Int("models", len(obj.Labels)).
		Int("check_rows", len(obj.CheckTable)).
		Msg("Audit object created.")

	return obj, nil
}

// evaluateModel runs the full metric pipeline for one evaluation.
func evaluateModel(ev types.ModelEvaluation, label string,
	pa *types.ProtectedAttribute, cutoffs map[string]float64,
	l *zerolog.Logger) (*ModelResult, []metrics.CheckRow, error) {

	groups, err := metrics.BuildGroupConfusionMatrices(ev.Probabilities, ev.Truth, pa, cutoffs, l)
	if err != nil {
		return nil, nil, fmt.Errorf("model %q: %w", label, err)
	}

	matrix, err := metrics.NewGroupMetricMatrix(groups, pa.Levels)
	if err != nil {
		return nil, nil, fmt.Errorf("model %q: %w", label, err)
	}

	loss, err := matrix.ParityLoss(pa.Privileged)
	if err != nil {
		return nil, nil, fmt.Errorf("model %q: %w", label, err)
	}

	rows, err := metrics.FairnessCheckRows(matrix, pa.Privileged, label)
	if err != nil {
		return nil, nil, fmt.Errorf("model %q: %w", label, err)
	}

	result := &ModelResult{
		Label:      label,
		Groups:     groups,
		Matrix:     matrix,
		ParityLoss: loss,
		Cutoffs:    cutoffs,
		Degenerate: matrix.NaNCount() + metrics.NaNLossCount(loss),
	}

	return result, rows, nil
}

// sameTruth requires identical length and identical values.
func sameTruth(reference, truth []int) error {
	if len(truth) != len(reference) {
		return fmt.Errorf("%w: length %d vs %d", types.ErrInconsistentTarget, len(truth), len(reference))
	}
	for i := range truth {
		if truth[i] != reference[i] {
			return fmt.Errorf("%w: value mismatch at row %d", types.ErrInconsistentTarget, i)
		}
	}
	return nil
}

// resolveLabels applies explicit labels when given and enforces global
// uniqueness across the merge.
func resolveLabels(evals []types.ModelEvaluation, priors []*AuditObject,
	explicit []string) ([]string, error) {

	if len(explicit) > 0 && len(explicit) != len(evals) {
		return nil, fmt.Errorf("%w: %d labels for %d evaluations",
			types.ErrLabelMismatch, len(explicit), len(evals))
	}

	taken := make(map[string]bool)
	for _, prior := range priors {
		for _, label := range prior.Labels {
			if taken[label] {
				return nil, fmt.Errorf("%w: label %q appears in more than one prior audit",
					types.ErrLabelMismatch, label)
			}
			taken[label] = true
		}
	}

	labels := make([]string, len(evals))
	for i := range evals {
		label := evals[i].Label
		if len(explicit) > 0 {
			label = explicit[i]
		}
		if label == "" {
			return nil, fmt.Errorf("%w: evaluation %d has no label", types.ErrLabelMismatch, i)
		}
		if taken[label] {
			return nil, fmt.Errorf("%w: duplicate label %q", types.ErrLabelMismatch, label)
		}
		taken[label] = true
		labels[i] = label
	}

	return labels, nil
}
