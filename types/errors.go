package types

import "errors"

// Validation failures of the audit merge. All of them abort the merge with
// no partial result; callers match them with errors.Is.
var (
	// ErrMissingParameter - protected/privileged absent and no prior audit to source them from
	ErrMissingParameter = errors.New("protected attribute and privileged group are required")
	// ErrInvalidLevel - privileged group is not one of the protected attribute levels
	ErrInvalidLevel = errors.New("privileged group is not a level of the protected attribute")
	// ErrInvalidCutoff - cutoff specification has a wrong shape or out-of-range entries
	ErrInvalidCutoff = errors.New("invalid cutoff specification")
	// ErrInvalidEpsilon - epsilon is not a single positive number
	ErrInvalidEpsilon = errors.New("epsilon must be a single positive number")
	// ErrIncompatibleMerge - a prior audit disagrees on protected/privileged
	ErrIncompatibleMerge = errors.New("prior audit is incompatible with the resolved parameters")
	// ErrInconsistentTarget - ground truth vectors differ across evaluations or mismatch the protected attribute
	ErrInconsistentTarget = errors.New("ground truth vectors are inconsistent")
	// ErrNoEvaluations - the merge received zero new model evaluations
	ErrNoEvaluations = errors.New("at least one model evaluation is required")
	// ErrLabelMismatch - wrong label count or duplicated labels within the merge
	ErrLabelMismatch = errors.New("model labels are miscounted or duplicated")
	// ErrInvalidInput - probability and ground truth vectors do not align
	ErrInvalidInput = errors.New("probability and ground truth vectors must align")
	// ErrDegenerateMetric - a metric denominator was zero while strict mode was on
	ErrDegenerateMetric = errors.New("degenerate metric produced in strict mode")
)
