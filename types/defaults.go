package types

var (
	DefaultMongodbUri        = "mongodb://127.0.0.1:27017/fairmodels"
	DefaultTemporalNamespace = "fairmodels"
	DefaultLogLevel          = "info"
	DefaultTemporalHost      = "localhost"
	DefaultTemporalPort      = uint(7233)
	DefaultTemporalTaskQueue = "fairness-audit"
)

const (
	// DefaultCutoff is applied to every level not covered by an explicit threshold.
	DefaultCutoff = 0.5
	// DefaultEpsilon is the fairness tolerance when the caller supplies none.
	DefaultEpsilon = 0.1
)
