package types

type AuditRunnerParams struct {
	// Name identifies the stored audit this run creates or extends.
	Name        string            `json:"name"`
	Evaluations []ModelEvaluation `json:"evaluations"`
	Protected   []string          `json:"protected"`
	Privileged  string            `json:"privileged"`
	Cutoff      *CutoffSpec       `json:"cutoff,omitempty"`
	Epsilon     *float64          `json:"epsilon,omitempty"`
	Labels      []string          `json:"labels,omitempty"`
	// Priors are names of previously stored audits merged into this one.
	Priors           []string `json:"priors,omitempty"`
	FailOnDegenerate bool     `json:"fail_on_degenerate,omitempty"`
}

type AuditRunnerResults struct {
	Success    bool          `json:"success"`
	Models     uint          `json:"models"`
	Degenerate uint          `json:"degenerate"`
	Verdicts   []VerdictData `json:"verdicts"`
}
