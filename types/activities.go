package types

//------------------------------------------------------------------------------
// Run Audit
//------------------------------------------------------------------------------

type RunAuditParams struct {
	Name             string            `json:"name"`
	Evaluations      []ModelEvaluation `json:"evaluations"`
	Protected        []string          `json:"protected"`
	Privileged       string            `json:"privileged"`
	Cutoff           *CutoffSpec       `json:"cutoff,omitempty"`
	Epsilon          *float64          `json:"epsilon,omitempty"`
	Labels           []string          `json:"labels,omitempty"`
	Priors           []string          `json:"priors,omitempty"`
	FailOnDegenerate bool              `json:"fail_on_degenerate,omitempty"`
}

type RunAuditResults struct {
	Success    bool `json:"success"`
	Models     uint `json:"models"`
	CheckRows  uint `json:"check_rows"`
	Degenerate uint `json:"degenerate"`
}

//------------------------------------------------------------------------------
// Get Verdict
//------------------------------------------------------------------------------

type GetVerdictParams struct {
	Name string `json:"name"`
}

type VerdictData struct {
	Label  string `json:"label"`
	Passed uint   `json:"passed"`
	Failed uint   `json:"failed"`
	Fair   bool   `json:"fair"`
}

type GetVerdictResults struct {
	Verdicts []VerdictData `json:"verdicts"`
}
