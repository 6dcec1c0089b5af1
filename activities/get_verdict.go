package activities

import (
	"context"
	"fmt"

	"fairmodels/records"
	"fairmodels/types"

	"go.temporal.io/sdk/temporal"
)

var GetVerdictName = "get_verdict"

// GetVerdict loads a stored audit and evaluates every model's check table
// against the audit epsilon.
func (aCtx *Ctx) GetVerdict(ctx context.Context, params types.GetVerdictParams) (*types.GetVerdictResults, error) {

	// Get logger
	l := aCtx.App.Logger
	l.Debug().Str("name", params.Name).Msg("Evaluating audit verdicts.")

	// Get audits collection
	auditsCollection := aCtx.App.Mongodb.GetCollection(types.AuditsCollection)

	var record records.AuditRecord
	found, err := record.FindAndLoadAudit(params.Name, auditsCollection, l)
	if err != nil {
		return nil, err
	}
	if !found {
		err = temporal.NewApplicationErrorWithCause("unable to get audit", "FindAndLoadAudit",
			fmt.Errorf("audit %s not found", params.Name))
		l.Error().Str("name", params.Name).Msg("Cannot retrieve audit data")
		return nil, err
	}

	obj, err := record.ToObject()
	if err != nil {
		return nil, err
	}

	var result types.GetVerdictResults
	for _, v := range obj.Verdicts() {
		result.Verdicts = append(result.Verdicts, types.VerdictData{
			Label:  v.Label,
			Passed: uint(v.Passed),
			Failed: uint(v.Failed),
			Fair:   v.Fair,
		})
	}

	return &result, nil
}
