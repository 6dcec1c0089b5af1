package activities

import (
	"context"
	"fmt"

	"fairmodels/check"
	"fairmodels/records"
	"fairmodels/types"

	"go.temporal.io/sdk/temporal"
)

var RunAuditName = "run_audit"

// RunAudit validates and computes a fairness audit over the submitted model
// evaluations, merges in any stored prior audits named in the params and
// persists the result under params.Name.
func (aCtx *Ctx) RunAudit(ctx context.Context, params types.RunAuditParams) (*types.RunAuditResults, error) {

	var result types.RunAuditResults
	result.Success = false

	// Get logger
	l := aCtx.App.Logger
	l.Debug().
		Str("name", params.Name).
		Int("evaluations", len(params.Evaluations)).
		Int("priors", len(params.Priors)).
		Msg("Running fairness audit.")

	if params.Name == "" {
		err := temporal.NewApplicationErrorWithCause("unable to run audit", "RunAudit",
			fmt.Errorf("audit name cannot be empty"))
		return nil, err
	}

	// Get audits collection
	auditsCollection := aCtx.App.Mongodb.GetCollection(types.AuditsCollection)

	//------------------------------------------------------------------
	// Load prior audits
	//------------------------------------------------------------------
	priors := make([]*check.AuditObject, 0, len(params.Priors))
	for _, priorName := range params.Priors {
		var record records.AuditRecord
		found, err := record.FindAndLoadAudit(priorName, auditsCollection, l)
		if err != nil {
			return nil, err
		}
		if !found {
			err = temporal.NewApplicationErrorWithCause("unable to get prior audit", "FindAndLoadAudit",
				fmt.Errorf("audit %s not found", priorName))
			l.Error().Str("name", priorName).Msg("Cannot retrieve prior audit data")
			return nil, err
		}
		prior, err := record.ToObject()
		if err != nil {
			return nil, err
		}
		priors = append(priors, prior)
	}

	//------------------------------------------------------------------
	// Validate, compute and merge
	//------------------------------------------------------------------
	obj, err := check.Create(params.Evaluations, priors, check.Options{
		Protected:        params.Protected,
		Privileged:       params.Privileged,
		Cutoff:           params.Cutoff,
		Epsilon:          params.Epsilon,
		Labels:           params.Labels,
		FailOnDegenerate: params.FailOnDegenerate,
	}, l)
	if err != nil {
		// Validation failures are not retryable, the inputs will not change
		return nil, temporal.NewNonRetryableApplicationError("audit validation failed", "Create", err)
	}

	//------------------------------------------------------------------
	// Persist the merged audit
	//------------------------------------------------------------------
	record := records.NewAuditRecord(params.Name, obj)
	if err := record.Save(auditsCollection, l); err != nil {
		return nil, err
	}

	result.Success = true
	result.Models = uint(len(obj.Labels))
	result.CheckRows = uint(len(obj.CheckTable))
	result.Degenerate = uint(obj.Degenerate())

	return &result, nil
}
