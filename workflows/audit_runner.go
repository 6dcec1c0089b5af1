package workflows

import (
	"fmt"
	"time"

	"fairmodels/activities"
	"fairmodels/logger"
	"fairmodels/types"

	"go.temporal.io/sdk/workflow"
)

var AuditRunnerName = "AuditRunner"

// AuditRunner - Orchestrates one fairness audit run:
// - Validates, computes and merges the submitted evaluations (run_audit)
// - Evaluates the stored audit against its epsilon tolerance (get_verdict)
func (wCtx *Ctx) AuditRunner(ctx workflow.Context, params types.AuditRunnerParams) (*types.AuditRunnerResults, error) {

	l := logger.GetWorkflowLogger(AuditRunnerName, ctx, &logger.Fields{
		"name":        params.Name,
		"evaluations": len(params.Evaluations),
		"priors":      len(params.Priors),
	})
	l.Debug("Starting Audit Runner Workflow.")

	// Create result
	result := types.AuditRunnerResults{Success: false}

	// Check parameters
	if params.Name == "" {
		l.Error("Audit name cannot be empty.")
		return &result, fmt.Errorf("audit name cannot be empty")
	}
	if len(params.Evaluations) == 0 {
		l.Error("Evaluations array cannot be empty.")
		return &result, fmt.Errorf("evaluations array cannot be empty")
	}

	// -------------------------------------------------------------------------
	// -------------------- Run the audit --------------------------------------
	// -------------------------------------------------------------------------
	// Set timeout to audit activity
	ctxTimeout := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		ScheduleToStartTimeout: time.Minute * 5,
		StartToCloseTimeout:    time.Minute * 5,
	})
	// Set activity input
	runAuditInput := types.RunAuditParams{
		Name:             params.Name,
		Evaluations:      params.Evaluations,
		Protected:        params.Protected,
		Privileged:       params.Privileged,
		Cutoff:           params.Cutoff,
		Epsilon:          params.Epsilon,
		Labels:           params.Labels,
		Priors:           params.Priors,
		FailOnDegenerate: params.FailOnDegenerate,
	}
	// Results will be kept logged by temporal
	var auditResults types.RunAuditResults
	// Execute activity
	err := workflow.ExecuteActivity(ctxTimeout, activities.RunAuditName, runAuditInput).Get(ctx, &auditResults)
	if err != nil {
		return &result, err
	}

	// -------------------------------------------------------------------------
	// -------------------- Evaluate verdicts ----------------------------------
	// -------------------------------------------------------------------------
	ctxTimeout = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		ScheduleToStartTimeout: time.Minute,
		StartToCloseTimeout:    time.Minute,
	})
	getVerdictInput := types.GetVerdictParams{
		Name: params.Name,
	}
	var verdictResults types.GetVerdictResults
	err = workflow.ExecuteActivity(ctxTimeout, activities.GetVerdictName, getVerdictInput).Get(ctx, &verdictResults)
	if err != nil {
		return &result, err
	}

	result.Success = auditResults.Success
	result.Models = auditResults.Models
	result.Degenerate = auditResults.Degenerate
	result.Verdicts = verdictResults.Verdicts

	return &result, nil
}
