package json

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
)

const ReporterTypeJSON = "json"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type Reporter struct {
	writer io.Writer
	logger ports.Logger
}

func NewReporter(logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		writer: os.Stdout,
		logger: logger,
	}, nil
}

type jsonReport struct {
	RunID        string            `json:"run_id"`
	AccountID    string            `json:"account_id,omitempty"`
	Action       string            `json:"action"`
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
	Summary      jsonSummary       `json:"summary"`
	RegionErrors map[string]string `json:"region_errors,omitempty"`
	Outcomes     []jsonOutcome     `json:"outcomes"`
}

type jsonSummary struct {
	Total     int  `json:"total"`
	Succeeded int  `json:"succeeded"`
	Skipped   int  `json:"skipped"`
	Failed    int  `json:"failed"`
	Success   bool `json:"success"`
}

type jsonOutcome struct {
	Kind         string `json:"kind"`
	Identifier   string `json:"identifier"`
	ARN          string `json:"arn,omitempty"`
	Region       string `json:"region"`
	CurrentState string `json:"current_state"`
	Decision     string `json:"decision"`
	Result       string `json:"result"`
	Reason       string `json:"reason,omitempty"`
	ErrorDetail  string `json:"error_detail,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, summary *domain.RunSummary) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	report := jsonReport{
		RunID:      summary.RunID,
		AccountID:  summary.AccountID,
		Action:     summary.Action.String(),
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Summary: jsonSummary{
			Total:     summary.Total(),
			Succeeded: summary.SucceededCount,
			Skipped:   summary.SkippedCount,
			Failed:    summary.FailedCount,
			Success:   !summary.Failed(),
		},
		Outcomes: make([]jsonOutcome, 0, len(summary.Outcomes)),
	}
	if len(summary.RegionErrors) > 0 {
		report.RegionErrors = summary.RegionErrors
	}

	for _, outcome := range summary.Outcomes {
		report.Outcomes = append(report.Outcomes, jsonOutcome{
			Kind:         outcome.Resource.Kind.String(),
			Identifier:   outcome.Resource.Identifier,
			ARN:          outcome.Resource.ARN,
			Region:       outcome.Resource.Region,
			CurrentState: outcome.Resource.CurrentState,
			Decision:     string(outcome.Decision),
			Result:       string(outcome.Result),
			Reason:       outcome.Reason,
			ErrorDetail:  outcome.ErrorDetail,
		})
	}

	encoder := jsonAPI.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}
