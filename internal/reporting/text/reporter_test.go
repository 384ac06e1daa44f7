package text

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/mocks"
)

func testSummary() *domain.RunSummary {
	summary := &domain.RunSummary{
		RunID:        "run-1",
		AccountID:    "123456789012",
		Action:       domain.ActionStop,
		RegionErrors: map[string]string{},
	}
	summary.Add(domain.ResourceOutcome{
		Resource: domain.ResourceRef{
			Kind: domain.KindDBInstance, Identifier: "db-1", Region: "eu-west-1", CurrentState: "available",
		},
		Decision: domain.DecisionAct,
		Result:   domain.ResultSucceeded,
	})
	summary.Add(domain.ResourceOutcome{
		Resource: domain.ResourceRef{
			Kind: domain.KindDBCluster, Identifier: "aurora-1", Region: "eu-west-1", CurrentState: "stopped",
		},
		Decision: domain.DecisionSkipAlreadyDesired,
		Result:   domain.ResultSkipped,
		Reason:   `already stopped (state "stopped")`,
	})
	summary.Add(domain.ResourceOutcome{
		Resource: domain.ResourceRef{
			Kind: domain.KindDBInstance, Identifier: "db-2", Region: "us-east-1", CurrentState: "available",
		},
		Decision:    domain.DecisionAct,
		Result:      domain.ResultFailed,
		ErrorDetail: "stop refused",
	})
	return summary
}

func renderReport(t *testing.T, summary *domain.RunSummary) string {
	t.Helper()
	color.NoColor = true
	var buf bytes.Buffer
	r := &Reporter{config: Config{NoColor: true}, writer: &buf, logger: mocks.NewRelaxedLogger()}
	require.NoError(t, r.Report(context.Background(), summary))
	return buf.String()
}

func TestReport_RendersOutcomesAndCounts(t *testing.T) {
	output := renderReport(t, testSummary())

	assert.Contains(t, output, "RDS Power Schedule Report (stop)")
	assert.Contains(t, output, "run-1")
	assert.Contains(t, output, "123456789012")
	assert.Contains(t, output, "[OK]")
	assert.Contains(t, output, "db-1")
	assert.Contains(t, output, "[SKIPPED]")
	assert.Contains(t, output, "aurora-1")
	assert.Contains(t, output, "[FAILED]")
	assert.Contains(t, output, "stop refused")
	assert.Regexp(t, `Succeeded:\s+1`, output)
	assert.Regexp(t, `Skipped:\s+1`, output)
	assert.Regexp(t, `Failed:\s+1`, output)
	assert.Contains(t, output, "FAILURE")
}

func TestReport_EmptyInventory(t *testing.T) {
	summary := &domain.RunSummary{RunID: "run-2", Action: domain.ActionStart}
	output := renderReport(t, summary)

	assert.Contains(t, output, "No matching resources found.")
	assert.Contains(t, output, "SUCCESS")
}

func TestReport_RegionFailuresListed(t *testing.T) {
	summary := &domain.RunSummary{
		RunID:        "run-3",
		Action:       domain.ActionStop,
		RegionErrors: map[string]string{"us-east-1": "endpoint unreachable"},
	}
	output := renderReport(t, summary)

	assert.Contains(t, output, "Region Failures:")
	assert.Contains(t, output, "us-east-1")
	assert.Contains(t, output, "endpoint unreachable")
	assert.Contains(t, output, "FAILURE")
}
