package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	apperrors "github.com/olusolaa/rds-power-scheduler/internal/errors"
	"github.com/olusolaa/rds-power-scheduler/mocks"
)

func outcomeByID(outcomes []domain.ResourceOutcome, id string) (domain.ResourceOutcome, bool) {
	for _, o := range outcomes {
		if o.Resource.Identifier == id {
			return o, true
		}
	}
	return domain.ResourceOutcome{}, false
}

func TestExecute_SkipPlansMakeNoProviderCalls(t *testing.T) {
	provider := new(mocks.MockPlatformProvider)
	// No RegionalClient expectation: any provider call fails the test.

	e := NewExecutor(provider, mocks.NewRelaxedLogger(), 2, time.Second)
	outcomes := e.Execute(context.Background(), domain.ActionStop, []domain.ResourceRef{
		instanceRef("eu-west-1", "already-stopped", "stopped", "", nil),
		instanceRef("eu-west-1", "mid-change", "stopping", "", nil),
		instanceRef("eu-west-1", "broken", "failed", "", nil),
	})

	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		assert.Equal(t, domain.ResultSkipped, o.Result)
	}

	skipped, _ := outcomeByID(outcomes, "already-stopped")
	assert.Equal(t, domain.DecisionSkipAlreadyDesired, skipped.Decision)
	transitional, _ := outcomeByID(outcomes, "mid-change")
	assert.Equal(t, domain.DecisionSkipTransitional, transitional.Decision)
	unsupported, _ := outcomeByID(outcomes, "broken")
	assert.Equal(t, domain.DecisionSkipUnsupportedState, unsupported.Decision)

	provider.AssertNotCalled(t, "RegionalClient", mock.Anything, mock.Anything)
}

func TestExecute_PartialFailureIsolation(t *testing.T) {
	refs := []domain.ResourceRef{
		instanceRef("eu-west-1", "db-ok-1", "available", "", nil),
		instanceRef("eu-west-1", "db-bad", "available", "", nil),
		instanceRef("eu-west-1", "db-ok-2", "available", "", nil),
	}

	client := &mocks.MockRegionalClient{RegionName: "eu-west-1"}
	client.On("StopResource", mock.Anything, mock.MatchedBy(func(r domain.ResourceRef) bool {
		return r.Identifier == "db-bad"
	})).Return(apperrors.New(apperrors.CodeProviderAPIError, "stop refused"))
	client.On("StopResource", mock.Anything, mock.Anything).Return(nil)

	provider := new(mocks.MockPlatformProvider)
	provider.On("RegionalClient", mock.Anything, "eu-west-1").Return(client, nil)

	e := NewExecutor(provider, mocks.NewRelaxedLogger(), 2, time.Second)
	outcomes := e.Execute(context.Background(), domain.ActionStop, refs)

	require.Len(t, outcomes, 3)

	failed, ok := outcomeByID(outcomes, "db-bad")
	require.True(t, ok)
	assert.Equal(t, domain.ResultFailed, failed.Result)
	assert.Contains(t, failed.ErrorDetail, "stop refused")

	for _, id := range []string{"db-ok-1", "db-ok-2"} {
		o, ok := outcomeByID(outcomes, id)
		require.True(t, ok)
		assert.Equal(t, domain.ResultSucceeded, o.Result)
	}
}

func TestExecute_StartUsesStartResource(t *testing.T) {
	client := &mocks.MockRegionalClient{RegionName: "eu-west-1"}
	client.On("StartResource", mock.Anything, mock.Anything).Return(nil)

	provider := new(mocks.MockPlatformProvider)
	provider.On("RegionalClient", mock.Anything, "eu-west-1").Return(client, nil)

	e := NewExecutor(provider, mocks.NewRelaxedLogger(), 1, time.Second)
	outcomes := e.Execute(context.Background(), domain.ActionStart, []domain.ResourceRef{
		instanceRef("eu-west-1", "db-1", "stopped", "", nil),
	})

	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.ResultSucceeded, outcomes[0].Result)
	client.AssertCalled(t, "StartResource", mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "StopResource", mock.Anything, mock.Anything)
}

func TestExecute_DeadlineExhaustionSkipsPendingWork(t *testing.T) {
	provider := new(mocks.MockPlatformProvider)

	// Remaining budget is already below the margin, so nothing dispatches.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	e := NewExecutor(provider, mocks.NewRelaxedLogger(), 2, time.Minute)
	outcomes := e.Execute(ctx, domain.ActionStop, []domain.ResourceRef{
		instanceRef("eu-west-1", "db-1", "available", "", nil),
		instanceRef("eu-west-1", "db-2", "available", "", nil),
	})

	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.Equal(t, domain.ResultSkipped, o.Result)
		assert.Contains(t, o.Reason, "deadline")
	}
	provider.AssertNotCalled(t, "RegionalClient", mock.Anything, mock.Anything)
}

func TestExecute_ProviderClientErrorRecordsFailure(t *testing.T) {
	provider := new(mocks.MockPlatformProvider)
	provider.On("RegionalClient", mock.Anything, "eu-west-1").Return(nil,
		apperrors.New(apperrors.CodeProviderAuthError, "no credentials"))

	e := NewExecutor(provider, mocks.NewRelaxedLogger(), 1, time.Second)
	outcomes := e.Execute(context.Background(), domain.ActionStop, []domain.ResourceRef{
		instanceRef("eu-west-1", "db-1", "available", "", nil),
	})

	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.ResultFailed, outcomes[0].Result)
	assert.Contains(t, outcomes[0].ErrorDetail, "no credentials")
}
