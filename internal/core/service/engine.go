package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
	"github.com/olusolaa/rds-power-scheduler/internal/errors"
)

// SchedulerEngine runs one full discovery -> plan -> execute -> report
// cycle per invocation.
type SchedulerEngine struct {
	provider  ports.PlatformProvider
	reporter  ports.Reporter
	logger    ports.Logger
	discovery *Discovery
	executor  *Executor
}

func NewSchedulerEngine(
	provider ports.PlatformProvider,
	reporter ports.Reporter,
	logger ports.Logger,
	regionConcurrency int,
	maxInFlight int,
	deadlineMargin time.Duration,
) (*SchedulerEngine, error) {
	if provider == nil {
		return nil, errors.New(errors.CodeConfigValidation, "platform provider cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}

	return &SchedulerEngine{
		provider:  provider,
		reporter:  reporter,
		logger:    logger,
		discovery: NewDiscovery(provider, logger, regionConcurrency),
		executor:  NewExecutor(provider, logger, maxInFlight, deadlineMargin),
	}, nil
}

func (e *SchedulerEngine) Run(ctx context.Context, req domain.ActionRequest) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{
		RunID:     uuid.NewString(),
		Action:    req.Action,
		StartedAt: time.Now().UTC(),
	}

	log := e.logger.WithFields(map[string]any{"run_id": summary.RunID})
	log.Infof(ctx, "Starting %s run for tag %s=%s", req.Action, req.TagFilter.Key, req.TagFilter.Value)

	// Identity is audit metadata only; a failed lookup degrades to a warning.
	if accountID, err := e.provider.AccountID(ctx); err != nil {
		log.Warnf(ctx, "Proceeding without AWS account ID: %v", err)
	} else {
		summary.AccountID = accountID
		log.Debugf(ctx, "Running against account %s", accountID)
	}

	inventory, err := e.discovery.Discover(ctx, req)
	if err != nil {
		log.Errorf(ctx, err, "Discovery aborted")
		return nil, err
	}
	summary.RegionErrors = inventory.RegionErrors

	log.Infof(ctx, "Discovered %d matching resources (%d region failures)",
		len(inventory.Resources), len(inventory.RegionErrors))

	for _, outcome := range e.executor.Execute(ctx, req.Action, inventory.Resources) {
		summary.Add(outcome)
	}
	summary.FinishedAt = time.Now().UTC()

	if reportErr := e.reporter.Report(ctx, summary); reportErr != nil {
		return summary, errors.Wrap(reportErr, errors.CodeInternal, "failed to generate run report")
	}

	log.Infof(ctx, "Run finished: %d succeeded, %d skipped, %d failed",
		summary.SucceededCount, summary.SkippedCount, summary.FailedCount)
	return summary, nil
}
