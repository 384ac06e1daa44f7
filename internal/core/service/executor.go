package service

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
)

type Executor struct {
	provider       ports.PlatformProvider
	logger         ports.Logger
	maxInFlight    int
	deadlineMargin time.Duration
}

func NewExecutor(provider ports.PlatformProvider, logger ports.Logger, maxInFlight int, deadlineMargin time.Duration) *Executor {
	if maxInFlight <= 0 {
		maxInFlight = 5
	}
	if deadlineMargin <= 0 {
		deadlineMargin = 15 * time.Second
	}
	return &Executor{
		provider:       provider,
		logger:         logger,
		maxInFlight:    maxInFlight,
		deadlineMargin: deadlineMargin,
	}
}

// Execute plans and carries out the transition for every resource in the
// inventory. Failures are isolated per resource. Each ref appears at most
// once in the inventory, so mutation concurrency per resource is
// structurally one; overall concurrency is bounded by maxInFlight.
func (e *Executor) Execute(ctx context.Context, action domain.Action, resources []domain.ResourceRef) []domain.ResourceOutcome {
	outcomes := make([]domain.ResourceOutcome, 0, len(resources))
	var mu sync.Mutex
	record := func(outcome domain.ResourceOutcome) {
		mu.Lock()
		outcomes = append(outcomes, outcome)
		mu.Unlock()
	}

	workers := pool.New().WithMaxGoroutines(e.maxInFlight)

	for _, ref := range resources {
		plan := domain.PlanTransition(ref, action)

		if plan.Decision != domain.DecisionAct {
			e.logger.Debugf(ctx, "Skipping %s %q in %s: %s", ref.Kind, ref.Identifier, ref.Region, plan.Reason)
			record(domain.ResourceOutcome{
				Resource: ref,
				Decision: plan.Decision,
				Result:   domain.ResultSkipped,
				Reason:   plan.Reason,
			})
			continue
		}

		// Deadline gate: in-flight calls may finish, but nothing new is
		// dispatched once the remaining budget drops under the margin.
		if e.outOfTime(ctx) {
			e.logger.Warnf(ctx, "Deadline approaching, skipping %s %q in %s", ref.Kind, ref.Identifier, ref.Region)
			record(domain.ResourceOutcome{
				Resource: ref,
				Decision: plan.Decision,
				Result:   domain.ResultSkipped,
				Reason:   "invocation deadline exhausted before the action was attempted",
			})
			continue
		}

		workers.Go(func() {
			record(e.act(ctx, action, ref))
		})
	}

	workers.Wait()
	return outcomes
}

func (e *Executor) outOfTime(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	deadline, ok := ctx.Deadline()
	return ok && time.Until(deadline) < e.deadlineMargin
}

func (e *Executor) act(ctx context.Context, action domain.Action, ref domain.ResourceRef) domain.ResourceOutcome {
	log := e.logger.WithFields(map[string]any{
		"region":      ref.Region,
		"kind":        ref.Kind,
		"resource_id": ref.Identifier,
	})

	client, err := e.provider.RegionalClient(ctx, ref.Region)
	if err == nil {
		log.Infof(ctx, "%s %s %q", action.Verb(), ref.Kind, ref.Identifier)
		switch action {
		case domain.ActionStart:
			err = client.StartResource(ctx, ref)
		default:
			err = client.StopResource(ctx, ref)
		}
	}

	if err != nil {
		log.Errorf(ctx, err, "Failed to %s %s %q", action, ref.Kind, ref.Identifier)
		return domain.ResourceOutcome{
			Resource:    ref,
			Decision:    domain.DecisionAct,
			Result:      domain.ResultFailed,
			ErrorDetail: err.Error(),
		}
	}

	log.Infof(ctx, "%s %q => %s requested", ref.Kind, ref.Identifier, action)
	return domain.ResourceOutcome{
		Resource: ref,
		Decision: domain.DecisionAct,
		Result:   domain.ResultSucceeded,
	}
}
