package app

import (
	"context"
	"fmt"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
	"github.com/olusolaa/rds-power-scheduler/internal/errors"
)

type Application struct {
	Engine  ports.SchedulerEngine
	Logger  ports.Logger
	Request domain.ActionRequest
}

// Run executes one invocation. The returned error is non-nil when the run
// is overall-failed per the aggregation rule: at least one failed resource
// outcome or a whole region lost to discovery. Skipped-only runs succeed.
func (a *Application) Run(ctx context.Context) error {
	summary, err := a.Engine.Run(ctx, a.Request)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Scheduler run aborted")
		return err
	}

	if summary.Failed() {
		return errors.NewUserFacing(errors.CodeRunFailed,
			fmt.Sprintf("run %s finished with %d failed resources and %d failed regions",
				summary.RunID, summary.FailedCount, len(summary.RegionErrors)),
			"See the run report for per-resource details.")
	}

	a.Logger.Infof(ctx, "Scheduler run %s completed successfully", summary.RunID)
	return nil
}
