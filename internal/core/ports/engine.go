package ports

import (
	"context"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
)

type SchedulerEngine interface {
	Run(ctx context.Context, req domain.ActionRequest) (*domain.RunSummary, error)
}
