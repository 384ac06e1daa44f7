package ports

import (
	"context"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, summary *domain.RunSummary) error
}
