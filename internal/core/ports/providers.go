package ports

import (
	"context"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
)

// RegionalClient wraps all provider calls for one region. One value per
// region, safe for concurrent use: mutation calls are keyed by resource
// identifier and the client holds no mutable cross-call state.
type RegionalClient interface {
	Region() string
	ListDBInstances(ctx context.Context, out chan<- domain.ResourceRef) error
	ListDBClusters(ctx context.Context, out chan<- domain.ResourceRef) error
	StartResource(ctx context.Context, ref domain.ResourceRef) error
	StopResource(ctx context.Context, ref domain.ResourceRef) error
}

// PlatformProvider resolves regions and hands out cached per-region
// clients for a single invocation.
type PlatformProvider interface {
	Type() string
	ResolveRegions(ctx context.Context, requested []string) ([]string, error)
	RegionalClient(ctx context.Context, region string) (RegionalClient, error)
	AccountID(ctx context.Context) (string, error)
}
