package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
)

// Inventory is the deduplicated result of a discovery sweep. Resource
// order is not significant.
type Inventory struct {
	Resources []domain.ResourceRef

	// RegionErrors records regions whose listing failed entirely; healthy
	// regions still contribute their resources.
	RegionErrors map[string]string
}

type Discovery struct {
	provider          ports.PlatformProvider
	logger            ports.Logger
	regionConcurrency int
}

func NewDiscovery(provider ports.PlatformProvider, logger ports.Logger, regionConcurrency int) *Discovery {
	if regionConcurrency <= 0 {
		regionConcurrency = 4
	}
	return &Discovery{
		provider:          provider,
		logger:            logger,
		regionConcurrency: regionConcurrency,
	}
}

// Discover fans the tag filter out across every resolved region and
// returns the matching resources. A failing region is recorded, not fatal.
func (d *Discovery) Discover(ctx context.Context, req domain.ActionRequest) (*Inventory, error) {
	regions, err := d.provider.ResolveRegions(ctx, req.Regions)
	if err != nil {
		return nil, err
	}

	inventory := &Inventory{RegionErrors: make(map[string]string)}
	var mu sync.Mutex

	g, childCtx := errgroup.WithContext(ctx)
	g.SetLimit(d.regionConcurrency)

	for _, region := range regions {
		g.Go(func() error {
			log := d.logger.WithFields(map[string]any{"region": region})
			log.Infof(childCtx, "Searching RDS resources with tag %s=%s", req.TagFilter.Key, req.TagFilter.Value)

			matched, regionErr := d.discoverRegion(childCtx, region, req.TagFilter)

			mu.Lock()
			defer mu.Unlock()
			if regionErr != nil {
				// Cancellation is the only non-recordable failure; it has
				// to stop the other regions too.
				if childCtx.Err() != nil {
					return regionErr
				}
				log.Errorf(childCtx, regionErr, "Region discovery failed")
				inventory.RegionErrors[region] = regionErr.Error()
				return nil
			}
			log.Infof(childCtx, "Found %d matching resources", len(matched))
			inventory.Resources = append(inventory.Resources, matched...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inventory, nil
}

func (d *Discovery) discoverRegion(ctx context.Context, region string, filter domain.TagFilter) ([]domain.ResourceRef, error) {
	client, err := d.provider.RegionalClient(ctx, region)
	if err != nil {
		return nil, err
	}

	refs := make(chan domain.ResourceRef, 64)

	var matched []domain.ResourceRef
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ref := range refs {
			if ref.HasTag(filter.Key, filter.Value) {
				matched = append(matched, ref)
			}
		}
	}()

	g, listCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return client.ListDBInstances(listCtx, refs) })
	g.Go(func() error { return client.ListDBClusters(listCtx, refs) })
	listErr := g.Wait()
	close(refs)
	<-done

	if listErr != nil {
		return nil, listErr
	}
	return dedupeClusterMembers(matched), nil
}

// dedupeClusterMembers drops every DB instance whose parent cluster is
// itself in the matched set: members inherit lifecycle from the cluster
// and must never be transitioned independently alongside it. An instance
// whose cluster did not match stays in the inventory as its own unit.
func dedupeClusterMembers(refs []domain.ResourceRef) []domain.ResourceRef {
	clusters := make(map[string]struct{})
	for _, ref := range refs {
		if ref.Kind == domain.KindDBCluster {
			clusters[ref.Identifier] = struct{}{}
		}
	}

	out := refs[:0]
	for _, ref := range refs {
		if ref.Kind == domain.KindDBInstance && ref.ClusterIdentifier != "" {
			if _, present := clusters[ref.ClusterIdentifier]; present {
				continue
			}
		}
		out = append(out, ref)
	}
	return out
}
