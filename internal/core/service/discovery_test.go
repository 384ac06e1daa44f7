package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	apperrors "github.com/olusolaa/rds-power-scheduler/internal/errors"
	"github.com/olusolaa/rds-power-scheduler/mocks"
)

func instanceRef(region, id, state, cluster string, tags map[string]string) domain.ResourceRef {
	return domain.ResourceRef{
		Kind:              domain.KindDBInstance,
		Identifier:        id,
		Region:            region,
		CurrentState:      state,
		ClusterIdentifier: cluster,
		Tags:              tags,
	}
}

func clusterRef(region, id, state string, tags map[string]string) domain.ResourceRef {
	return domain.ResourceRef{
		Kind:         domain.KindDBCluster,
		Identifier:   id,
		Region:       region,
		CurrentState: state,
		Tags:         tags,
	}
}

func listingClient(region string, instances, clusters []domain.ResourceRef) *mocks.MockRegionalClient {
	client := &mocks.MockRegionalClient{RegionName: region}
	client.On("ListDBInstances", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(1).(chan<- domain.ResourceRef)
		for _, ref := range instances {
			out <- ref
		}
	}).Return(nil)
	client.On("ListDBClusters", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(1).(chan<- domain.ResourceRef)
		for _, ref := range clusters {
			out <- ref
		}
	}).Return(nil)
	return client
}

func request(regions ...string) domain.ActionRequest {
	return domain.ActionRequest{
		Action:    domain.ActionStop,
		TagFilter: domain.TagFilter{Key: "ops:env", Value: "non-prod"},
		Regions:   regions,
	}
}

func TestDiscover_FiltersByExactTagMatch(t *testing.T) {
	matching := map[string]string{"ops:env": "non-prod"}
	provider := new(mocks.MockPlatformProvider)
	provider.On("ResolveRegions", mock.Anything, []string{"eu-west-1"}).Return([]string{"eu-west-1"}, nil)
	provider.On("RegionalClient", mock.Anything, "eu-west-1").Return(listingClient("eu-west-1",
		[]domain.ResourceRef{
			instanceRef("eu-west-1", "db-match", "available", "", matching),
			instanceRef("eu-west-1", "db-wrong-value", "available", "", map[string]string{"ops:env": "prod"}),
			instanceRef("eu-west-1", "db-no-tag", "available", "", nil),
		},
		nil,
	), nil)

	d := NewDiscovery(provider, mocks.NewRelaxedLogger(), 2)
	inventory, err := d.Discover(context.Background(), request("eu-west-1"))

	require.NoError(t, err)
	require.Len(t, inventory.Resources, 1)
	assert.Equal(t, "db-match", inventory.Resources[0].Identifier)
	assert.Empty(t, inventory.RegionErrors)
}

func TestDiscover_ClusterMemberDeduplication(t *testing.T) {
	tags := map[string]string{"ops:env": "non-prod"}
	provider := new(mocks.MockPlatformProvider)
	provider.On("ResolveRegions", mock.Anything, mock.Anything).Return([]string{"eu-west-1"}, nil)
	provider.On("RegionalClient", mock.Anything, "eu-west-1").Return(listingClient("eu-west-1",
		[]domain.ResourceRef{
			// Member of a matched cluster, independently tagged: excluded.
			instanceRef("eu-west-1", "member-1", "available", "aurora-1", tags),
			// Member of an unmatched cluster: kept as its own unit.
			instanceRef("eu-west-1", "orphan-member", "available", "untagged-cluster", tags),
		},
		[]domain.ResourceRef{
			clusterRef("eu-west-1", "aurora-1", "available", tags),
		},
	), nil)

	d := NewDiscovery(provider, mocks.NewRelaxedLogger(), 2)
	inventory, err := d.Discover(context.Background(), request("eu-west-1"))

	require.NoError(t, err)
	require.Len(t, inventory.Resources, 2)

	identifiers := make(map[string]domain.ResourceKind)
	for _, ref := range inventory.Resources {
		identifiers[ref.Identifier] = ref.Kind
	}
	assert.Equal(t, domain.KindDBCluster, identifiers["aurora-1"])
	assert.Equal(t, domain.KindDBInstance, identifiers["orphan-member"])
	assert.NotContains(t, identifiers, "member-1")
}

func TestDiscover_RegionFailureDoesNotAbortOthers(t *testing.T) {
	tags := map[string]string{"ops:env": "non-prod"}

	healthy := listingClient("eu-west-1", []domain.ResourceRef{
		instanceRef("eu-west-1", "db-1", "available", "", tags),
	}, nil)

	broken := &mocks.MockRegionalClient{RegionName: "us-east-1"}
	listErr := apperrors.New(apperrors.CodeProviderAPIError, "endpoint unreachable")
	broken.On("ListDBInstances", mock.Anything, mock.Anything).Return(listErr)
	broken.On("ListDBClusters", mock.Anything, mock.Anything).Return(listErr).Maybe()

	provider := new(mocks.MockPlatformProvider)
	provider.On("ResolveRegions", mock.Anything, mock.Anything).Return([]string{"eu-west-1", "us-east-1"}, nil)
	provider.On("RegionalClient", mock.Anything, "eu-west-1").Return(healthy, nil)
	provider.On("RegionalClient", mock.Anything, "us-east-1").Return(broken, nil)

	d := NewDiscovery(provider, mocks.NewRelaxedLogger(), 2)
	inventory, err := d.Discover(context.Background(), request("eu-west-1", "us-east-1"))

	require.NoError(t, err)
	require.Len(t, inventory.Resources, 1)
	assert.Equal(t, "db-1", inventory.Resources[0].Identifier)
	require.Contains(t, inventory.RegionErrors, "us-east-1")
	assert.Contains(t, inventory.RegionErrors["us-east-1"], "endpoint unreachable")
}

func TestDiscover_RegionResolutionErrorIsFatal(t *testing.T) {
	provider := new(mocks.MockPlatformProvider)
	resolveErr := apperrors.New(apperrors.CodeConfigValidation, "no region")
	provider.On("ResolveRegions", mock.Anything, mock.Anything).Return(nil, resolveErr)

	d := NewDiscovery(provider, mocks.NewRelaxedLogger(), 2)
	_, err := d.Discover(context.Background(), request())

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConfigValidation))
}
