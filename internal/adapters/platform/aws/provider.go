package aws

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awserrors "github.com/olusolaa/rds-power-scheduler/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/rds-power-scheduler/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
	apperrors "github.com/olusolaa/rds-power-scheduler/internal/errors"
)

const ProviderTypeAWS = "aws"

// RegionAll, as the sole requested region, sweeps every region enabled on
// the account.
const RegionAll = "all"

type Provider struct {
	baseConfig aws.Config
	limiter    *limiter.Limiter
	retry      RetryPolicy
	logger     ports.Logger

	rdsFactory func(aws.Config) RDSAPI
	ec2Client  EC2API
	stsClient  STSAPI

	mu        sync.Mutex
	clients   map[string]ports.RegionalClient
	accountID string
}

type Option func(*Provider)

// WithRDSClientFactory substitutes the per-region RDS client constructor.
func WithRDSClientFactory(factory func(aws.Config) RDSAPI) Option {
	return func(p *Provider) { p.rdsFactory = factory }
}

func WithEC2Client(client EC2API) Option {
	return func(p *Provider) { p.ec2Client = client }
}

func WithSTSClient(client STSAPI) Option {
	return func(p *Provider) { p.stsClient = client }
}

func NewProvider(ctx context.Context, rateLimitRPS int, retry RetryPolicy, logger ports.Logger, opts ...Option) (*Provider, error) {
	if logger == nil {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "logger cannot be nil for AWS provider")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigValidation, "failed to load default AWS config")
	}

	p := &Provider{
		baseConfig: cfg,
		limiter:    limiter.New(rateLimitRPS),
		retry:      retry,
		logger:     logger,
		clients:    make(map[string]ports.RegionalClient),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.rdsFactory == nil {
		p.rdsFactory = func(regionCfg aws.Config) RDSAPI {
			return rds.NewFromConfig(regionCfg)
		}
	}
	if p.ec2Client == nil {
		p.ec2Client = ec2.NewFromConfig(cfg)
	}
	if p.stsClient == nil {
		p.stsClient = sts.NewFromConfig(cfg)
	}

	return p, nil
}

func (p *Provider) Type() string {
	return ProviderTypeAWS
}

// ResolveRegions turns the requested region list into the concrete set to
// scan: the ambient SDK region when empty, every enabled region for "all",
// otherwise the list itself with duplicates collapsed.
func (p *Provider) ResolveRegions(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) == 0 {
		if p.baseConfig.Region == "" {
			return nil, apperrors.NewUserFacing(apperrors.CodeConfigValidation,
				"no regions requested and no default AWS region configured",
				"Set regions in the configuration or configure AWS_REGION.")
		}
		return []string{p.baseConfig.Region}, nil
	}

	if len(requested) == 1 && requested[0] == RegionAll {
		return p.enabledRegions(ctx)
	}

	seen := make(map[string]struct{}, len(requested))
	regions := make([]string, 0, len(requested))
	for _, r := range requested {
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		regions = append(regions, r)
	}
	if len(regions) == 0 {
		return nil, apperrors.NewUserFacing(apperrors.CodeConfigValidation,
			"requested region list contained no usable region names", "")
	}
	return regions, nil
}

func (p *Provider) enabledRegions(ctx context.Context) ([]string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, awserrors.Classify("", "", err)
	}
	output, err := p.ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(false),
	})
	if err != nil {
		return nil, awserrors.Classify("", "", err)
	}

	regions := make([]string, 0, len(output.Regions))
	for _, r := range output.Regions {
		if r.RegionName != nil {
			regions = append(regions, *r.RegionName)
		}
	}
	p.logger.Debugf(ctx, "Resolved %d enabled regions for account sweep", len(regions))
	return regions, nil
}

// RegionalClient returns the cached client for a region, building it on
// first use. The SDK retryer is replaced with a no-op so the scheduler's
// own retry policy is the only one in effect.
func (p *Provider) RegionalClient(ctx context.Context, region string) (ports.RegionalClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[region]; ok {
		return client, nil
	}

	regionCfg := p.baseConfig.Copy()
	regionCfg.Region = region
	regionCfg.Retryer = func() aws.Retryer { return aws.NopRetryer{} }

	client := newRegionalClient(region, p.rdsFactory(regionCfg), p.limiter, p.retry,
		p.logger.WithFields(map[string]any{"region": region}))
	p.clients[region] = client
	return client, nil
}

// AccountID resolves the caller identity once per invocation and caches it.
func (p *Provider) AccountID(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accountID != "" {
		return p.accountID, nil
	}

	output, err := p.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", awserrors.Classify("", "", err)
	}
	if output.Account == nil {
		return "", apperrors.New(apperrors.CodeProviderAPIError, "AWS caller identity response did not contain an account ID")
	}
	p.accountID = *output.Account
	return p.accountID, nil
}
