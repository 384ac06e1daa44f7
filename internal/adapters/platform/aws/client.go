package aws

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/rds"

	awserrors "github.com/olusolaa/rds-power-scheduler/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/rds-power-scheduler/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
	apperrors "github.com/olusolaa/rds-power-scheduler/internal/errors"
)

type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// regionalClient is the per-region implementation of ports.RegionalClient.
// The SDK's own retryer is disabled on the underlying client; the policy
// here is the only retry layer in effect.
type regionalClient struct {
	region  string
	rds     RDSAPI
	limiter *limiter.Limiter
	retry   RetryPolicy
	logger  ports.Logger
}

func newRegionalClient(region string, api RDSAPI, lim *limiter.Limiter, retry RetryPolicy, logger ports.Logger) *regionalClient {
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy()
	}
	return &regionalClient{
		region:  region,
		rds:     api,
		limiter: lim,
		retry:   retry,
		logger:  logger,
	}
}

func (c *regionalClient) Region() string {
	return c.region
}

func (c *regionalClient) ListDBInstances(ctx context.Context, out chan<- domain.ResourceRef) error {
	paginator := rds.NewDescribeDBInstancesPaginator(c.rds, &rds.DescribeDBInstancesInput{})

	page := 0
	for paginator.HasMorePages() {
		page++
		var output *rds.DescribeDBInstancesOutput
		err := c.call(ctx, "DescribeDBInstances", "", func(callCtx context.Context) error {
			var pageErr error
			output, pageErr = paginator.NextPage(callCtx)
			return pageErr
		})
		if err != nil {
			return err
		}
		c.logger.Debugf(ctx, "Fetched DB instance page %d (%d records) in %s", page, len(output.DBInstances), c.region)

		for _, db := range output.DBInstances {
			select {
			case out <- mapDBInstance(db, c.region):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func (c *regionalClient) ListDBClusters(ctx context.Context, out chan<- domain.ResourceRef) error {
	paginator := rds.NewDescribeDBClustersPaginator(c.rds, &rds.DescribeDBClustersInput{})

	page := 0
	for paginator.HasMorePages() {
		page++
		var output *rds.DescribeDBClustersOutput
		err := c.call(ctx, "DescribeDBClusters", "", func(callCtx context.Context) error {
			var pageErr error
			output, pageErr = paginator.NextPage(callCtx)
			return pageErr
		})
		if err != nil {
			return err
		}
		c.logger.Debugf(ctx, "Fetched DB cluster page %d (%d records) in %s", page, len(output.DBClusters), c.region)

		for _, cluster := range output.DBClusters {
			select {
			case out <- mapDBCluster(cluster, c.region):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func (c *regionalClient) StartResource(ctx context.Context, ref domain.ResourceRef) error {
	switch ref.Kind {
	case domain.KindDBInstance:
		return c.call(ctx, "StartDBInstance", ref.Identifier, func(callCtx context.Context) error {
			_, err := c.rds.StartDBInstance(callCtx, &rds.StartDBInstanceInput{
				DBInstanceIdentifier: &ref.Identifier,
			})
			return err
		})
	case domain.KindDBCluster:
		return c.call(ctx, "StartDBCluster", ref.Identifier, func(callCtx context.Context) error {
			_, err := c.rds.StartDBCluster(callCtx, &rds.StartDBClusterInput{
				DBClusterIdentifier: &ref.Identifier,
			})
			return err
		})
	default:
		return apperrors.New(apperrors.CodeInternal, fmt.Sprintf("unknown resource kind %q", ref.Kind))
	}
}

func (c *regionalClient) StopResource(ctx context.Context, ref domain.ResourceRef) error {
	switch ref.Kind {
	case domain.KindDBInstance:
		return c.call(ctx, "StopDBInstance", ref.Identifier, func(callCtx context.Context) error {
			_, err := c.rds.StopDBInstance(callCtx, &rds.StopDBInstanceInput{
				DBInstanceIdentifier: &ref.Identifier,
			})
			return err
		})
	case domain.KindDBCluster:
		return c.call(ctx, "StopDBCluster", ref.Identifier, func(callCtx context.Context) error {
			_, err := c.rds.StopDBCluster(callCtx, &rds.StopDBClusterInput{
				DBClusterIdentifier: &ref.Identifier,
			})
			return err
		})
	default:
		return apperrors.New(apperrors.CodeInternal, fmt.Sprintf("unknown resource kind %q", ref.Kind))
	}
}

// call runs one SDK operation under the shared rate limiter with capped,
// jittered exponential backoff. Only errors classified transient are
// retried; everything else surfaces immediately.
func (c *regionalClient) call(ctx context.Context, operation, resourceID string, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return awserrors.Classify(c.region, resourceID, err)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !awserrors.IsThrottle(lastErr) || attempt == c.retry.MaxAttempts {
			break
		}

		delay := c.backoff(attempt)
		c.logger.Warnf(ctx, "%s throttled in %s (attempt %d/%d), retrying in %s",
			operation, c.region, attempt, c.retry.MaxAttempts, delay)
		select {
		case <-ctx.Done():
			return awserrors.Classify(c.region, resourceID, ctx.Err())
		case <-time.After(delay):
		}
	}
	return awserrors.Classify(c.region, resourceID, lastErr)
}

// backoff grows exponentially from BaseDelay, capped at MaxDelay, with
// full jitter.
func (c *regionalClient) backoff(attempt int) time.Duration {
	d := float64(c.retry.BaseDelay) * math.Pow(2, float64(attempt-1))
	if d > float64(c.retry.MaxDelay) {
		d = float64(c.retry.MaxDelay)
	}
	return time.Duration(rand.Float64() * d)
}
