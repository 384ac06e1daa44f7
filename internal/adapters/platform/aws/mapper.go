package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
)

// Tags come from the TagList on each describe record, so listing never
// needs a second call per resource.

func mapDBInstance(db rdstypes.DBInstance, region string) domain.ResourceRef {
	return domain.ResourceRef{
		Kind:              domain.KindDBInstance,
		Identifier:        aws.ToString(db.DBInstanceIdentifier),
		ARN:               aws.ToString(db.DBInstanceArn),
		Region:            region,
		CurrentState:      aws.ToString(db.DBInstanceStatus),
		ClusterIdentifier: aws.ToString(db.DBClusterIdentifier),
		Tags:              mapTagList(db.TagList),
	}
}

func mapDBCluster(cluster rdstypes.DBCluster, region string) domain.ResourceRef {
	return domain.ResourceRef{
		Kind:         domain.KindDBCluster,
		Identifier:   aws.ToString(cluster.DBClusterIdentifier),
		ARN:          aws.ToString(cluster.DBClusterArn),
		Region:       region,
		CurrentState: aws.ToString(cluster.Status),
		Tags:         mapTagList(cluster.TagList),
	}
}

func mapTagList(tags []rdstypes.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, t := range tags {
		if t.Key == nil {
			continue
		}
		out[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return out
}
