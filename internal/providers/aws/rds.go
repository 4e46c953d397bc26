// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package aws

import (
	"context"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"

	"github.com/confighub/cloud-scout/internal/core"
)

func (p *Provider) listRDSInstances(ctx context.Context) ([]core.Resource, error) {
	var resources []core.Resource

	paginator := rds.NewDescribeDBInstancesPaginator(p.clients.rds, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, db := range page.DBInstances {
			resources = append(resources, rdsInstanceResource(db, p.opts.Region))
		}
	}
	return resources, nil
}

func rdsInstanceResource(db rdstypes.DBInstance, region string) core.Resource {
	tags := make(map[string]string, len(db.TagList)+4)
	for _, tag := range db.TagList {
		if tag.Key != nil && tag.Value != nil {
			tags[*tag.Key] = *tag.Value
		}
	}

	id := awssdk.ToString(db.DBInstanceIdentifier)
	name := tags["Name"]
	if name == "" {
		name = id
	}

	if engine := awssdk.ToString(db.Engine); engine != "" {
		tags["Engine"] = engine
		if version := awssdk.ToString(db.EngineVersion); version != "" {
			tags["Engine"] = engine + " " + version
		}
	}
	instanceClass := awssdk.ToString(db.DBInstanceClass)
	if instanceClass != "" {
		tags["InstanceClass"] = instanceClass
	}
	if db.Endpoint != nil && db.Endpoint.Address != nil {
		tags["Endpoint"] = fmt.Sprintf("%s:%d", *db.Endpoint.Address, awssdk.ToInt32(db.Endpoint.Port))
	}

	storageGB := awssdk.ToInt32(db.AllocatedStorage)
	multiAZ := awssdk.ToBool(db.MultiAZ)
	if multiAZ {
		tags["MultiAZ"] = "true"
	}

	cost := estimateRDSCost(instanceClass, storageGB, multiAZ)

	return core.Resource{
		ID:          id,
		Name:        name,
		Type:        core.TypeDatabase,
		Provider:    core.ProviderAWS,
		Region:      region,
		State:       mapRDSState(awssdk.ToString(db.DBInstanceStatus)),
		MonthlyCost: &cost,
		Tags:        tags,
		CreatedAt:   db.InstanceCreateTime,
	}
}

func mapRDSState(status string) core.ResourceState {
	switch status {
	case "available":
		return core.StateRunning
	case "stopped":
		return core.StateStopped
	case "stopping", "deleting":
		return core.StateStopping
	case "starting":
		return core.StateStarting
	case "creating":
		return core.StatePending
	case "failed", "inaccessible-encryption-credentials":
		return core.StateError
	default:
		return core.StateUnknown
	}
}

// estimateRDSCost prices the instance class plus gp2 storage, doubled for
// Multi-AZ deployments.
func estimateRDSCost(instanceClass string, storageGB int32, multiAZ bool) float64 {
	base := 100.0
	prices := []struct {
		class string
		cost  float64
	}{
		{"db.t3.micro", 14.60},
		{"db.t3.small", 29.20},
		{"db.t3.medium", 58.40},
		{"db.t2.micro", 16.79},
		{"db.t2.small", 33.58},
		{"db.t2.medium", 67.16},
		{"db.m5.large", 131.40},
		{"db.m5.xlarge", 262.80},
		{"db.r5.large", 175.20},
		{"db.r5.xlarge", 350.40},
	}
	for _, p := range prices {
		if strings.Contains(instanceClass, p.class) {
			base = p.cost
			break
		}
	}

	total := base + float64(storageGB)*0.115
	if multiAZ {
		total *= 2
	}
	return total
}

func (p *Provider) executeRDSAction(ctx context.Context, dbInstanceID string, action core.Action) error {
	var err error
	switch action {
	case core.ActionStart:
		_, err = p.clients.rds.StartDBInstance(ctx, &rds.StartDBInstanceInput{
			DBInstanceIdentifier: awssdk.String(dbInstanceID),
		})
	case core.ActionStop:
		_, err = p.clients.rds.StopDBInstance(ctx, &rds.StopDBInstanceInput{
			DBInstanceIdentifier: awssdk.String(dbInstanceID),
		})
	case core.ActionRestart:
		_, err = p.clients.rds.RebootDBInstance(ctx, &rds.RebootDBInstanceInput{
			DBInstanceIdentifier: awssdk.String(dbInstanceID),
		})
	default:
		return fmt.Errorf("action %s is not supported for RDS instances", action.Label())
	}
	if err != nil {
		return core.NewProviderError("AWS", fmt.Sprintf("%s database %s", strings.ToLower(action.Label()), dbInstanceID), err)
	}
	return nil
}
