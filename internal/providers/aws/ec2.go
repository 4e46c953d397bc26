// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package aws

import (
	"context"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/confighub/cloud-scout/internal/core"
)

func (p *Provider) listEC2Instances(ctx context.Context) ([]core.Resource, error) {
	var resources []core.Resource

	paginator := ec2.NewDescribeInstancesPaginator(p.clients.ec2, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				resources = append(resources, ec2InstanceResource(instance, p.opts.Region))
			}
		}
	}
	return resources, nil
}

func ec2InstanceResource(instance ec2types.Instance, region string) core.Resource {
	tags := ec2TagMap(instance.Tags)
	id := awssdk.ToString(instance.InstanceId)

	name := tags["Name"]
	if name == "" {
		name = id
	}

	instanceType := string(instance.InstanceType)
	if instanceType != "" {
		tags["InstanceType"] = instanceType
	}
	if ip := awssdk.ToString(instance.PublicIpAddress); ip != "" {
		tags["PublicIP"] = ip
	}
	if ip := awssdk.ToString(instance.PrivateIpAddress); ip != "" {
		tags["PrivateIP"] = ip
	}

	state := "unknown"
	if instance.State != nil {
		state = string(instance.State.Name)
	}

	cost := estimateEC2Cost(instanceType)

	return core.Resource{
		ID:          id,
		Name:        name,
		Type:        core.TypeCompute,
		Provider:    core.ProviderAWS,
		Region:      region,
		State:       mapEC2State(state),
		MonthlyCost: &cost,
		Tags:        tags,
		CreatedAt:   instance.LaunchTime,
	}
}

func mapEC2State(state string) core.ResourceState {
	switch state {
	case "running":
		return core.StateRunning
	case "stopped":
		return core.StateStopped
	case "terminated":
		return core.StateTerminated
	case "pending":
		return core.StatePending
	case "stopping", "shutting-down":
		return core.StateStopping
	default:
		return core.StateUnknown
	}
}

// estimateEC2Cost maps common instance types to rough monthly on-demand
// prices. Anything unrecognized gets a flat placeholder.
func estimateEC2Cost(instanceType string) float64 {
	prices := []struct {
		prefix string
		cost   float64
	}{
		{"t2.micro", 8.47},
		{"t2.small", 16.79},
		{"t2.medium", 33.58},
		{"t3.micro", 7.59},
		{"t3.small", 15.18},
		{"t3.medium", 30.37},
		{"m5.large", 69.35},
		{"m5.xlarge", 138.70},
		{"c5.large", 61.06},
		{"c5.xlarge", 122.11},
	}
	for _, p := range prices {
		if strings.HasPrefix(instanceType, p.prefix) {
			return p.cost
		}
	}
	return 50.0
}

func (p *Provider) executeEC2Action(ctx context.Context, instanceID string, action core.Action) error {
	var err error
	switch action {
	case core.ActionStart:
		_, err = p.clients.ec2.StartInstances(ctx, &ec2.StartInstancesInput{
			InstanceIds: []string{instanceID},
		})
	case core.ActionStop:
		_, err = p.clients.ec2.StopInstances(ctx, &ec2.StopInstancesInput{
			InstanceIds: []string{instanceID},
		})
	case core.ActionRestart:
		_, err = p.clients.ec2.RebootInstances(ctx, &ec2.RebootInstancesInput{
			InstanceIds: []string{instanceID},
		})
	case core.ActionTerminate:
		_, err = p.clients.ec2.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
			InstanceIds: []string{instanceID},
		})
	default:
		return fmt.Errorf("action %s is not supported for EC2 instances", action.Label())
	}
	if err != nil {
		return core.NewProviderError("AWS", fmt.Sprintf("%s instance %s", strings.ToLower(action.Label()), instanceID), err)
	}
	return nil
}

func ec2TagMap(tags []ec2types.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key != nil && tag.Value != nil {
			out[*tag.Key] = *tag.Value
		}
	}
	return out
}
