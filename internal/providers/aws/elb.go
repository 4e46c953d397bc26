// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package aws

import (
	"context"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/confighub/cloud-scout/internal/core"
)

func (p *Provider) listLoadBalancers(ctx context.Context) ([]core.Resource, error) {
	var resources []core.Resource

	paginator := elbv2.NewDescribeLoadBalancersPaginator(p.clients.elb, &elbv2.DescribeLoadBalancersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, lb := range page.LoadBalancers {
			resources = append(resources, loadBalancerResource(lb, p.opts.Region))
		}
	}
	return resources, nil
}

func loadBalancerResource(lb elbtypes.LoadBalancer, region string) core.Resource {
	lbType := string(lb.Type)
	if lbType == "" {
		lbType = "application"
	}

	tags := map[string]string{"Type": lbType}
	if scheme := string(lb.Scheme); scheme != "" {
		tags["Scheme"] = scheme
	}
	if dns := awssdk.ToString(lb.DNSName); dns != "" {
		tags["DNSName"] = dns
	}
	if zones := zoneNames(lb.AvailabilityZones); zones != "" {
		tags["AvailabilityZones"] = zones
	}

	state := "unknown"
	if lb.State != nil {
		state = string(lb.State.Code)
	}

	cost := estimateELBCost(lbType)

	return core.Resource{
		ID:          awssdk.ToString(lb.LoadBalancerArn),
		Name:        strOr(lb.LoadBalancerName, "Unknown"),
		Type:        core.TypeLoadBalancer,
		Provider:    core.ProviderAWS,
		Region:      region,
		State:       mapELBState(state),
		MonthlyCost: &cost,
		Tags:        tags,
		CreatedAt:   lb.CreatedTime,
	}
}

func mapELBState(state string) core.ResourceState {
	switch state {
	case "active":
		return core.StateRunning
	case "provisioning":
		return core.StatePending
	case "failed":
		return core.StateError
	default:
		return core.StateUnknown
	}
}

func estimateELBCost(lbType string) float64 {
	if lbType == "gateway" {
		return 27.80
	}
	return 18.40
}

func zoneNames(zones []elbtypes.AvailabilityZone) string {
	names := make([]string, 0, len(zones))
	for _, z := range zones {
		if name := awssdk.ToString(z.ZoneName); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}
