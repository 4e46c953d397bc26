// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package aws

import (
	"context"
	"strconv"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"

	"github.com/confighub/cloud-scout/internal/core"
)

func (p *Provider) listHostedZones(ctx context.Context) ([]core.Resource, error) {
	var resources []core.Resource

	paginator := route53.NewListHostedZonesPaginator(p.clients.route53, &route53.ListHostedZonesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, zone := range page.HostedZones {
			resources = append(resources, hostedZoneResource(zone))
		}
	}
	return resources, nil
}

func hostedZoneResource(zone r53types.HostedZone) core.Resource {
	tags := map[string]string{}
	if zone.Config != nil && zone.Config.PrivateZone {
		tags["PrivateZone"] = "true"
	}
	recordCount := awssdk.ToInt64(zone.ResourceRecordSetCount)
	if zone.ResourceRecordSetCount != nil {
		tags["Records"] = strconv.FormatInt(recordCount, 10)
	}

	cost := estimateRoute53Cost(zone.ResourceRecordSetCount)

	// Route53 is a global service, not tied to the configured region.
	return core.Resource{
		ID:          awssdk.ToString(zone.Id),
		Name:        awssdk.ToString(zone.Name),
		Type:        core.TypeDNS,
		Provider:    core.ProviderAWS,
		Region:      "global",
		State:       core.StateRunning,
		MonthlyCost: &cost,
		Tags:        tags,
	}
}

// estimateRoute53Cost: $0.50 per zone plus $0.40 for each record beyond the
// first 25.
func estimateRoute53Cost(recordCount *int64) float64 {
	const baseCost = 0.50
	if recordCount == nil {
		return baseCost
	}
	billable := *recordCount - 25
	if billable < 0 {
		billable = 0
	}
	return baseCost + float64(billable)*0.40
}
