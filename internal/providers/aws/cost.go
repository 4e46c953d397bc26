// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package aws

import (
	"context"
	"strconv"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/confighub/cloud-scout/internal/core"
)

const costDateFormat = "2006-01-02"

// TotalCost reports unblended spend for the period from Cost Explorer.
func (p *Provider) TotalCost(ctx context.Context, period core.CostPeriod) (float64, error) {
	if err := p.ensureAuthenticated(); err != nil {
		return 0, err
	}
	start, end := costDateRange(period, time.Now())
	return p.totalCostForRange(ctx, start, end)
}

// CostBreakdown returns this month's spend grouped by service and region,
// with a trend against the previous 30-day window.
func (p *Provider) CostBreakdown(ctx context.Context) (*core.CostBreakdown, error) {
	if err := p.ensureAuthenticated(); err != nil {
		return nil, err
	}

	now := time.Now()
	start, end := costDateRange(core.CostThisMonth, now)
	breakdown := core.NewCostBreakdown()

	byService, err := p.costGroupedBy(ctx, start, end, "SERVICE")
	if err != nil {
		return nil, core.NewProviderError("AWS", "fetch service cost breakdown", err)
	}
	for service, amount := range byService {
		breakdown.ByService[service] = amount
		breakdown.Total += amount
	}

	byRegion, err := p.costGroupedBy(ctx, start, end, "REGION")
	if err != nil {
		return nil, core.NewProviderError("AWS", "fetch region cost breakdown", err)
	}
	for region, amount := range byRegion {
		breakdown.ByRegion[region] = amount
	}

	// Trend is informational only; a failure here must not sink the breakdown.
	prevStart := now.AddDate(0, 0, -60).Format(costDateFormat)
	prevEnd := now.AddDate(0, 0, -30).Format(costDateFormat)
	if prevTotal, err := p.totalCostForRange(ctx, prevStart, prevEnd); err == nil && prevTotal > 0 {
		breakdown.TrendPercent = (breakdown.Total - prevTotal) / prevTotal * 100
	}

	return breakdown, nil
}

func (p *Provider) totalCostForRange(ctx context.Context, start, end string) (float64, error) {
	out, err := p.clients.costExplorer.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: awssdk.String(start),
			End:   awssdk.String(end),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
	})
	if err != nil {
		return 0, core.NewProviderError("AWS", "fetch cost data", err)
	}

	var total float64
	for _, result := range out.ResultsByTime {
		if metric, ok := result.Total["UnblendedCost"]; ok {
			if amount, err := strconv.ParseFloat(awssdk.ToString(metric.Amount), 64); err == nil {
				total += amount
			}
		}
	}
	return total, nil
}

func (p *Provider) costGroupedBy(ctx context.Context, start, end, dimension string) (map[string]float64, error) {
	out, err := p.clients.costExplorer.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: awssdk.String(start),
			End:   awssdk.String(end),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		GroupBy: []cetypes.GroupDefinition{{
			Type: cetypes.GroupDefinitionTypeDimension,
			Key:  awssdk.String(dimension),
		}},
	})
	if err != nil {
		return nil, err
	}

	costs := map[string]float64{}
	for _, result := range out.ResultsByTime {
		for _, group := range result.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics["UnblendedCost"]
			if !ok {
				continue
			}
			if amount, err := strconv.ParseFloat(awssdk.ToString(metric.Amount), 64); err == nil {
				costs[group.Keys[0]] += amount
			}
		}
	}
	return costs, nil
}

func costDateRange(period core.CostPeriod, now time.Time) (string, string) {
	var start time.Time
	switch period {
	case core.CostToday:
		start = now.AddDate(0, 0, -1)
	case core.CostThisWeek:
		start = now.AddDate(0, 0, -7)
	default:
		start = now.AddDate(0, 0, -30)
	}
	return start.Format(costDateFormat), now.Format(costDateFormat)
}
