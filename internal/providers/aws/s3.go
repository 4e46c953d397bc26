// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/confighub/cloud-scout/internal/core"
)

func (p *Provider) listS3Buckets(ctx context.Context) ([]core.Resource, error) {
	out, err := p.clients.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}

	// Bucket sizes need CloudWatch metrics the dashboard does not fetch, so
	// buckets carry no per-resource cost estimate; S3 spend still shows up in
	// the Cost Explorer breakdown.
	resources := make([]core.Resource, 0, len(out.Buckets))
	for _, bucket := range out.Buckets {
		name := awssdk.ToString(bucket.Name)
		resources = append(resources, core.Resource{
			ID:        name,
			Name:      name,
			Type:      core.TypeStorage,
			Provider:  core.ProviderAWS,
			Region:    p.opts.Region,
			State:     core.StateRunning,
			Tags:      map[string]string{},
			CreatedAt: bucket.CreationDate,
		})
	}
	return resources, nil
}
