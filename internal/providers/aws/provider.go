// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Package aws implements the AWS side of the dashboard: authentication,
// resource inventory across EC2, RDS, S3, ELBv2 and Route53, lifecycle
// actions, and Cost Explorer spend reporting.
package aws

import (
	"context"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/confighub/cloud-scout/internal/core"
)

// Options configures the provider. Static keys win over a named profile,
// which wins over the SDK's default chain.
type Options struct {
	Profile         string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type clients struct {
	ec2          *ec2.Client
	rds          *rds.Client
	s3           *s3.Client
	elb          *elbv2.Client
	route53      *route53.Client
	costExplorer *costexplorer.Client
}

// Provider implements core.CloudProvider for AWS.
type Provider struct {
	opts    Options
	clients *clients
	log     zerolog.Logger
}

// New returns an unauthenticated AWS provider.
func New(opts Options, log zerolog.Logger) *Provider {
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	return &Provider{opts: opts, log: log.With().Str("provider", "aws").Logger()}
}

func (p *Provider) Name() string                    { return "AWS" }
func (p *Provider) ProviderType() core.ProviderKind { return core.ProviderAWS }

// Authenticate builds the SDK config using the static-keys / profile /
// default-chain precedence and verifies it with a DescribeRegions call.
func (p *Provider) Authenticate(ctx context.Context) error {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(p.opts.Region),
	}
	switch {
	case p.opts.AccessKeyID != "" && p.opts.SecretAccessKey != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.opts.AccessKeyID, p.opts.SecretAccessKey, "")))
	case p.opts.Profile != "":
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(p.opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return &core.AuthError{Provider: core.ProviderAWS, Reason: err.Error()}
	}

	c := &clients{
		ec2:          ec2.NewFromConfig(cfg),
		rds:          rds.NewFromConfig(cfg),
		s3:           s3.NewFromConfig(cfg),
		elb:          elbv2.NewFromConfig(cfg),
		route53:      route53.NewFromConfig(cfg),
		costExplorer: costexplorer.NewFromConfig(cfg),
	}

	if _, err := c.ec2.DescribeRegions(ctx, &ec2.DescribeRegionsInput{}); err != nil {
		return &core.AuthError{
			Provider: core.ProviderAWS,
			Reason:   fmt.Sprintf("failed to verify credentials: %v", err),
		}
	}

	p.clients = c
	p.log.Info().Str("region", p.opts.Region).Msg("authenticated")
	return nil
}

func (p *Provider) ensureAuthenticated() error {
	if p.clients == nil {
		return &core.AuthError{Provider: core.ProviderAWS, Reason: "provider not authenticated"}
	}
	return nil
}

// TestConnection verifies the provider is still reachable.
func (p *Provider) TestConnection(ctx context.Context) (bool, error) {
	if err := p.ensureAuthenticated(); err != nil {
		return false, err
	}
	if _, err := p.clients.ec2.DescribeRegions(ctx, &ec2.DescribeRegionsInput{}); err != nil {
		return false, core.NewProviderError("AWS", "connection test", err)
	}
	return true, nil
}

// ListAllResources concatenates the inventory of every supported service.
func (p *Provider) ListAllResources(ctx context.Context) ([]core.Resource, error) {
	if err := p.ensureAuthenticated(); err != nil {
		return nil, err
	}

	var all []core.Resource
	listers := []struct {
		name string
		list func(context.Context) ([]core.Resource, error)
	}{
		{"ec2", p.listEC2Instances},
		{"rds", p.listRDSInstances},
		{"s3", p.listS3Buckets},
		{"elb", p.listLoadBalancers},
		{"route53", p.listHostedZones},
	}
	for _, l := range listers {
		resources, err := l.list(ctx)
		if err != nil {
			return nil, core.NewProviderError("AWS", "list "+l.name, err)
		}
		p.log.Debug().Str("service", l.name).Int("count", len(resources)).Msg("listed resources")
		all = append(all, resources...)
	}
	return all, nil
}

// ExecuteAction routes by resource id shape: EC2 instance ids carry the i-
// prefix, everything else is treated as an RDS identifier.
func (p *Provider) ExecuteAction(ctx context.Context, resourceID string, action core.Action) error {
	if err := p.ensureAuthenticated(); err != nil {
		return err
	}

	p.log.Info().Str("resource", resourceID).Str("action", action.Label()).Msg("executing action")

	if strings.HasPrefix(resourceID, "i-") {
		return p.executeEC2Action(ctx, resourceID, action)
	}
	if strings.HasPrefix(resourceID, "db") {
		return p.executeRDSAction(ctx, resourceID, action)
	}
	return fmt.Errorf("action %s is not supported for resource %s", action.Label(), resourceID)
}

// Regions returns the commercial regions the dashboard can scope to.
func (p *Provider) Regions() []string {
	return []string{
		"us-east-1", "us-east-2", "us-west-1", "us-west-2",
		"eu-west-1", "eu-west-2", "eu-west-3", "eu-central-1",
		"ap-northeast-1", "ap-northeast-2", "ap-southeast-1", "ap-southeast-2",
		"ap-south-1", "sa-east-1", "ca-central-1",
	}
}

func (p *Provider) CurrentRegion() string { return p.opts.Region }

func strOr(s *string, fallback string) string {
	if v := awssdk.ToString(s); v != "" {
		return v
	}
	return fallback
}
