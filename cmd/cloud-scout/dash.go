// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/confighub/cloud-scout/internal/cachesvc"
	"github.com/confighub/cloud-scout/internal/clierr"
	"github.com/confighub/cloud-scout/internal/config"
	"github.com/confighub/cloud-scout/internal/core"
	"github.com/confighub/cloud-scout/internal/dashsvc"
	"github.com/confighub/cloud-scout/internal/logging"
	awsprovider "github.com/confighub/cloud-scout/internal/providers/aws"
	azureprovider "github.com/confighub/cloud-scout/internal/providers/azure"
	gcpprovider "github.com/confighub/cloud-scout/internal/providers/gcp"
)

const authTimeout = 30 * time.Second

// runDashboard wires config, logging, cache and providers together and hands
// control to the TUI.
func runDashboard() error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	log, closeLog, err := logging.Setup(dir)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load()
	if err != nil {
		return errors.New(clierr.Pretty(err))
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%v\n\nHint: configure a provider in %s/config.yaml "+
			"or set CLOUD_SCOUT_AWS_PROFILE", err, dir)
	}

	providers := authenticateProviders(cfg, log)
	if len(providers) == 0 {
		return errors.New("no cloud provider could be authenticated; check " +
			dir + "/cloud-scout.log for details")
	}

	var cache dashsvc.ResourceCache
	var cacheStore *cachesvc.Store
	if cfg.Cache.Enabled {
		cacheStore, err = cachesvc.Open(cfg.CacheDBPath(), cfg.CacheMaxAge())
		if err != nil {
			// The dashboard works without the cache, just slower to start.
			log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		} else {
			defer cacheStore.Close()
			cache = cacheStore
		}
	}

	orch := dashsvc.NewOrchestrator(providers, cache, log)

	st := dashsvc.NewState(dashsvc.NewStore())
	st.SetCacheEnabled(cache != nil)
	st.SetTab(defaultTab(cfg.UI.DefaultTab))

	hydrated := 0
	if cache != nil {
		n, err := orch.HydrateFromCache(st)
		if err != nil {
			log.Warn().Err(err).Msg("cache hydration failed, falling back to live refresh")
		} else {
			hydrated = n
		}
	}

	m := newDashModel(st, orch, cfg, log)
	m.cache = cacheStore
	m.needsInitialRefresh = hydrated == 0

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}

// authenticateProviders builds and authenticates every configured provider.
// A provider that fails to authenticate is logged and skipped so one bad
// credential set does not take the whole dashboard down.
func authenticateProviders(cfg *config.Config, log zerolog.Logger) []core.CloudProvider {
	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	var candidates []core.CloudProvider
	if aws := cfg.Providers.AWS; aws != nil {
		candidates = append(candidates, awsprovider.New(awsOptions(aws, log), log))
	}
	if gcp := cfg.Providers.GCP; gcp != nil {
		candidates = append(candidates, gcpprovider.New(gcpprovider.Options{
			ProjectID:       gcp.ProjectID,
			CredentialsFile: gcp.CredentialsFile,
			Region:          gcp.Region,
		}))
	}
	if azure := cfg.Providers.Azure; azure != nil {
		candidates = append(candidates, azureprovider.New(azureprovider.Options{
			SubscriptionID: azure.SubscriptionID,
			TenantID:       azure.TenantID,
			ClientID:       azure.ClientID,
			ClientSecret:   azure.ClientSecret,
		}))
	}

	var providers []core.CloudProvider
	for _, p := range candidates {
		if err := p.Authenticate(ctx); err != nil {
			if errors.Is(err, core.ErrNotImplemented) {
				log.Info().Str("provider", p.Name()).Msg("configured (not implemented yet)")
			} else {
				log.Error().Str("provider", p.Name()).Err(err).Msg("authentication failed, skipping provider")
			}
			continue
		}
		providers = append(providers, p)
	}
	return providers
}

// awsOptions resolves provider options from config, consulting the shared
// credentials file when the config names neither a profile nor static keys.
func awsOptions(aws *config.AWSConfig, log zerolog.Logger) awsprovider.Options {
	opts := awsprovider.Options{
		Profile:         aws.Profile,
		Region:          aws.Region,
		AccessKeyID:     aws.AccessKeyID,
		SecretAccessKey: aws.SecretAccessKey,
	}
	if opts.Profile == "" && opts.AccessKeyID == "" {
		if profiles, err := config.DetectAWSProfiles(); err == nil && len(profiles) > 0 {
			opts.Profile = profiles[0]
			log.Debug().Str("profile", opts.Profile).Msg("using detected AWS profile")
		}
	}
	// The profile's own region wins over nothing, never over the config.
	if opts.Region == "" && opts.Profile != "" {
		if creds, err := config.AWSProfileCredentials(opts.Profile); err == nil && creds.Region != "" {
			opts.Region = creds.Region
		}
	}
	return opts
}

func defaultTab(name string) dashsvc.TabIndex {
	switch name {
	case "gcp":
		return dashsvc.TabGCP
	case "azure":
		return dashsvc.TabAzure
	case "all":
		return dashsvc.TabAllClouds
	default:
		return dashsvc.TabAWS
	}
}
