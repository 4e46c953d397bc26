// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confighub/cloud-scout/internal/cachesvc"
	"github.com/confighub/cloud-scout/internal/config"
	"github.com/confighub/cloud-scout/internal/core"
)

func init() {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the local resource cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show cached resource counts and last sync per provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openCache()
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Count()
			if err != nil {
				return err
			}
			fmt.Printf("Cache: %s\n", cfg.CacheDBPath())
			fmt.Printf("Resources: %d (max age %s)\n\n", count, cfg.CacheMaxAge())

			for _, kind := range []core.ProviderKind{core.ProviderAWS, core.ProviderGCP, core.ProviderAzure} {
				last, err := store.LastSync(kind)
				if err != nil {
					return err
				}
				if last.IsZero() {
					fmt.Printf("  %-6s never synced\n", kind.Label())
					continue
				}
				stale, _ := store.IsStale(kind)
				marker := ""
				if stale {
					marker = " (stale)"
				}
				fmt.Printf("  %-6s %s%s\n", kind.Label(), last.Format("2006-01-02 15:04:05"), marker)
			}
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:       "clear [aws|gcp|azure]",
		Short:     "Clear cached resources, optionally scoped to one provider",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"aws", "gcp", "azure"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openCache()
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 0 {
				if err := store.ClearAll(); err != nil {
					return err
				}
				fmt.Println("Cache cleared")
				return nil
			}

			kind := core.ParseProviderKind(args[0])
			if err := store.Clear(kind); err != nil {
				return err
			}
			fmt.Printf("Cache cleared for %s\n", kind.Label())
			return nil
		},
	})

	rootCmd.AddCommand(cacheCmd)
}

func openCache() (*cachesvc.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := cachesvc.Open(cfg.CacheDBPath(), cfg.CacheMaxAge())
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}
