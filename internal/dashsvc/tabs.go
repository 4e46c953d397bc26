// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package dashsvc

import "github.com/confighub/cloud-scout/internal/core"

// TabIndex selects which provider grouping the dashboard shows.
type TabIndex int

const (
	TabAWS TabIndex = iota
	TabGCP
	TabAzure
	TabAllClouds
	tabCount
)

// AllTabs returns the tabs in display order.
func AllTabs() []TabIndex {
	return []TabIndex{TabAWS, TabGCP, TabAzure, TabAllClouds}
}

// Label returns the display name for the tab.
func (t TabIndex) Label() string {
	switch t {
	case TabAWS:
		return "AWS"
	case TabGCP:
		return "GCP"
	case TabAzure:
		return "Azure"
	case TabAllClouds:
		return "All Clouds"
	default:
		return "Unknown"
	}
}

// Next returns the following tab, wrapping around.
func (t TabIndex) Next() TabIndex {
	return (t + 1) % tabCount
}

// Prev returns the preceding tab, wrapping around.
func (t TabIndex) Prev() TabIndex {
	if t == 0 {
		return tabCount - 1
	}
	return t - 1
}

// Includes reports whether a resource owned by kind is visible under this
// tab. The tab is a presentation-level grouping: the filter engine matches
// across all providers and the renderer narrows with this predicate.
func (t TabIndex) Includes(kind core.ProviderKind) bool {
	switch t {
	case TabAWS:
		return kind == core.ProviderAWS
	case TabGCP:
		return kind == core.ProviderGCP
	case TabAzure:
		return kind == core.ProviderAzure
	default:
		return true
	}
}
