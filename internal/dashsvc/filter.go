// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package dashsvc

import (
	"strings"

	"github.com/confighub/cloud-scout/internal/core"
)

// applyFilter derives the visible index set from a snapshot and a filter
// text. Pure and deterministic: the same inputs always yield the same view.
// Matching is a case-insensitive substring test OR'd across name, id,
// category label, state label, and region. Empty text yields every index in
// store order.
func applyFilter(snapshot []core.Resource, filterText string) []int {
	if filterText == "" {
		indices := make([]int, len(snapshot))
		for i := range snapshot {
			indices[i] = i
		}
		return indices
	}

	needle := strings.ToLower(filterText)
	var indices []int
	for i, r := range snapshot {
		if matchesFilter(r, needle) {
			indices = append(indices, i)
		}
	}
	return indices
}

func matchesFilter(r core.Resource, needle string) bool {
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.ID), needle) ||
		strings.Contains(strings.ToLower(r.Type.Label()), needle) ||
		strings.Contains(strings.ToLower(r.State.Label()), needle) ||
		strings.Contains(strings.ToLower(r.Region), needle)
}

// VisibleUnderTab narrows a filtered view to the resources the active tab
// shows. Presentation-level only: it never feeds back into cursor state.
func VisibleUnderTab(snapshot []core.Resource, filtered []int, tab TabIndex) []int {
	if tab == TabAllClouds {
		return filtered
	}
	var out []int
	for _, idx := range filtered {
		if idx >= 0 && idx < len(snapshot) && tab.Includes(snapshot[idx].Provider) {
			out = append(out, idx)
		}
	}
	return out
}
