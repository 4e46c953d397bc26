// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package dashsvc

import (
	"reflect"
	"testing"

	"github.com/confighub/cloud-scout/internal/core"
)

func testSnapshot() []core.Resource {
	return []core.Resource{
		{ID: "i-web1", Name: "web-1", Type: core.TypeCompute, Provider: core.ProviderAWS, Region: "us-east-1", State: core.StateRunning},
		{ID: "db-orders", Name: "orders-db", Type: core.TypeDatabase, Provider: core.ProviderAWS, Region: "us-east-1", State: core.StateRunning},
		{ID: "i-batch", Name: "batch-worker", Type: core.TypeCompute, Provider: core.ProviderGCP, Region: "us-central1", State: core.StateStopped},
		{ID: "bkt-assets", Name: "assets", Type: core.TypeStorage, Provider: core.ProviderAWS, Region: "eu-west-1", State: core.StateRunning},
		{ID: "db-analytics", Name: "analytics-db", Type: core.TypeDatabase, Provider: core.ProviderAzure, Region: "westeurope", State: core.StateStopped},
	}
}

func TestApplyFilterEmptyTextYieldsAllIndices(t *testing.T) {
	got := applyFilter(testSnapshot(), "")
	want := []int{0, 1, 2, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("empty filter = %v, want %v", got, want)
	}
}

func TestApplyFilterMatchesAcrossFields(t *testing.T) {
	snapshot := testSnapshot()
	tests := []struct {
		name   string
		text   string
		expect []int
	}{
		{"by name substring", "db", []int{1, 4}},
		{"by id", "i-web1", []int{0}},
		{"by type label", "database", []int{1, 4}},
		{"by state label", "stopped", []int{2, 4}},
		{"by region", "eu-west", []int{3}},
		{"case insensitive", "WEB", []int{0}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyFilter(snapshot, tt.text)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Errorf("applyFilter(%q) = %v, want %v", tt.text, got, tt.expect)
			}
		})
	}
}

func TestApplyFilterDeterministicAndIdempotent(t *testing.T) {
	snapshot := testSnapshot()
	for _, text := range []string{"", "db", "running", "us-"} {
		first := applyFilter(snapshot, text)
		second := applyFilter(snapshot, text)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("applyFilter(%q) not deterministic: %v vs %v", text, first, second)
		}
	}
}

func TestApplyFilterPreservesStoreOrder(t *testing.T) {
	got := applyFilter(testSnapshot(), "db")
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("filtered view out of store order: %v", got)
		}
	}
}

func TestVisibleUnderTab(t *testing.T) {
	snapshot := testSnapshot()
	filtered := applyFilter(snapshot, "")

	aws := VisibleUnderTab(snapshot, filtered, TabAWS)
	if !reflect.DeepEqual(aws, []int{0, 1, 3}) {
		t.Errorf("AWS tab = %v, want [0 1 3]", aws)
	}

	all := VisibleUnderTab(snapshot, filtered, TabAllClouds)
	if !reflect.DeepEqual(all, filtered) {
		t.Errorf("All Clouds tab should show everything, got %v", all)
	}

	gcp := VisibleUnderTab(snapshot, filtered, TabGCP)
	if !reflect.DeepEqual(gcp, []int{2}) {
		t.Errorf("GCP tab = %v, want [2]", gcp)
	}
}
