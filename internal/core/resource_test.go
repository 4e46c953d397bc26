// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestResourceTypeLabels(t *testing.T) {
	tests := []struct {
		rt       ResourceType
		expected string
	}{
		{TypeCompute, "Compute"},
		{TypeDatabase, "Database"},
		{TypeStorage, "Storage"},
		{TypeLoadBalancer, "Load Balancer"},
		{TypeDNS, "DNS"},
		{TypeContainer, "Container"},
		{TypeServerless, "Serverless"},
		{TypeNetwork, "Network"},
		{TypeCache, "Cache"},
		{TypeQueue, "Queue"},
	}

	for _, tt := range tests {
		if got := tt.rt.Label(); got != tt.expected {
			t.Errorf("Label() = %q, want %q", got, tt.expected)
		}
		if got := ParseResourceType(tt.expected); got != tt.rt {
			t.Errorf("ParseResourceType(%q) = %v, want %v", tt.expected, got, tt.rt)
		}
	}
}

func TestProviderKindLabels(t *testing.T) {
	if ProviderAWS.Label() != "AWS" || ProviderGCP.Label() != "GCP" || ProviderAzure.Label() != "Azure" {
		t.Error("unexpected provider labels")
	}
	if ParseProviderKind("Azure") != ProviderAzure {
		t.Error("ParseProviderKind(Azure) failed")
	}
	// CLI arguments arrive lowercase and must resolve to the same kinds the
	// exact labels do; a miss here would scope a cache clear to the wrong
	// provider.
	for arg, want := range map[string]ProviderKind{
		"aws": ProviderAWS, "gcp": ProviderGCP, "azure": ProviderAzure,
		"AWS": ProviderAWS, "GCP": ProviderGCP, "Azure": ProviderAzure,
	} {
		if got := ParseProviderKind(arg); got != want {
			t.Errorf("ParseProviderKind(%q) = %v, want %v", arg, got, want)
		}
	}
	// Unrecognized input falls back to AWS, matching cache reads.
	if ParseProviderKind("whatever") != ProviderAWS {
		t.Error("ParseProviderKind fallback should be AWS")
	}
}

func TestResourceStateIsActive(t *testing.T) {
	active := []ResourceState{StateRunning, StatePending, StateStarting}
	for _, s := range active {
		if !s.IsActive() {
			t.Errorf("%s should be active", s.Label())
		}
	}
	inactive := []ResourceState{StateStopped, StateTerminated, StateStopping, StateError, StateUnknown}
	for _, s := range inactive {
		if s.IsActive() {
			t.Errorf("%s should not be active", s.Label())
		}
	}
}

func TestSupportedActions(t *testing.T) {
	running := Resource{Type: TypeCompute, State: StateRunning}
	actions := running.SupportedActions()
	if !containsAction(actions, ActionStop) || !containsAction(actions, ActionTerminate) {
		t.Errorf("running compute should support stop and terminate, got %v", actions)
	}
	if containsAction(actions, ActionStart) {
		t.Error("running compute should not support start")
	}

	stopped := Resource{Type: TypeDatabase, State: StateStopped}
	actions = stopped.SupportedActions()
	if !containsAction(actions, ActionStart) {
		t.Error("stopped database should support start")
	}
	if containsAction(actions, ActionStop) {
		t.Error("stopped database should not support stop")
	}

	transitional := Resource{Type: TypeCompute, State: StateStopping}
	if got := transitional.SupportedActions(); len(got) != 1 || got[0] != ActionViewDetails {
		t.Errorf("transitional resource should only support view details, got %v", got)
	}

	bucket := Resource{Type: TypeStorage, State: StateRunning}
	actions = bucket.SupportedActions()
	if !containsAction(actions, ActionTerminate) || !containsAction(actions, ActionViewDetails) {
		t.Errorf("storage should support view details and terminate, got %v", actions)
	}

	zone := Resource{Type: TypeDNS, State: StateRunning}
	if got := zone.SupportedActions(); len(got) != 1 || got[0] != ActionViewDetails {
		t.Errorf("DNS should only support view details, got %v", got)
	}
}

func TestActionDestructive(t *testing.T) {
	if !ActionTerminate.IsDestructive() {
		t.Error("terminate must be destructive")
	}
	for _, a := range []Action{ActionStart, ActionStop, ActionRestart, ActionViewDetails, ActionViewLogs, ActionModify} {
		if a.IsDestructive() {
			t.Errorf("%s should not be destructive", a.Label())
		}
	}
}

func TestResourceJSONRoundTrip(t *testing.T) {
	cost := 33.58
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	r := Resource{
		ID:          "i-0abc123",
		Name:        "web-1",
		Type:        TypeCompute,
		Provider:    ProviderAWS,
		Region:      "us-east-1",
		State:       StateRunning,
		MonthlyCost: &cost,
		Tags:        map[string]string{"Name": "web-1", "env": "prod"},
		CreatedAt:   &created,
	}
	r.Normalize()

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Resource
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	back.Denormalize()

	if back.ID != r.ID || back.Type != TypeCompute || back.Provider != ProviderAWS || back.State != StateRunning {
		t.Errorf("round trip lost fields: %+v", back)
	}
	if back.MonthlyCost == nil || *back.MonthlyCost != cost {
		t.Error("round trip lost cost")
	}
	if back.Tags["env"] != "prod" {
		t.Error("round trip lost tags")
	}
}

func containsAction(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}
