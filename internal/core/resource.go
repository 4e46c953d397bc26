// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Package core defines the domain model shared by every part of cloud-scout:
// the unified Resource record, the CloudProvider contract, lifecycle actions,
// and the error types the orchestration layer routes on.
package core

import (
	"strings"
	"time"
)

// ResourceType classifies a resource into one of the fixed categories shown
// in the dashboard.
type ResourceType int

const (
	TypeCompute ResourceType = iota
	TypeDatabase
	TypeStorage
	TypeLoadBalancer
	TypeDNS
	TypeContainer
	TypeServerless
	TypeNetwork
	TypeCache
	TypeQueue
)

// Label returns the display name for the resource type.
func (t ResourceType) Label() string {
	switch t {
	case TypeCompute:
		return "Compute"
	case TypeDatabase:
		return "Database"
	case TypeStorage:
		return "Storage"
	case TypeLoadBalancer:
		return "Load Balancer"
	case TypeDNS:
		return "DNS"
	case TypeContainer:
		return "Container"
	case TypeServerless:
		return "Serverless"
	case TypeNetwork:
		return "Network"
	case TypeCache:
		return "Cache"
	case TypeQueue:
		return "Queue"
	default:
		return "Unknown"
	}
}

// ParseResourceType maps a display label back to its type. Unrecognized
// labels fall back to Compute, matching the cache's forgiving reads.
func ParseResourceType(s string) ResourceType {
	switch s {
	case "Compute":
		return TypeCompute
	case "Database":
		return TypeDatabase
	case "Storage":
		return TypeStorage
	case "Load Balancer":
		return TypeLoadBalancer
	case "DNS":
		return TypeDNS
	case "Container":
		return TypeContainer
	case "Serverless":
		return TypeServerless
	case "Network":
		return TypeNetwork
	case "Cache":
		return TypeCache
	case "Queue":
		return TypeQueue
	default:
		return TypeCompute
	}
}

// ProviderKind identifies which cloud a resource or provider belongs to.
type ProviderKind int

const (
	ProviderAWS ProviderKind = iota
	ProviderGCP
	ProviderAzure
)

// Label returns the display name for the provider kind.
func (p ProviderKind) Label() string {
	switch p {
	case ProviderAWS:
		return "AWS"
	case ProviderGCP:
		return "GCP"
	case ProviderAzure:
		return "Azure"
	default:
		return "Unknown"
	}
}

// ParseProviderKind maps a display label back to a kind, defaulting to AWS.
// Matching is case-insensitive: CLI arguments arrive lowercase ("gcp") while
// cached rows carry the exact labels.
func ParseProviderKind(s string) ProviderKind {
	switch {
	case strings.EqualFold(s, "GCP"):
		return ProviderGCP
	case strings.EqualFold(s, "Azure"):
		return ProviderAzure
	default:
		return ProviderAWS
	}
}

// ResourceState is the lifecycle state of a resource as last observed.
type ResourceState int

const (
	StateRunning ResourceState = iota
	StateStopped
	StateTerminated
	StatePending
	StateStopping
	StateStarting
	StateError
	StateUnknown
)

// Label returns the display name for the state.
func (s ResourceState) Label() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	case StateTerminated:
		return "Terminated"
	case StatePending:
		return "Pending"
	case StateStopping:
		return "Stopping"
	case StateStarting:
		return "Starting"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ParseResourceState maps a display label back to a state, defaulting to
// Unknown.
func ParseResourceState(s string) ResourceState {
	switch s {
	case "Running":
		return StateRunning
	case "Stopped":
		return StateStopped
	case "Terminated":
		return StateTerminated
	case "Pending":
		return StatePending
	case "Stopping":
		return StateStopping
	case "Starting":
		return StateStarting
	case "Error":
		return StateError
	default:
		return StateUnknown
	}
}

// IsActive reports whether the resource is up or on its way up.
func (s ResourceState) IsActive() bool {
	return s == StateRunning || s == StatePending || s == StateStarting
}

// Resource is the unified record for a unit of cloud infrastructure. A
// resource is created fresh on every refresh and never mutated in place; the
// whole snapshot is replaced atomically in the store.
type Resource struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        ResourceType      `json:"-"`
	Provider    ProviderKind      `json:"-"`
	Region      string            `json:"region"`
	State       ResourceState     `json:"-"`
	MonthlyCost *float64          `json:"cost_per_month,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	CreatedAt   *time.Time        `json:"created_at,omitempty"`

	// Label forms of the enum fields, used for JSON/cache round-trips so the
	// on-disk format stays readable and stable across enum reordering.
	TypeLabel     string `json:"resource_type"`
	ProviderLabel string `json:"provider"`
	StateLabel    string `json:"state"`
}

// Normalize fills the label fields from the enum fields. Call before
// serializing.
func (r *Resource) Normalize() {
	r.TypeLabel = r.Type.Label()
	r.ProviderLabel = r.Provider.Label()
	r.StateLabel = r.State.Label()
}

// Denormalize fills the enum fields from the label fields. Call after
// deserializing.
func (r *Resource) Denormalize() {
	r.Type = ParseResourceType(r.TypeLabel)
	r.Provider = ParseProviderKind(r.ProviderLabel)
	r.State = ParseResourceState(r.StateLabel)
}

// SupportedActions returns the lifecycle actions permitted for this resource
// given its category and current state. The tables match what each provider
// will actually accept, so the detail view never offers an action that is
// guaranteed to fail.
func (r Resource) SupportedActions() []Action {
	switch r.Type {
	case TypeCompute, TypeDatabase:
		switch r.State {
		case StateRunning:
			return []Action{ActionStop, ActionRestart, ActionTerminate, ActionViewDetails}
		case StateStopped:
			return []Action{ActionStart, ActionTerminate, ActionViewDetails}
		default:
			return []Action{ActionViewDetails}
		}
	case TypeStorage:
		return []Action{ActionViewDetails, ActionTerminate}
	default:
		return []Action{ActionViewDetails}
	}
}
