// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"strings"
	"testing"
)

func TestAuthErrorCarriesProviderKind(t *testing.T) {
	tests := []struct {
		kind     ProviderKind
		expected string
	}{
		{ProviderAWS, "AWS"},
		{ProviderGCP, "GCP"},
		{ProviderAzure, "Azure"},
	}
	for _, tt := range tests {
		err := &AuthError{Provider: tt.kind, Reason: "no credentials"}
		if !strings.Contains(err.Error(), tt.expected) {
			t.Errorf("Error() = %q, want provider label %q", err.Error(), tt.expected)
		}
		if !strings.Contains(err.Error(), "no credentials") {
			t.Errorf("Error() = %q, want the reason included", err.Error())
		}
	}
}

func TestAuthErrorMatchesViaErrorsAs(t *testing.T) {
	wrapped := errors.New("wrapped")
	err := error(&AuthError{Provider: ProviderAWS, Reason: wrapped.Error()})

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("errors.As should match *AuthError")
	}
	if authErr.Provider != ProviderAWS {
		t.Errorf("Provider = %v, want ProviderAWS", authErr.Provider)
	}
}

func TestProviderErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewProviderError("AWS", "list compute", cause)

	if !errors.Is(err, cause) {
		t.Errorf("provider error should unwrap to its cause")
	}
	for _, want := range []string{"AWS", "list compute", "connection reset"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error() = %q, missing %q", err.Error(), want)
		}
	}
}

func TestNewCostBreakdown(t *testing.T) {
	b := NewCostBreakdown()
	// Maps must be usable immediately.
	b.ByService["Amazon EC2"] = 10
	b.ByRegion["us-east-1"] = 10
	if b.Total != 0 || b.TrendPercent != 0 {
		t.Errorf("new breakdown should start zeroed, got %+v", b)
	}
}
