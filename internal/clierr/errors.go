// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Package clierr provides error classification and user-friendly error formatting for the CLI.
// It helps distinguish between different error types and provides actionable hints.
package clierr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/confighub/cloud-scout/internal/core"
	"github.com/confighub/cloud-scout/internal/dashsvc"
)

// Common error types for CLI output.
const (
	TypeAuth        = "auth"        // Credential or token failures
	TypeThrottle    = "throttle"    // Provider API rate limiting
	TypeNotFound    = "not_found"   // Resource no longer exists
	TypeNetwork     = "network"     // Connection/network errors
	TypeConsistency = "consistency" // Resource references a provider we don't hold
	TypeCache       = "cache"       // Local cache database errors
	TypeInternal    = "internal"    // Internal/unexpected errors
)

// IsAuthError checks if the error is a credential or token failure.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	var authErr *core.AuthError
	if errors.As(err, &authErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "expiredtoken") ||
		strings.Contains(msg, "invalidclienttokenid") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "access denied") ||
		strings.Contains(msg, "no valid credential") ||
		strings.Contains(msg, "failed to retrieve credentials")
}

// IsThrottleError checks if the error is provider-side rate limiting.
func IsThrottleError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "throttl") ||
		strings.Contains(msg, "rate exceeded") ||
		strings.Contains(msg, "toomanyrequests") ||
		strings.Contains(msg, "requestlimitexceeded")
}

// IsNotFound checks if the error indicates a resource that no longer exists.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, core.ErrNotFound) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "notfound") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "nosuchbucket")
}

// IsNetworkError checks if the error is a connection/network error.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "context deadline exceeded")
}

// ClassifyError determines the type of error for appropriate handling.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, dashsvc.ErrNoProvider) {
		return TypeConsistency
	}
	if IsAuthError(err) {
		return TypeAuth
	}
	if IsThrottleError(err) {
		return TypeThrottle
	}
	if IsNotFound(err) {
		return TypeNotFound
	}
	if IsNetworkError(err) {
		return TypeNetwork
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "cache") || strings.Contains(msg, "sqlite") {
		return TypeCache
	}
	return TypeInternal
}

// Pretty formats an error with a user-friendly message and actionable hints.
func Pretty(err error) string {
	if err == nil {
		return ""
	}

	errType := ClassifyError(err)
	baseMsg := err.Error()

	switch errType {
	case TypeAuth:
		return fmt.Sprintf("Authentication failed: %s\n\nHint: Check your cloud credentials:\n"+
			"  - AWS: aws sts get-caller-identity to verify, or refresh your SSO/session token\n"+
			"  - Set a profile in ~/.cloud-scout/config.yaml or CLOUD_SCOUT_AWS_PROFILE", baseMsg)

	case TypeThrottle:
		return fmt.Sprintf("Rate limited: %s\n\nHint: The provider API is throttling requests.\n"+
			"  - Wait a moment and press 'r' to retry\n"+
			"  - Raise refresh.interval_seconds in your config to poll less often", baseMsg)

	case TypeNotFound:
		return fmt.Sprintf("Not found: %s\n\nHint: The resource may have been deleted outside cloud-scout.\n"+
			"  - Press 'r' to refresh the resource list", baseMsg)

	case TypeNetwork:
		return fmt.Sprintf("Connection error: %s\n\nHint: Check your network connectivity:\n"+
			"  - Verify you can reach the provider endpoints\n"+
			"  - Check proxy/VPN settings if the provider requires them", baseMsg)

	case TypeConsistency:
		return fmt.Sprintf("Configuration error: %s\n\nHint: A listed resource belongs to a provider that is\n"+
			"no longer configured. Check the providers section of ~/.cloud-scout/config.yaml.", baseMsg)

	case TypeCache:
		return fmt.Sprintf("Cache error: %s\n\nHint: The local cache database may be corrupt.\n"+
			"  - cloud-scout cache clear to rebuild it", baseMsg)

	default:
		return fmt.Sprintf("Error: %s", baseMsg)
	}
}

// WrapWithHint wraps an error with an additional hint message.
func WrapWithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w\n\nHint: %s", err, hint)
}

// NothingFound returns a user-friendly message when a listing comes back empty.
// This is different from an error - it's a valid "empty" result.
func NothingFound(resource string) string {
	return fmt.Sprintf("No %s found matching your criteria.\n\n"+
		"This might mean:\n"+
		"  - No resources of this type exist in the configured regions\n"+
		"  - Your filter is too restrictive\n"+
		"  - The credentials in use cannot list these resources", resource)
}

// Unwrap returns the underlying error, stripping any wrapper.
func Unwrap(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}
