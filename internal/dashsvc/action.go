// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package dashsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/confighub/cloud-scout/internal/core"
)

// ErrNoProvider indicates no registered provider matches a resource's
// provider kind. This is a setup/consistency bug, reported distinctly from a
// provider failure.
var ErrNoProvider = errors.New("no provider registered for this resource")

// Dispatch routes an action to the provider owning the resource's kind.
// Linear scan, first match wins; at most one provider per kind is registered.
func (o *Orchestrator) Dispatch(ctx context.Context, resourceID string, kind core.ProviderKind, action core.Action) error {
	for _, p := range o.providers {
		if p.ProviderType() == kind {
			return p.ExecuteAction(ctx, resourceID, action)
		}
	}
	return fmt.Errorf("%w (kind %s)", ErrNoProvider, kind.Label())
}

// ExecuteAction performs an action on a resource and reconciles displayed
// state afterwards. On success it records a description of the completed
// action and triggers a full refresh; on failure it surfaces the error and
// leaves the store alone.
//
// A post-action refresh failure downgrades the message: the success text is
// replaced by a warning that names the refresh failure, but the completed
// action stays recorded. One policy, every call site.
func (o *Orchestrator) ExecuteAction(ctx context.Context, st *State, res core.Resource, action core.Action) error {
	st.StartLoading()

	if err := o.Dispatch(ctx, res.ID, res.Provider, action); err != nil {
		if errors.Is(err, ErrNoProvider) {
			st.SetError(fmt.Sprintf("configuration error: %v", err))
		} else {
			st.SetError(err.Error())
		}
		o.log.Error().Err(err).Str("resource", res.ID).Str("action", action.Label()).Msg("action failed")
		return err
	}

	desc := fmt.Sprintf("Successfully %s '%s'", action.PastTense(), res.Name)
	st.RecordAction(desc)
	st.SetSuccess(desc)
	o.log.Info().Str("resource", res.ID).Str("action", action.Label()).Msg("action executed")

	if err := o.Refresh(ctx, st); err != nil {
		st.SetError(fmt.Sprintf("%s, but refresh failed: %v", desc, err))
		return nil
	}
	st.SetSuccess(desc)
	return nil
}
