// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package dashsvc

import (
	"fmt"
	"time"

	"github.com/confighub/cloud-scout/internal/core"
)

// ViewMode selects which screen the dashboard shows.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewList
	ViewDetail
)

// InputMode gates keystroke interpretation.
type InputMode int

const (
	InputNormal InputMode = iota
	InputFilter
)

// SuccessTTL is how long a success message stays visible before the event
// loop expires it.
const SuccessTTL = 3 * time.Second

// PendingConfirmation carries everything needed to execute a destructive
// action once the user confirms. While set, all input except confirm/cancel
// is suppressed.
type PendingConfirmation struct {
	ResourceID   string
	ResourceName string
	Action       core.Action
	Message      string
}

// State is the dashboard's application state. Apart from the resource store
// it owns exclusively, it is only ever touched from the single control loop,
// so none of it needs locking.
type State struct {
	store *Store

	tab        TabIndex
	view       ViewMode
	input      InputMode
	filterText string
	filtered   []int
	cursor     int

	actionCursor int
	confirm      *PendingConfirmation

	loading      bool
	lastRefresh  time.Time
	cacheEnabled bool

	errMsg     string
	successMsg string
	successAt  time.Time

	lastAction   string
	lastActionAt time.Time
}

// NewState returns a State over the given store, starting on the dashboard
// view of the AWS tab.
func NewState(store *Store) *State {
	return &State{
		store: store,
		tab:   TabAWS,
		view:  ViewDashboard,
	}
}

// SetCacheEnabled records whether a persistent cache backs this session, for
// the staleness display.
func (st *State) SetCacheEnabled(enabled bool) { st.cacheEnabled = enabled }

// CacheEnabled reports whether a persistent cache backs this session.
func (st *State) CacheEnabled() bool { return st.cacheEnabled }

// Store returns the shared resource store.
func (st *State) Store() *Store { return st.store }

// --- Tabs ---

// Tab returns the active tab.
func (st *State) Tab() TabIndex { return st.tab }

// NextTab cycles to the next tab.
func (st *State) NextTab() { st.tab = st.tab.Next() }

// PrevTab cycles to the previous tab.
func (st *State) PrevTab() { st.tab = st.tab.Prev() }

// SetTab jumps directly to a tab.
func (st *State) SetTab(t TabIndex) { st.tab = t }

// --- View / input modes ---

// View returns the active view mode.
func (st *State) View() ViewMode { return st.view }

// Input returns the active input mode.
func (st *State) Input() InputMode { return st.input }

// ToggleView flips between the dashboard and the resource list. From detail
// it falls back to the list.
func (st *State) ToggleView() {
	switch st.view {
	case ViewDashboard:
		st.view = ViewList
	case ViewList:
		st.view = ViewDashboard
	case ViewDetail:
		st.view = ViewList
	}
}

// EnterDetail switches to the detail view of the selected resource. No-op
// when nothing is visible. Resets the action cursor.
func (st *State) EnterDetail() {
	if len(st.filtered) == 0 {
		return
	}
	st.view = ViewDetail
	st.actionCursor = 0
}

// ExitDetail returns to the list, clearing the action cursor and any pending
// confirmation.
func (st *State) ExitDetail() {
	st.view = ViewList
	st.actionCursor = 0
	st.confirm = nil
}

// EnterFilter begins filter text entry. Only meaningful from the list view.
func (st *State) EnterFilter() { st.input = InputFilter }

// ExitFilter ends filter text entry, keeping the current text and view.
func (st *State) ExitFilter() { st.input = InputNormal }

// IsFiltering reports whether filter entry is active.
func (st *State) IsFiltering() bool { return st.input == InputFilter }

// --- Filter text ---

// FilterText returns the current filter text.
func (st *State) FilterText() string { return st.filterText }

// PushFilterRune appends a character to the filter and reapplies it.
func (st *State) PushFilterRune(r rune) {
	st.filterText += string(r)
	st.ApplyFilter()
}

// PopFilterRune removes the last character and reapplies the filter.
func (st *State) PopFilterRune() {
	if st.filterText == "" {
		return
	}
	runes := []rune(st.filterText)
	st.filterText = string(runes[:len(runes)-1])
	st.ApplyFilter()
}

// ClearFilter empties the filter text and restores the full view.
func (st *State) ClearFilter() {
	st.filterText = ""
	st.ApplyFilter()
}

// ApplyFilter recomputes the filtered view from the current snapshot and
// filter text, then clamps the cursor back into range. Must run whenever
// either input changes; a stale cursor is a correctness bug.
func (st *State) ApplyFilter() {
	st.filtered = applyFilter(st.store.Snapshot(), st.filterText)
	st.clampCursor()
}

func (st *State) clampCursor() {
	if len(st.filtered) == 0 {
		st.cursor = 0
		return
	}
	if st.cursor >= len(st.filtered) {
		st.cursor = len(st.filtered) - 1
	}
}

// Filtered returns the current filtered view: store indices in store order.
func (st *State) Filtered() []int { return st.filtered }

// --- Selection ---

// Cursor returns the selection cursor into the filtered view.
func (st *State) Cursor() int { return st.cursor }

// NextResource moves the cursor down, wrapping. No-op on an empty view.
func (st *State) NextResource() {
	if len(st.filtered) == 0 {
		return
	}
	st.cursor = (st.cursor + 1) % len(st.filtered)
}

// PrevResource moves the cursor up, wrapping. No-op on an empty view.
func (st *State) PrevResource() {
	if len(st.filtered) == 0 {
		return
	}
	if st.cursor == 0 {
		st.cursor = len(st.filtered) - 1
	} else {
		st.cursor--
	}
}

// SelectedStoreIndex maps the cursor through the filtered view back into
// store coordinates.
func (st *State) SelectedStoreIndex() (int, bool) {
	if st.cursor < 0 || st.cursor >= len(st.filtered) {
		return 0, false
	}
	return st.filtered[st.cursor], true
}

// SelectedResource returns the resource under the cursor.
func (st *State) SelectedResource() (core.Resource, bool) {
	idx, ok := st.SelectedStoreIndex()
	if !ok {
		return core.Resource{}, false
	}
	return st.store.Get(idx)
}

// --- Action selection ---

// ActionCursor returns the index into the selected resource's action list.
func (st *State) ActionCursor() int { return st.actionCursor }

// NextAction moves the action cursor down, wrapping over n actions.
func (st *State) NextAction(n int) {
	if n <= 0 {
		return
	}
	st.actionCursor = (st.actionCursor + 1) % n
}

// PrevAction moves the action cursor up, wrapping over n actions.
func (st *State) PrevAction(n int) {
	if n <= 0 {
		return
	}
	if st.actionCursor == 0 {
		st.actionCursor = n - 1
	} else {
		st.actionCursor--
	}
}

// SelectedAction returns the action under the action cursor for the selected
// resource.
func (st *State) SelectedAction() (core.Action, bool) {
	res, ok := st.SelectedResource()
	if !ok {
		return 0, false
	}
	actions := res.SupportedActions()
	if st.actionCursor < 0 || st.actionCursor >= len(actions) {
		return 0, false
	}
	return actions[st.actionCursor], true
}

// --- Confirmation ---

// Confirmation returns the pending confirmation, or nil.
func (st *State) Confirmation() *PendingConfirmation { return st.confirm }

// RequestConfirmation arms the confirmation gate for a destructive action on
// the given resource.
func (st *State) RequestConfirmation(res core.Resource, action core.Action) {
	st.confirm = &PendingConfirmation{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Action:       action,
		Message: fmt.Sprintf(
			"Are you sure you want to %s '%s'?\n\nThis action cannot be undone.\n\nPress Enter to confirm or Esc to cancel.",
			action.Label(), res.Name),
	}
}

// CancelConfirmation clears the pending confirmation without side effects.
func (st *State) CancelConfirmation() { st.confirm = nil }

// --- Loading / messages ---

// StartLoading sets the loading flag and clears prior messages.
func (st *State) StartLoading() {
	st.loading = true
	st.errMsg = ""
	st.successMsg = ""
}

// StopLoading clears the loading flag.
func (st *State) StopLoading() { st.loading = false }

// Loading reports whether a refresh or action is in flight.
func (st *State) Loading() bool { return st.loading }

// SetError records an error message, clearing any success message and the
// loading flag. An error path must never leave the UI stuck on "loading".
func (st *State) SetError(msg string) {
	st.errMsg = msg
	st.successMsg = ""
	st.loading = false
}

// SetSuccess records a success message, clearing any error and the loading
// flag. The message is stamped so the event loop can expire it.
func (st *State) SetSuccess(msg string) {
	st.successMsg = msg
	st.successAt = time.Now()
	st.errMsg = ""
	st.loading = false
}

// ClearError clears the error message.
func (st *State) ClearError() { st.errMsg = "" }

// ClearSuccess clears the success message.
func (st *State) ClearSuccess() { st.successMsg = "" }

// ClearMessages clears both messages.
func (st *State) ClearMessages() {
	st.errMsg = ""
	st.successMsg = ""
}

// Error returns the current error message, empty when none.
func (st *State) Error() string { return st.errMsg }

// Success returns the current success message, empty when none.
func (st *State) Success() string { return st.successMsg }

// ExpireSuccess clears the success message once it has been visible for
// SuccessTTL. Polled by the outer event loop on every tick; the state owns
// no timers of its own. Reports whether anything was cleared.
func (st *State) ExpireSuccess(now time.Time) bool {
	if st.successMsg == "" || now.Sub(st.successAt) < SuccessTTL {
		return false
	}
	st.successMsg = ""
	return true
}

// RecordAction keeps the description and time of the last completed action
// for the status bar.
func (st *State) RecordAction(description string) {
	st.lastAction = description
	st.lastActionAt = time.Now()
}

// LastAction returns the description and time of the last completed action.
func (st *State) LastAction() (string, time.Time) {
	return st.lastAction, st.lastActionAt
}

// --- Refresh bookkeeping ---

// LastRefresh returns when the store was last replaced; zero when never.
func (st *State) LastRefresh() time.Time { return st.lastRefresh }

// CompleteRefresh installs a fresh snapshot: store replace, filter
// recompute, and timestamp update happen as one step so no reader observes
// new resources with a stale filtered view. `at` is now for a live refresh,
// or the cache's own timestamp when hydrating.
func (st *State) CompleteRefresh(resources []core.Resource, at time.Time) {
	st.store.Replace(resources)
	st.ApplyFilter()
	st.lastRefresh = at
	st.loading = false
}

// CacheAge renders the age of the current snapshot for the status bar, e.g.
// "just now", "5m ago". Empty when no cache backs the session or nothing has
// been loaded.
func (st *State) CacheAge(now time.Time) string {
	if !st.cacheEnabled || st.lastRefresh.IsZero() {
		return ""
	}
	age := now.Sub(st.lastRefresh)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}
