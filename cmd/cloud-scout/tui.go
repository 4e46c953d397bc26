// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/confighub/cloud-scout/internal/cachesvc"
	"github.com/confighub/cloud-scout/internal/config"
	"github.com/confighub/cloud-scout/internal/core"
	"github.com/confighub/cloud-scout/internal/dashsvc"
)

// DashModel is the bubbletea model for the dashboard. All application state
// lives in dashsvc.State; the model owns only terminal concerns and mutates
// the state exclusively from Update.
type DashModel struct {
	st    *dashsvc.State
	orch  *dashsvc.Orchestrator
	cfg   *config.Config
	cache *cachesvc.Store
	log   zerolog.Logger

	spinner spinner.Model
	keymap  dashKeyMap
	width   int
	height  int
	ready   bool

	helpMode            bool
	needsInitialRefresh bool

	// Actual spend from providers implementing core.CostReporter, shown on
	// the dashboard alongside the per-resource estimates. Nil until loaded.
	cost *core.CostBreakdown
}

type dashKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
	Help     key.Binding
	Refresh  key.Binding
	Filter   key.Binding
	Tab      key.Binding
	PrevTab  key.Binding
	Enter    key.Binding
	Back     key.Binding
	Toggle   key.Binding
	Clear    key.Binding
	TabAWS   key.Binding
	TabGCP   key.Binding
	TabAzure key.Binding
	TabAll   key.Binding
}

func defaultDashKeyMap() dashKeyMap {
	return dashKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cloud")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev cloud")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Toggle:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard/list")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear cache")),
		TabAWS:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "AWS")),
		TabGCP:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "GCP")),
		TabAzure: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Azure")),
		TabAll:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "all clouds")),
	}
}

// Messages
type refreshDoneMsg struct {
	resources []core.Resource
	fetchedAt time.Time
	err       error
}

type actionDoneMsg struct {
	desc       string
	execErr    error
	resources  []core.Resource
	fetchedAt  time.Time
	refreshErr error
}

type cacheClearedMsg struct {
	err error
}

type costLoadedMsg struct {
	breakdown *core.CostBreakdown
	err       error
}

type tickMsg time.Time

func newDashModel(st *dashsvc.State, orch *dashsvc.Orchestrator, cfg *config.Config, log zerolog.Logger) DashModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashModel{
		st:      st,
		orch:    orch,
		cfg:     cfg,
		log:     log,
		spinner: s,
		keymap:  defaultDashKeyMap(),
	}
}

func (m DashModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tickCmd(), m.costCmd()}
	if m.needsInitialRefresh {
		m.st.StartLoading()
		cmds = append(cmds, m.refreshCmd())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd fetches from every provider off the UI goroutine. State is only
// touched when the resulting message arrives back in Update.
func (m DashModel) refreshCmd() tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		resources, err := orch.FetchAll(context.Background())
		if err != nil {
			return refreshDoneMsg{err: err}
		}
		orch.WriteThrough(resources)
		return refreshDoneMsg{resources: resources, fetchedAt: time.Now()}
	}
}

// actionCmd executes a lifecycle action and, on success, the reconciling
// refresh, reporting both outcomes in one message.
func (m DashModel) actionCmd(res core.Resource, action core.Action) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		if err := orch.Dispatch(context.Background(), res.ID, res.Provider, action); err != nil {
			return actionDoneMsg{execErr: err}
		}
		desc := fmt.Sprintf("Successfully %s '%s'", action.PastTense(), res.Name)

		resources, err := orch.FetchAll(context.Background())
		if err != nil {
			return actionDoneMsg{desc: desc, refreshErr: err}
		}
		orch.WriteThrough(resources)
		return actionDoneMsg{desc: desc, resources: resources, fetchedAt: time.Now()}
	}
}

// costCmd asks the first provider that can report actual spend for a
// breakdown. Purely informational: failures are logged, never shown.
func (m DashModel) costCmd() tea.Cmd {
	var reporter core.CostReporter
	for _, p := range m.orch.Providers() {
		if r, ok := p.(core.CostReporter); ok {
			reporter = r
			break
		}
	}
	if reporter == nil {
		return nil
	}
	return func() tea.Msg {
		breakdown, err := reporter.CostBreakdown(context.Background())
		return costLoadedMsg{breakdown: breakdown, err: err}
	}
}

func (m DashModel) clearCacheCmd() tea.Cmd {
	cache := m.cache
	return func() tea.Msg {
		return cacheClearedMsg{err: cache.ClearAll()}
	}
}

func (m DashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.FocusMsg:
		// Coming back to the terminal is a natural moment for fresh data, but
		// only when the snapshot has actually aged.
		if m.cfg.Refresh.AutoRefreshOnFocus && !m.st.Loading() {
			if last := m.st.LastRefresh(); !last.IsZero() && time.Since(last) >= time.Minute {
				m.st.StartLoading()
				return m, m.refreshCmd()
			}
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		m.st.ExpireSuccess(now)
		if m.autoRefreshDue(now) {
			m.st.StartLoading()
			return m, tea.Batch(tickCmd(), m.refreshCmd())
		}
		return m, tickCmd()

	case refreshDoneMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("refresh failed")
			m.st.SetError(msg.err.Error())
			return m, nil
		}
		m.st.CompleteRefresh(msg.resources, msg.fetchedAt)
		return m, m.costCmd()

	case costLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("cost breakdown unavailable")
			return m, nil
		}
		m.cost = msg.breakdown
		return m, nil

	case actionDoneMsg:
		return m.handleActionDone(msg), nil

	case cacheClearedMsg:
		// Cache clear failures are surfaced: the user asked for the clear and
		// silently keeping stale data would betray that.
		if msg.err != nil {
			m.st.SetError(fmt.Sprintf("failed to clear cache: %v", msg.err))
		} else {
			m.st.SetSuccess("Cache cleared")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DashModel) handleActionDone(msg actionDoneMsg) DashModel {
	switch {
	case msg.execErr != nil:
		m.log.Error().Err(msg.execErr).Msg("action failed")
		if errors.Is(msg.execErr, dashsvc.ErrNoProvider) {
			m.st.SetError(fmt.Sprintf("configuration error: %v", msg.execErr))
		} else {
			m.st.SetError(msg.execErr.Error())
		}
	case msg.refreshErr != nil:
		// The action succeeded but the reconciling refresh did not: downgrade
		// to a warning naming both facts, and keep the action on record.
		m.log.Warn().Err(msg.refreshErr).Msg("post-action refresh failed")
		m.st.RecordAction(msg.desc)
		m.st.SetError(fmt.Sprintf("%s, but refresh failed: %v", msg.desc, msg.refreshErr))
	default:
		m.st.CompleteRefresh(msg.resources, msg.fetchedAt)
		m.st.RecordAction(msg.desc)
		m.st.SetSuccess(msg.desc)
	}
	return m
}

func (m DashModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay swallows the next key.
	if m.helpMode {
		m.helpMode = false
		return m, nil
	}

	// Pending confirmation takes priority over everything else.
	if c := m.st.Confirmation(); c != nil {
		switch msg.String() {
		case "enter":
			m.st.CancelConfirmation()
			res, ok := m.findResource(c.ResourceID)
			if !ok {
				m.st.SetError(fmt.Sprintf("resource '%s' is no longer listed; refresh and retry", c.ResourceName))
				return m, nil
			}
			m.st.StartLoading()
			return m, m.actionCmd(res, c.Action)
		case "esc", "q", "n":
			m.st.CancelConfirmation()
		}
		return m, nil
	}

	// Filter entry mode captures text.
	if m.st.IsFiltering() {
		switch msg.String() {
		case "esc":
			m.st.ExitFilter()
			// Leaving with empty text still reapplies, so the view resyncs
			// with a snapshot that may have changed while typing.
			if m.st.FilterText() == "" {
				m.st.ApplyFilter()
			}
		case "enter":
			m.st.ExitFilter()
		case "backspace":
			m.st.PopFilterRune()
		default:
			if msg.Type == tea.KeyRunes {
				for _, r := range msg.Runes {
					m.st.PushFilterRune(r)
				}
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.helpMode = true

	case key.Matches(msg, m.keymap.Tab):
		m.st.NextTab()

	case key.Matches(msg, m.keymap.PrevTab):
		m.st.PrevTab()

	case key.Matches(msg, m.keymap.TabAWS):
		m.st.SetTab(dashsvc.TabAWS)
	case key.Matches(msg, m.keymap.TabGCP):
		m.st.SetTab(dashsvc.TabGCP)
	case key.Matches(msg, m.keymap.TabAzure):
		m.st.SetTab(dashsvc.TabAzure)
	case key.Matches(msg, m.keymap.TabAll):
		m.st.SetTab(dashsvc.TabAllClouds)

	case key.Matches(msg, m.keymap.Toggle):
		m.st.ToggleView()

	case key.Matches(msg, m.keymap.Filter):
		if m.st.View() == dashsvc.ViewList {
			m.st.EnterFilter()
		}

	case key.Matches(msg, m.keymap.Back):
		if m.st.View() == dashsvc.ViewDetail {
			m.st.ExitDetail()
		} else {
			// Clearing an already-empty filter still reapplies it, so the
			// view resyncs even if the snapshot changed underneath.
			m.st.ClearFilter()
		}

	case key.Matches(msg, m.keymap.Up):
		if m.st.View() == dashsvc.ViewDetail {
			m.st.PrevAction(m.selectedActionCount())
		} else {
			m.st.PrevResource()
		}

	case key.Matches(msg, m.keymap.Down):
		if m.st.View() == dashsvc.ViewDetail {
			m.st.NextAction(m.selectedActionCount())
		} else {
			m.st.NextResource()
		}

	case key.Matches(msg, m.keymap.Enter):
		return m.handleEnter()

	case key.Matches(msg, m.keymap.Refresh):
		if !m.st.Loading() {
			m.st.StartLoading()
			return m, m.refreshCmd()
		}

	case key.Matches(msg, m.keymap.Clear):
		if m.cache == nil {
			m.st.SetError("cache is not enabled")
			return m, nil
		}
		return m, m.clearCacheCmd()
	}

	return m, nil
}

func (m DashModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.st.View() {
	case dashsvc.ViewList:
		m.st.EnterDetail()

	case dashsvc.ViewDetail:
		res, ok := m.st.SelectedResource()
		if !ok {
			return m, nil
		}
		action, ok := m.st.SelectedAction()
		if !ok || action == core.ActionViewDetails {
			return m, nil
		}
		if action.IsDestructive() && m.cfg.UI.ConfirmDestructiveActions {
			m.st.RequestConfirmation(res, action)
			return m, nil
		}
		m.st.StartLoading()
		return m, m.actionCmd(res, action)
	}
	return m, nil
}

// autoRefreshDue reports whether the background refresh interval has elapsed
// since the last snapshot. Never fires while a refresh is already in flight
// or before the first one completes.
func (m DashModel) autoRefreshDue(now time.Time) bool {
	if !m.cfg.UI.AutoRefresh || m.st.Loading() {
		return false
	}
	interval := time.Duration(m.cfg.Refresh.IntervalSeconds) * time.Second
	last := m.st.LastRefresh()
	if interval <= 0 || last.IsZero() {
		return false
	}
	return now.Sub(last) >= interval
}

func (m DashModel) selectedActionCount() int {
	res, ok := m.st.SelectedResource()
	if !ok {
		return 0
	}
	return len(res.SupportedActions())
}

func (m DashModel) findResource(id string) (core.Resource, bool) {
	for _, r := range m.st.Store().Snapshot() {
		if r.ID == id {
			return r, true
		}
	}
	return core.Resource{}, false
}
