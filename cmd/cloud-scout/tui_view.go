// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/confighub/cloud-scout/internal/core"
	"github.com/confighub/cloud-scout/internal/dashsvc"
)

var (
	scTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	scTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("240"))

	scActiveTabStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Bold(true).
				Foreground(lipgloss.Color("205")).
				Underline(true)

	scHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	scSelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	scRunningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	scStoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	scPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	scMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	scErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	scSuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

	scBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	scConfirmStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3)

	scHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	scCostPrinter = message.NewPrinter(language.English)
)

func (m DashModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.helpMode {
		return m.renderHelp()
	}
	if c := m.st.Confirmation(); c != nil {
		return m.renderConfirmation(c)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// The render path never blocks on the store: if a refresh holds the write
	// lock, show the loading frame and let the next tick repaint.
	snapshot, ok := m.st.Store().TrySnapshot()
	if !ok {
		b.WriteString(scMutedStyle.Render(fmt.Sprintf("\n  %s Loading resources...\n", m.spinner.View())))
		b.WriteString("\n")
		b.WriteString(m.renderStatusBar())
		return b.String()
	}

	switch m.st.View() {
	case dashsvc.ViewDashboard:
		b.WriteString(m.renderDashboard(snapshot))
	case dashsvc.ViewList:
		b.WriteString(m.renderList(snapshot))
	case dashsvc.ViewDetail:
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m DashModel) renderHeader() string {
	title := scTitleStyle.Render("cloud-scout")

	var tabs []string
	for _, t := range dashsvc.AllTabs() {
		if t == m.st.Tab() {
			tabs = append(tabs, scActiveTabStyle.Render(t.Label()))
		} else {
			tabs = append(tabs, scTabStyle.Render(t.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Join(tabs, "|"))
}

// renderDashboard shows aggregate counts and estimated spend for the active
// tab.
func (m DashModel) renderDashboard(snapshot []core.Resource) string {
	byType := map[core.ResourceType]int{}
	byState := map[core.ResourceState]int{}
	byProvider := map[core.ProviderKind]int{}
	var total float64
	var costed, visible int

	for _, r := range snapshot {
		if !m.st.Tab().Includes(r.Provider) {
			continue
		}
		visible++
		byType[r.Type]++
		byState[r.State]++
		byProvider[r.Provider]++
		if r.MonthlyCost != nil {
			total += *r.MonthlyCost
			costed++
		}
	}

	var b strings.Builder
	b.WriteString(scHeaderStyle.Render(fmt.Sprintf("  Overview · %s", m.st.Tab().Label())))
	b.WriteString("\n\n")

	if visible == 0 {
		b.WriteString(scMutedStyle.Render("  No resources. Press 'r' to refresh.\n"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  Resources: %d\n\n", visible))

	b.WriteString("  By type:\n")
	for _, t := range sortedTypeKeys(byType) {
		b.WriteString(fmt.Sprintf("    %-14s %d\n", t.Label(), byType[t]))
	}
	b.WriteString("\n  By state:\n")
	for _, s := range sortedStateKeys(byState) {
		label := fmt.Sprintf("    %-14s %d", s.Label(), byState[s])
		b.WriteString(stateStyle(s).Render(label))
		b.WriteString("\n")
	}
	if m.st.Tab() == dashsvc.TabAllClouds {
		b.WriteString("\n  By provider:\n")
		for _, p := range sortedProviderKeys(byProvider) {
			b.WriteString(fmt.Sprintf("    %-14s %d\n", p.Label(), byProvider[p]))
		}
	}

	b.WriteString("\n")
	if costed > 0 {
		b.WriteString(scHeaderStyle.Render(
			scCostPrinter.Sprintf("  Est. monthly cost: $%.2f", total)))
		if costed < visible {
			b.WriteString(scMutedStyle.Render(
				fmt.Sprintf(" (%d of %d resources priced)", costed, visible)))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.renderCostBreakdown())
	return b.String()
}

// renderCostBreakdown shows actual spend when a provider reports it, top
// services first.
func (m DashModel) renderCostBreakdown() string {
	if m.cost == nil {
		return ""
	}
	var b strings.Builder
	trend := ""
	switch {
	case m.cost.TrendPercent > 0:
		trend = scStoppedStyle.Render(fmt.Sprintf(" (▲ %.1f%%)", m.cost.TrendPercent))
	case m.cost.TrendPercent < 0:
		trend = scRunningStyle.Render(fmt.Sprintf(" (▼ %.1f%%)", -m.cost.TrendPercent))
	}
	b.WriteString(scHeaderStyle.Render(
		scCostPrinter.Sprintf("  Actual spend (30d): $%.2f", m.cost.Total)))
	b.WriteString(trend)
	b.WriteString("\n")

	type svcCost struct {
		name string
		cost float64
	}
	services := make([]svcCost, 0, len(m.cost.ByService))
	for name, c := range m.cost.ByService {
		services = append(services, svcCost{name, c})
	}
	sort.Slice(services, func(i, j int) bool { return services[i].cost > services[j].cost })
	if len(services) > 5 {
		services = services[:5]
	}
	for _, s := range services {
		b.WriteString(scMutedStyle.Render(
			scCostPrinter.Sprintf("    %-30s $%.2f\n", truncate(s.name, 30), s.cost)))
	}
	return b.String()
}

func (m DashModel) renderList(snapshot []core.Resource) string {
	visible := dashsvc.VisibleUnderTab(snapshot, m.st.Filtered(), m.st.Tab())
	selected, hasSelection := m.st.SelectedStoreIndex()

	var b strings.Builder
	if m.st.IsFiltering() {
		b.WriteString(fmt.Sprintf("  Filter: %s█\n\n", m.st.FilterText()))
	} else if m.st.FilterText() != "" {
		b.WriteString(scMutedStyle.Render(
			fmt.Sprintf("  Filter: %s (esc to clear)\n\n", m.st.FilterText())))
	}

	if len(visible) == 0 {
		if m.st.FilterText() != "" {
			b.WriteString(scMutedStyle.Render("  No resources match the filter.\n"))
		} else {
			b.WriteString(scMutedStyle.Render("  No resources. Press 'r' to refresh.\n"))
		}
		return b.String()
	}

	header := fmt.Sprintf("  %-28s %-14s %-12s %-15s %10s", "NAME", "TYPE", "STATE", "REGION", "COST/MO")
	b.WriteString(scHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, idx := range visible {
		r := snapshot[idx]
		cost := "-"
		if r.MonthlyCost != nil {
			cost = scCostPrinter.Sprintf("$%.2f", *r.MonthlyCost)
		}
		line := fmt.Sprintf("  %-28s %-14s %-12s %-15s %10s",
			truncate(r.Name, 28), r.Type.Label(), r.State.Label(), r.Region, cost)
		if hasSelection && idx == selected {
			b.WriteString(scSelectedStyle.Render("▸" + line[1:]))
		} else {
			b.WriteString(stateStyle(r.State).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m DashModel) renderDetail() string {
	res, ok := m.st.SelectedResource()
	if !ok {
		return scMutedStyle.Render("  Nothing selected.\n")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", scHeaderStyle.Render("  "+res.Name)))
	b.WriteString(fmt.Sprintf("  ID:       %s\n", res.ID))
	b.WriteString(fmt.Sprintf("  Type:     %s\n", res.Type.Label()))
	b.WriteString(fmt.Sprintf("  Provider: %s\n", res.Provider.Label()))
	b.WriteString(fmt.Sprintf("  Region:   %s\n", res.Region))
	b.WriteString("  State:    ")
	b.WriteString(stateStyle(res.State).Render(res.State.Label()))
	b.WriteString("\n")
	if res.MonthlyCost != nil {
		b.WriteString(scCostPrinter.Sprintf("  Cost:     $%.2f/month\n", *res.MonthlyCost))
	}
	if res.CreatedAt != nil {
		b.WriteString(fmt.Sprintf("  Created:  %s\n", res.CreatedAt.Format("2006-01-02 15:04")))
	}

	if len(res.Tags) > 0 {
		b.WriteString("\n  Tags:\n")
		for _, k := range sortedStringKeys(res.Tags) {
			b.WriteString(scMutedStyle.Render(fmt.Sprintf("    %s: %s\n", k, res.Tags[k])))
		}
	}

	b.WriteString("\n  Actions:\n")
	for i, action := range res.SupportedActions() {
		line := fmt.Sprintf("   %s", action.Label())
		if i == m.st.ActionCursor() {
			line = scSelectedStyle.Render(fmt.Sprintf("▸  %s", action.Label()))
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString(scMutedStyle.Render("\n  enter execute · esc back\n"))
	return b.String()
}

func (m DashModel) renderConfirmation(c *dashsvc.PendingConfirmation) string {
	box := scConfirmStyle.Render(c.Message)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m DashModel) renderHelp() string {
	help := `cloud-scout keys

  q          quit
  tab        next cloud tab        shift+tab  previous cloud tab
  1-4        jump to AWS/GCP/Azure/All Clouds
  d          toggle dashboard/list
  /          filter resources (list view)
  esc        clear filter / back / cancel
  ↑/k ↓/j    navigate
  enter      open detail / run action
  r          refresh from providers
  c          clear the local cache
  ?          this help

press any key to close`
	box := scBoxStyle.Render(help)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m DashModel) renderStatusBar() string {
	var parts []string

	switch {
	case m.st.Loading():
		parts = append(parts, fmt.Sprintf("%s refreshing", m.spinner.View()))
	case m.st.Error() != "":
		parts = append(parts, scErrorStyle.Render("✗ "+m.st.Error()))
	case m.st.Success() != "":
		parts = append(parts, scSuccessStyle.Render("✓ "+m.st.Success()))
	}

	if age := m.st.CacheAge(time.Now()); age != "" {
		parts = append(parts, scMutedStyle.Render("data: "+age))
	}
	if desc, at := m.st.LastAction(); desc != "" {
		parts = append(parts, scMutedStyle.Render(
			fmt.Sprintf("last action %s", at.Format("15:04:05"))))
	}

	hints := scHelpStyle.Render("q quit · d view · / filter · r refresh · ? help")
	if len(parts) == 0 {
		return " " + hints
	}
	return " " + strings.Join(parts, "  ") + "\n " + hints
}

func stateStyle(s core.ResourceState) lipgloss.Style {
	switch s {
	case core.StateRunning:
		return scRunningStyle
	case core.StateStopped, core.StateTerminated, core.StateError:
		return scStoppedStyle
	case core.StatePending, core.StateStarting, core.StateStopping:
		return scPendingStyle
	default:
		return scMutedStyle
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func sortedTypeKeys(m map[core.ResourceType]int) []core.ResourceType {
	keys := make([]core.ResourceType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedStateKeys(m map[core.ResourceState]int) []core.ResourceState {
	keys := make([]core.ResourceState, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedProviderKeys(m map[core.ProviderKind]int) []core.ProviderKind {
	keys := make([]core.ProviderKind, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
