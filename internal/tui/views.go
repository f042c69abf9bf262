// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package tui

import (
	"fmt"
	"strings"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/service"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

const chartBarWidth = 24

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Stay D Hidrated"))
	b.WriteString("\n\n")

	if m.state.Mode == service.ModeOffline && !m.state.Loading {
		b.WriteString(bannerStyle.Render("offline mode — remote sync is not configured; progress stays on this device"))
		b.WriteString("\n\n")
	}

	switch {
	case m.state.FatalErr != nil:
		b.WriteString(errorStyle.Render("something went wrong: " + m.state.FatalErr.Error()))
		b.WriteString("\n\n" + helpStyle.Render("q quit"))
		return appStyle.Render(b.String())
	case m.state.Loading:
		b.WriteString("loading your progress...")
		return appStyle.Render(b.String())
	}

	switch m.screen {
	case screenTarget:
		b.WriteString("Daily goal (liters):\n\n")
		b.WriteString(m.targetInput.View())
		b.WriteString("\n\n" + helpStyle.Render("enter save · esc cancel"))
	case screenPartner:
		b.WriteString("Link a hydration partner by id:\n\n")
		b.WriteString(m.partnerInput.View())
		b.WriteString("\n\n" + helpStyle.Render("enter link · esc cancel"))
	default:
		m.renderMain(&b)
	}

	if m.errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.errMsg))
	} else if m.status != "" {
		b.WriteString("\n\n" + noticeStyle.Render(m.status))
	}

	return appStyle.Render(b.String())
}

func (m appModel) renderMain(b *strings.Builder) {
	self := m.state.Self

	b.WriteString(m.bar.ViewAs(self.Progress() / 100))
	b.WriteString(fmt.Sprintf("\n%.2f / %.2f L (%.0f%%)", self.CurrentIntake, self.TargetIntake, self.Progress()))
	if self.GoalReached() {
		b.WriteString("  " + successStyle.Render("goal reached!"))
	}
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Last 7 days"))
	b.WriteString("\n")
	b.WriteString(renderChart(m.state.HistoryWindow, self.TargetIntake))
	b.WriteString("\n")

	b.WriteString(m.renderPartnerPanel())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(helpMain(m.state)))
}

// renderChart draws one row per day, bar length scaled against the daily
// target so a full bar means goal reached.
func renderChart(window []models.HistoryEntry, target float64) string {
	if len(window) == 0 {
		return helpStyle.Render("  no history yet — drink some water")
	}

	var b strings.Builder
	for _, entry := range window {
		filled := 0
		if target > 0 {
			filled = int(entry.Amount / target * chartBarWidth)
		}
		if filled > chartBarWidth {
			filled = chartBarWidth
		}

		day := entry.Date
		if len(day) == len(models.DateLayout) {
			day = day[5:] // MM-DD
		}
		bar := chartBarStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", chartBarWidth-filled)
		b.WriteString(fmt.Sprintf("  %s  %s  %.2f L\n", day, bar, entry.Amount))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) renderPartnerPanel() string {
	if !m.online() {
		return ""
	}

	if m.state.Partner == nil {
		return panelStyle.Render(
			"No partner linked.\n" +
				helpStyle.Render("p link by id · c copy your id"))
	}

	partner := m.state.Partner
	remindHint := "r remind"
	if partner.Progress() >= remindCutoff {
		remindHint = "remind unavailable (partner is nearly there)"
	}

	return panelStyle.Render(fmt.Sprintf(
		"Partner %s\n%s %.2f / %.2f L (%.0f%%)\n%s",
		partner.ID,
		m.partnerBar.ViewAs(partner.Progress()/100),
		partner.Current, partner.Target, partner.Progress(),
		helpStyle.Render("e encourage · "+remindHint+" · u unlink"),
	))
}

func helpMain(state service.EngineState) string {
	parts := []string{"1/2/3 drink 0.1/0.25/0.5 L", "t goal", "n reminders"}
	if state.Mode == service.ModeOnline {
		parts = append(parts, "c copy id")
		if state.Partner == nil {
			parts = append(parts, "p link partner")
		}
	}
	parts = append(parts, "q quit")
	return strings.Join(parts, " · ")
}
