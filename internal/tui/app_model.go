// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/service"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// remindCutoff is the partner progress percentage at which the remind action
// is disabled: a partner this close to their goal does not need nudging.
const remindCutoff = 80.0

type screen int

const (
	screenMain screen = iota
	screenTarget
	screenPartner
)

type appModel struct {
	ctx      context.Context
	services *service.ClientServices

	state  service.EngineState
	screen screen

	bar          progress.Model
	partnerBar   progress.Model
	targetInput  textinput.Model
	partnerInput textinput.Model

	status string
	errMsg string
	width  int
}

func newAppModel(ctx context.Context, services *service.ClientServices) appModel {
	targetInput := textinput.New()
	targetInput.Placeholder = "liters, e.g. 2.5"
	targetInput.CharLimit = 6
	targetInput.Width = 12

	partnerInput := textinput.New()
	partnerInput.Placeholder = "partner id"
	partnerInput.CharLimit = 64
	partnerInput.Width = 40

	return appModel{
		ctx:          ctx,
		services:     services,
		state:        service.EngineState{Loading: true},
		bar:          progress.New(progress.WithDefaultGradient()),
		partnerBar:   progress.New(progress.WithSolidFill("10")),
		targetInput:  targetInput,
		partnerInput: partnerInput,
	}
}

func (m appModel) Init() tea.Cmd {
	return m.waitForState()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-20, 50)
		m.partnerBar.Width = min(msg.Width-24, 40)
		return m, nil

	case stateMsg:
		m.state = msg.state
		var cmd tea.Cmd
		if m.state.Notice != "" {
			m.status = m.state.Notice
			cmd = m.clearStatusLater()
		}
		return m, tea.Batch(m.waitForState(), cmd)

	case engineClosedMsg:
		return m, tea.Quit

	case intakeResultMsg:
		return m.withResult("", msg.err)
	case targetResultMsg:
		m.screen = screenMain
		return m.withResult("target updated", msg.err)
	case linkResultMsg:
		m.screen = screenMain
		return m.withResult("partner linked", msg.err)
	case unlinkResultMsg:
		return m.withResult("partner unlinked", msg.err)
	case notifyResultMsg:
		if msg.err == nil && !msg.sent {
			return m.withResult("partner has no registered devices", nil)
		}
		return m.withResult("notification sent", msg.err)
	case reminderToggledMsg:
		if msg.enabled {
			return m.withResult("reminders on", msg.err)
		}
		return m.withResult("reminders off", msg.err)
	case copiedMsg:
		return m.withResult("your id is on the clipboard", msg.err)

	case clearStatusMsg:
		m.status = ""
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case screenTarget:
		return m.handleTargetKey(msg)
	case screenPartner:
		return m.handlePartnerKey(msg)
	}

	if m.state.Loading || m.state.FatalErr != nil {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		return m, m.cmdAddIntake(0.1)
	case "2":
		return m, m.cmdAddIntake(0.25)
	case "3":
		return m, m.cmdAddIntake(0.5)
	case "t":
		m.screen = screenTarget
		m.targetInput.SetValue(strconv.FormatFloat(m.state.Self.TargetIntake, 'f', -1, 64))
		m.targetInput.Focus()
		return m, textinput.Blink
	case "p":
		if m.online() && m.state.Partner == nil {
			m.screen = screenPartner
			m.partnerInput.SetValue("")
			m.partnerInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	case "u":
		if m.state.Partner != nil {
			return m, m.cmdUnlink()
		}
		return m, nil
	case "c":
		if m.state.Identity != "" {
			return m, m.cmdCopyIdentity()
		}
		return m, nil
	case "e":
		if m.state.Partner != nil {
			return m, m.cmdNotify("encouragement")
		}
		return m, nil
	case "r":
		if m.state.Partner != nil && m.state.Partner.Progress() < remindCutoff {
			return m, m.cmdNotify("reminder")
		}
		return m, nil
	case "n":
		return m, m.cmdToggleReminder()
	case "esc":
		m.status = ""
		m.errMsg = ""
		return m, nil
	}

	return m, nil
}

func (m appModel) handleTargetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenMain
		return m, nil
	case tea.KeyEnter:
		value, err := strconv.ParseFloat(strings.TrimSpace(m.targetInput.Value()), 64)
		if err != nil {
			m.errMsg = "target must be a number"
			return m, m.clearStatusLater()
		}
		return m, m.cmdSetTarget(value)
	}

	var cmd tea.Cmd
	m.targetInput, cmd = m.targetInput.Update(msg)
	return m, cmd
}

func (m appModel) handlePartnerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenMain
		return m, nil
	case tea.KeyEnter:
		candidate := strings.TrimSpace(m.partnerInput.Value())
		if candidate == "" {
			m.errMsg = "enter the partner's id"
			return m, m.clearStatusLater()
		}
		return m, m.cmdLink(candidate)
	}

	var cmd tea.Cmd
	m.partnerInput, cmd = m.partnerInput.Update(msg)
	return m, cmd
}

func (m appModel) online() bool {
	return m.state.Mode == service.ModeOnline
}

func (m appModel) withResult(success string, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.errMsg = err.Error()
	} else if success != "" {
		m.status = success
	} else {
		return m, nil
	}
	return m, m.clearStatusLater()
}

func (m appModel) clearStatusLater() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
