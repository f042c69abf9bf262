package tui

import (
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// waitForState blocks on the engine's event stream and converts the next
// snapshot into a message. Re-issued after every stateMsg.
func (m appModel) waitForState() tea.Cmd {
	events := m.services.Engine.Events()
	return func() tea.Msg {
		state, ok := <-events
		if !ok {
			return engineClosedMsg{}
		}
		return stateMsg{state: state}
	}
}

func (m appModel) cmdAddIntake(amount float64) tea.Cmd {
	return func() tea.Msg {
		return intakeResultMsg{err: m.services.Engine.AddIntake(m.ctx, amount)}
	}
}

func (m appModel) cmdSetTarget(target float64) tea.Cmd {
	return func() tea.Msg {
		return targetResultMsg{err: m.services.Engine.SetTarget(m.ctx, target)}
	}
}

func (m appModel) cmdLink(candidateID string) tea.Cmd {
	return func() tea.Msg {
		return linkResultMsg{err: m.services.Engine.Link(m.ctx, candidateID)}
	}
}

func (m appModel) cmdUnlink() tea.Cmd {
	return func() tea.Msg {
		return unlinkResultMsg{err: m.services.Engine.Unlink(m.ctx)}
	}
}

func (m appModel) cmdNotify(kind models.NotificationKind) tea.Cmd {
	return func() tea.Msg {
		sent, err := m.services.Engine.NotifyPartner(m.ctx, kind)
		return notifyResultMsg{sent: sent, err: err}
	}
}

func (m appModel) cmdToggleReminder() tea.Cmd {
	job := m.services.ReminderJob
	return func() tea.Msg {
		enabled := !job.Enabled()
		return reminderToggledMsg{enabled: enabled, err: job.SetEnabled(m.ctx, enabled)}
	}
}

func (m appModel) cmdCopyIdentity() tea.Cmd {
	identity := m.state.Identity
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(identity)}
	}
}
