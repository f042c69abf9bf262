package tui

import (
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/service"
)

type stateMsg struct {
	state service.EngineState
}

type engineClosedMsg struct{}

type intakeResultMsg struct {
	err error
}

type targetResultMsg struct {
	err error
}

type linkResultMsg struct {
	err error
}

type unlinkResultMsg struct {
	err error
}

type notifyResultMsg struct {
	sent bool
	err  error
}

type reminderToggledMsg struct {
	enabled bool
	err     error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
