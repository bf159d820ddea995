package tui

import tea "github.com/charmbracelet/bubbletea"

// ProgramDispatcher delivers cache completions as messages, so they run on
// the bubbletea event loop alongside Update.
type ProgramDispatcher struct {
	Program *tea.Program
}

func (d ProgramDispatcher) Dispatch(fn func()) {
	d.Program.Send(dispatchMsg{fn: fn})
}
