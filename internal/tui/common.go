package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"holong/internal/state"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimexes viewState = iota
	viewSections
	viewReports
	viewSettings
)

var viewNames = []string{"Timexes", "Sections", "Reports", "Settings"}

// --- Messages ---

// snapshotMsg carries a fresh deep copy of the application state.
type snapshotMsg struct {
	st state.AppState
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type importDoneMsg struct {
	path string
}

// --- Helpers ---

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errStatus(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
}

func snapshotCmd(s *state.Store) tea.Cmd {
	return func() tea.Msg { return snapshotMsg{st: s.Snapshot()} }
}

func sectionName(st state.AppState, id string) string {
	if sec := st.Section(id); sec != nil {
		return sec.Name
	}
	return id
}

func sectionColor(st state.AppState, id string) string {
	if sec := st.Section(id); sec != nil && sec.Color != "" {
		return sec.Color
	}
	return string(colorSubtle)
}
