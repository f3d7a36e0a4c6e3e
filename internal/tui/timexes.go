package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"holong/internal/state"
)

type timexesModel struct {
	store  *state.Store
	width  int
	height int

	st           state.AppState
	visible      []state.Timex
	cursor       int
	showArchived bool

	// Non-empty while the detail pane of one timex is open.
	detailID   string
	noteCursor int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit", "turn", "delete", "note", "edit_note"

	// Form field pointers (survive value copies)
	formName    *string
	formDesc    *string
	formSection *string
	formLabel   *string
	formTitle   *string
	formContent *string
	formConfirm *bool

	editingID      string
	editingTopicID string
}

func newTimexesModel(s *state.Store) timexesModel {
	name, desc, section, label, title, content := "", "", "", "", "", ""
	confirm := false
	return timexesModel{
		store:       s,
		formName:    &name,
		formDesc:    &desc,
		formSection: &section,
		formLabel:   &label,
		formTitle:   &title,
		formContent: &content,
		formConfirm: &confirm,
	}
}

func (m *timexesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m timexesModel) refresh() tea.Cmd {
	return snapshotCmd(m.store)
}

// rebuild flattens the timexes in section order for cursor navigation.
func (m *timexesModel) rebuild() {
	m.visible = m.visible[:0]
	for _, sec := range m.st.Sections {
		if sec.ID == state.SectionArchived && !m.showArchived {
			continue
		}
		for _, t := range m.st.Timexes {
			if t.SectionID == sec.ID {
				m.visible = append(m.visible, t)
			}
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	if m.detailID != "" && m.st.Timex(m.detailID) == nil {
		m.detailID = ""
	}
}

func (m timexesModel) selected() (state.Timex, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return state.Timex{}, false
	}
	return m.visible[m.cursor], true
}

func (m timexesModel) detail() (state.Timex, bool) {
	if m.detailID == "" {
		return state.Timex{}, false
	}
	if t := m.st.Timex(m.detailID); t != nil {
		return *t, true
	}
	return state.Timex{}, false
}

func (m timexesModel) update(msg tea.Msg) (timexesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case snapshotMsg:
		m.st = msg.st
		m.rebuild()
		return m, nil

	case tea.KeyMsg:
		if m.detailID != "" {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m timexesModel) updateList(msg tea.KeyMsg) (timexesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if t, ok := m.selected(); ok {
			m.detailID = t.ID
			m.noteCursor = 0
		}
	case key.Matches(msg, keys.New):
		return m.showTimexForm("new", state.Timex{})
	case key.Matches(msg, keys.Edit):
		if t, ok := m.selected(); ok {
			return m.showTimexForm("edit", t)
		}
	case key.Matches(msg, keys.Pause):
		if t, ok := m.selected(); ok {
			return m.togglePause(t)
		}
	case key.Matches(msg, keys.Turn):
		if t, ok := m.selected(); ok {
			return m.showTurnForm(t)
		}
	case key.Matches(msg, keys.EndTurn):
		if t, ok := m.selected(); ok {
			return m.endActiveTurn(t)
		}
	case key.Matches(msg, keys.Archive):
		if t, ok := m.selected(); ok {
			return m.toggleArchive(t)
		}
	case key.Matches(msg, keys.Delete):
		if t, ok := m.selected(); ok {
			return m.showDeleteForm(t)
		}
	case key.Matches(msg, keys.ShowArchived):
		m.showArchived = !m.showArchived
		m.rebuild()
	}
	return m, nil
}

func (m timexesModel) updateDetail(msg tea.KeyMsg) (timexesModel, tea.Cmd) {
	t, ok := m.detail()
	if !ok {
		m.detailID = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		m.detailID = ""
	case key.Matches(msg, keys.Up):
		if m.noteCursor > 0 {
			m.noteCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.noteCursor < len(t.NoteTopics)-1 {
			m.noteCursor++
		}
	case key.Matches(msg, keys.New):
		return m.showNoteForm("note", t, state.NoteTopic{})
	case key.Matches(msg, keys.Edit):
		if m.noteCursor < len(t.NoteTopics) {
			return m.showNoteForm("edit_note", t, t.NoteTopics[m.noteCursor])
		}
	case key.Matches(msg, keys.Delete):
		if m.noteCursor < len(t.NoteTopics) {
			topic := t.NoteTopics[m.noteCursor]
			if err := m.store.DeleteNoteTopic(t.ID, topic.ID); err != nil {
				return m, errStatus(err)
			}
			return m, tea.Batch(m.refresh(), status(fmt.Sprintf("Deleted note %q", topic.Title)))
		}
	case key.Matches(msg, keys.Pause):
		return m.togglePause(t)
	case key.Matches(msg, keys.Turn):
		return m.showTurnForm(t)
	case key.Matches(msg, keys.EndTurn):
		return m.endActiveTurn(t)
	case key.Matches(msg, keys.Archive):
		return m.toggleArchive(t)
	}
	return m, nil
}

func (m timexesModel) togglePause(t state.Timex) (timexesModel, tea.Cmd) {
	var err error
	verb := "Paused"
	if t.Paused {
		verb = "Resumed"
		err = m.store.ResumeTimex(t.ID)
	} else {
		err = m.store.PauseTimex(t.ID)
	}
	if err != nil {
		return m, errStatus(err)
	}
	return m, tea.Batch(m.refresh(), status(fmt.Sprintf("%s %q", verb, t.Name)))
}

func (m timexesModel) toggleArchive(t state.Timex) (timexesModel, tea.Cmd) {
	var err error
	verb := "Archived"
	if t.Archived {
		verb = "Unarchived"
		err = m.store.UnarchiveTimex(t.ID)
	} else {
		err = m.store.ArchiveTimex(t.ID)
	}
	if err != nil {
		return m, errStatus(err)
	}
	return m, tea.Batch(m.refresh(), status(fmt.Sprintf("%s %q", verb, t.Name)))
}

func (m timexesModel) endActiveTurn(t state.Timex) (timexesModel, tea.Cmd) {
	turn := state.ActiveTurn(t)
	if turn == nil {
		return m, status("No open turn")
	}
	if err := m.store.EndTurn(t.ID, turn.ID); err != nil {
		return m, errStatus(err)
	}
	return m, tea.Batch(m.refresh(), status(fmt.Sprintf("Ended turn on %q", t.Name)))
}

// --- Forms ---

func (m timexesModel) showTimexForm(formType string, t state.Timex) (timexesModel, tea.Cmd) {
	*m.formName = t.Name
	*m.formDesc = t.Description
	*m.formSection = t.SectionID
	if *m.formSection == "" && len(m.st.Sections) > 0 {
		*m.formSection = m.st.Sections[0].ID
	}
	m.formType = formType
	m.editingID = t.ID

	var sectionOptions []huh.Option[string]
	for _, sec := range m.st.Sections {
		if sec.ID == state.SectionArchived {
			continue
		}
		sectionOptions = append(sectionOptions, huh.NewOption(sec.Name, sec.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.formName),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewSelect[string]().Title("Section").Options(sectionOptions...).Value(m.formSection),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m timexesModel) showTurnForm(t state.Timex) (timexesModel, tea.Cmd) {
	*m.formLabel = ""
	m.formType = "turn"
	m.editingID = t.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Turn label (optional)").Value(m.formLabel),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m timexesModel) showDeleteForm(t state.Timex) (timexesModel, tea.Cmd) {
	*m.formConfirm = false
	m.formType = "delete"
	m.editingID = t.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q and all its turns and notes?", t.Name)).
				Value(m.formConfirm),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m timexesModel) showNoteForm(formType string, t state.Timex, topic state.NoteTopic) (timexesModel, tea.Cmd) {
	*m.formTitle = topic.Title
	*m.formContent = topic.Content
	m.formType = formType
	m.editingID = t.ID
	m.editingTopicID = topic.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewText().Title("Content").Value(m.formContent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m timexesModel) updateForm(msg tea.Msg) (timexesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitForm()
	}

	return m, cmd
}

func (m timexesModel) submitForm() (timexesModel, tea.Cmd) {
	switch m.formType {
	case "new":
		t, err := m.store.CreateTimex(*m.formName, *m.formDesc, *m.formSection)
		if err != nil {
			return m, errStatus(err)
		}
		return m, tea.Batch(m.refresh(), status(fmt.Sprintf("Created %q", t.Name)))

	case "edit":
		err := m.store.UpdateTimex(m.editingID, state.TimexPatch{
			Name:        m.formName,
			Description: m.formDesc,
			SectionID:   m.formSection,
		})
		if err != nil {
			return m, errStatus(err)
		}
		return m, tea.Batch(m.refresh(), status("Updated"))

	case "turn":
		if _, err := m.store.AddTurn(m.editingID, *m.formLabel); err != nil {
			return m, errStatus(err)
		}
		return m, tea.Batch(m.refresh(), status("Turn started"))

	case "delete":
		if !*m.formConfirm {
			return m, nil
		}
		if err := m.store.DeleteTimex(m.editingID); err != nil {
			return m, errStatus(err)
		}
		if m.detailID == m.editingID {
			m.detailID = ""
		}
		return m, tea.Batch(m.refresh(), status("Deleted"))

	case "note":
		topic, err := m.store.AddNoteTopic(m.editingID, *m.formTitle, *m.formContent)
		if err != nil {
			return m, errStatus(err)
		}
		return m, tea.Batch(m.refresh(), status(fmt.Sprintf("Added note %q", topic.Title)))

	case "edit_note":
		err := m.store.UpdateNoteTopic(m.editingID, m.editingTopicID, state.NoteTopicPatch{
			Title:   m.formTitle,
			Content: m.formContent,
		})
		if err != nil {
			return m, errStatus(err)
		}
		return m, tea.Batch(m.refresh(), status("Note updated"))
	}
	return m, nil
}

// --- Rendering ---

func (m timexesModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render(m.formTitleText())
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	if t, ok := m.detail(); ok {
		return m.renderDetail(t, w)
	}
	return m.renderList(w)
}

func (m timexesModel) formTitleText() string {
	switch m.formType {
	case "new":
		return "New Timex"
	case "edit":
		return "Edit Timex"
	case "turn":
		return "New Turn"
	case "delete":
		return "Delete Timex"
	case "note":
		return "New Note"
	case "edit_note":
		return "Edit Note"
	}
	return ""
}

func (m timexesModel) renderList(w int) string {
	if len(m.visible) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Timexes"),
			"",
			mutedStyle.Render("Nothing tracked yet. Press n to create a timex."),
		)
		return panelStyle.Width(w).Render(content)
	}

	now := time.Now()
	var rows []string
	idx := 0
	for _, sec := range m.st.Sections {
		if sec.ID == state.SectionArchived && !m.showArchived {
			continue
		}
		members := 0
		for _, t := range m.st.Timexes {
			if t.SectionID == sec.ID {
				members++
			}
		}
		if members == 0 {
			continue
		}

		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sectionColor(m.st, sec.ID))).Render("●")
		rows = append(rows, sectionHeaderStyle.Render(fmt.Sprintf("%s %s", dot, sec.Name)))

		for _, t := range m.st.Timexes {
			if t.SectionID != sec.ID {
				continue
			}
			cursor := "  "
			style := normalItemStyle
			if idx == m.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			rows = append(rows, style.Render(cursor+m.timexRow(t, now)))
			idx++
		}
		rows = append(rows, "")
	}

	rows = append(rows, mutedStyle.Render("  n: new  enter: detail  space: pause  t: turn  a: archive  v: archived"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m timexesModel) timexRow(t state.Timex, now time.Time) string {
	dur := state.FormatDuration(state.TotalDuration(t, now))
	var durStr string
	switch {
	case t.Paused:
		durStr = durationPausedStyle.Render(dur) + warningStyle.Render("  ⏸")
	default:
		durStr = durationStyle.Render(dur)
	}

	marker := " "
	if turn := state.ActiveTurn(t); turn != nil {
		marker = successStyle.Render("●")
	}
	return fmt.Sprintf("%s %-24s %s", marker, t.Name, durStr)
}

func (m timexesModel) renderDetail(t state.Timex, w int) string {
	now := time.Now()

	title := titleStyle.Render(t.Name)
	if t.Archived {
		title += "  " + warningStyle.Render("[archived]")
	}

	var rows []string
	rows = append(rows, title)
	if t.Description != "" {
		rows = append(rows, mutedStyle.Render(t.Description))
	}
	rows = append(rows, "")

	durStr := durationStyle.Render(state.FormatDuration(state.TotalDuration(t, now)))
	statusText := successStyle.Render("active")
	if t.Paused {
		durStr = durationPausedStyle.Render(state.FormatDuration(state.TotalDuration(t, now)))
		statusText = warningStyle.Render("paused")
	}
	rows = append(rows, fmt.Sprintf("Tracked  %s  (%s)", durStr, statusText))
	rows = append(rows, mutedStyle.Render("Started  "+state.FormatDate(t.StartTime.Time)))
	rows = append(rows, mutedStyle.Render("Section  "+sectionName(m.st, t.SectionID)))

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Turns (%d)", len(t.Turns))))
	if len(t.Turns) == 0 {
		rows = append(rows, mutedStyle.Render("  No turns recorded. Press t to start one."))
	}
	first := max(0, len(t.Turns)-6)
	for _, turn := range t.Turns[first:] {
		label := turn.Label
		if label == "" {
			label = "(unlabeled)"
		}
		dur := state.FormatDuration(state.TurnDuration(turn, now))
		marker := " "
		if turn.Open() {
			marker = successStyle.Render("●")
			dur = durationStyle.Render(dur)
		}
		rows = append(rows, fmt.Sprintf("  %s %-20s %s  %s",
			marker, label, mutedStyle.Render(state.FormatDateTime(turn.StartTime.Time)), dur))
	}

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Notes (%d)", len(t.NoteTopics))))
	if len(t.NoteTopics) == 0 {
		rows = append(rows, mutedStyle.Render("  No notes. Press n to add one."))
	}
	for i, topic := range t.NoteTopics {
		cursor := "  "
		style := normalItemStyle
		if i == m.noteCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		preview := topic.Content
		if len(preview) > 40 {
			preview = preview[:40] + "…"
		}
		preview = strings.ReplaceAll(preview, "\n", " ")
		rows = append(rows, style.Render(cursor+topic.Title)+"  "+mutedStyle.Render(preview))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  t: turn  x: end turn  space: pause  n/e/d: notes  esc: back"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
