package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"holong/internal/state"
)

var sectionColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

type sectionsModel struct {
	store  *state.Store
	width  int
	height int

	st     state.AppState
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit", "delete"

	formName    *string
	formColor   *string
	formConfirm *bool

	editingID string
}

func newSectionsModel(s *state.Store) sectionsModel {
	name, color := "", sectionColors[0]
	confirm := false
	return sectionsModel{
		store:       s,
		formName:    &name,
		formColor:   &color,
		formConfirm: &confirm,
	}
}

func (m *sectionsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m sectionsModel) refresh() tea.Cmd {
	return snapshotCmd(m.store)
}

func (m sectionsModel) selected() (state.Section, bool) {
	if m.cursor < 0 || m.cursor >= len(m.st.Sections) {
		return state.Section{}, false
	}
	return m.st.Sections[m.cursor], true
}

func (m sectionsModel) update(msg tea.Msg) (sectionsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case snapshotMsg:
		m.st = msg.st
		if m.cursor >= len(m.st.Sections) {
			m.cursor = max(0, len(m.st.Sections)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.st.Sections)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showSectionForm("new", state.Section{})
		case key.Matches(msg, keys.Edit):
			if sec, ok := m.selected(); ok {
				if sec.Reserved() {
					return m, errStatus(state.ErrProtectedSection)
				}
				return m.showSectionForm("edit", sec)
			}
		case key.Matches(msg, keys.Delete):
			if sec, ok := m.selected(); ok {
				if sec.Reserved() {
					return m, errStatus(state.ErrProtectedSection)
				}
				return m.showDeleteForm(sec)
			}
		}
	}
	return m, nil
}

func (m sectionsModel) showSectionForm(formType string, sec state.Section) (sectionsModel, tea.Cmd) {
	*m.formName = sec.Name
	*m.formColor = sec.Color
	if *m.formColor == "" {
		*m.formColor = sectionColors[0]
	}
	m.formType = formType
	m.editingID = sec.ID

	colorOptions := make([]huh.Option[string], len(sectionColors))
	for i, c := range sectionColors {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("●")
		colorOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", swatch, c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Section Name").Value(m.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m sectionsModel) showDeleteForm(sec state.Section) (sectionsModel, tea.Cmd) {
	*m.formConfirm = false
	m.formType = "delete"
	m.editingID = sec.ID

	members := m.memberCount(sec.ID)
	title := fmt.Sprintf("Delete %q?", sec.Name)
	if members > 0 {
		title = fmt.Sprintf("Delete %q? Its %d timexes move to General.", sec.Name, members)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Value(m.formConfirm),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m sectionsModel) updateForm(msg tea.Msg) (sectionsModel, tea.Cmd) {
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

func (m sectionsModel) submitForm() (sectionsModel, tea.Cmd) {
	switch m.formType {
	case "new":
		sec, err := m.store.AddSection(*m.formName, *m.formColor)
		if err != nil {
			return m, errStatus(err)
		}
		return m, tea.Batch(m.refresh(), status(fmt.Sprintf("Created section %q", sec.Name)))

	case "edit":
		err := m.store.UpdateSection(m.editingID, state.SectionPatch{
			Name:  m.formName,
			Color: m.formColor,
		})
		if err != nil {
			return m, errStatus(err)
		}
		return m, tea.Batch(m.refresh(), status("Section updated"))

	case "delete":
		if !*m.formConfirm {
			return m, nil
		}
		if err := m.store.DeleteSection(m.editingID); err != nil {
			return m, errStatus(err)
		}
		return m, tea.Batch(m.refresh(), status("Section deleted"))
	}
	return m, nil
}

func (m sectionsModel) memberCount(sectionID string) int {
	n := 0
	for _, t := range m.st.Timexes {
		if t.SectionID == sectionID {
			n++
		}
	}
	return n
}

func (m sectionsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Section")
		if m.formType == "edit" {
			title = titleStyle.Render("Edit Section")
		} else if m.formType == "delete" {
			title = titleStyle.Render("Delete Section")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Sections")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, sec := range m.st.Sections {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sectionColor(m.st, sec.ID))).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		suffix := fmt.Sprintf("%d timexes", m.memberCount(sec.ID))
		if sec.Reserved() {
			suffix += "  " + mutedStyle.Render("[reserved]")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-20s", cursor, dot, sec.Name))+" "+mutedStyle.Render(suffix))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
