package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"holong/internal/export"
	"holong/internal/state"
)

type settingsModel struct {
	store  *state.Store
	width  int
	height int

	prefs state.UserPreferences

	exportPicking bool
	exportCursor  int

	formActive bool
	form       *huh.Form
	formType   string // "prefs", "import", "reset"

	// Form values as pointers (survive value copies)
	formName    *string
	formTheme   *string
	formSchema  *string
	formPath    *string
	formConfirm *bool
}

func newSettingsModel(s *state.Store) settingsModel {
	name, theme, schema, path := "", "", "", ""
	confirm := false
	return settingsModel{
		store:       s,
		formName:    &name,
		formTheme:   &theme,
		formSchema:  &schema,
		formPath:    &path,
		formConfirm: &confirm,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) refresh() tea.Cmd {
	return snapshotCmd(m.store)
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case snapshotMsg:
		m.prefs = msg.st.UserPreferences
		applyColorSchema(m.prefs.ColorSchema)
		return m, nil

	case tea.KeyMsg:
		if m.exportPicking {
			return m.updateExportPicker(msg)
		}
		switch {
		case key.Matches(msg, keys.Enter):
			return m.showPrefsForm()
		case key.Matches(msg, keys.Export):
			m.exportPicking = true
			m.exportCursor = 0
			return m, nil
		case key.Matches(msg, keys.Import):
			return m.showImportForm()
		case key.Matches(msg, keys.Reset):
			return m.showResetForm()
		}
	}
	return m, nil
}

// --- Export picker ---

func (m settingsModel) updateExportPicker(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.exportCursor > 0 {
			m.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.exportCursor < 1 {
			m.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.exportPicking = false
		return m, m.doExport(m.exportCursor)
	case key.Matches(msg, keys.Back):
		m.exportPicking = false
	}
	return m, nil
}

func (m settingsModel) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		st := m.store.Snapshot()
		now := time.Now()

		var path string
		var err error
		if format == 0 {
			path, err = export.DefaultPath(now)
			if err == nil {
				err = export.WriteState(st, path)
			}
		} else {
			path, err = export.DefaultCSVPath(now)
			if err == nil {
				err = export.WriteTurnsCSV(st, path, now)
			}
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export failed: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

// --- Forms ---

func (m settingsModel) showPrefsForm() (settingsModel, tea.Cmd) {
	*m.formName = m.prefs.Name
	*m.formTheme = m.prefs.Theme
	*m.formSchema = m.prefs.ColorSchema
	if *m.formSchema == "" {
		*m.formSchema = colorSchemas[0].Name
	}
	m.formType = "prefs"

	schemaOptions := make([]huh.Option[string], len(colorSchemas))
	for i, s := range colorSchemas {
		swatch := lipgloss.NewStyle().Foreground(s.Color).Render("●")
		schemaOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", swatch, s.Name), s.Name)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(m.formName),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Light", state.ThemeLight),
					huh.NewOption("Dark", state.ThemeDark),
					huh.NewOption("System", state.ThemeSystem),
				).Value(m.formTheme),
			huh.NewSelect[string]().Title("Color schema").Options(schemaOptions...).Value(m.formSchema),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) showImportForm() (settingsModel, tea.Cmd) {
	if p, err := export.DefaultPath(time.Now()); err == nil {
		*m.formPath = p
	}
	m.formType = "import"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Import file path").Value(m.formPath),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) showResetForm() (settingsModel, tea.Cmd) {
	*m.formConfirm = false
	m.formType = "reset"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all data? Every timex and section will be deleted. Preferences are kept.").
				Value(m.formConfirm),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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

func (m settingsModel) submitForm() (settingsModel, tea.Cmd) {
	switch m.formType {
	case "prefs":
		err := m.store.UpdatePreferences(state.PreferencesPatch{
			Name:        m.formName,
			Theme:       m.formTheme,
			ColorSchema: m.formSchema,
		})
		if err != nil {
			return m, errStatus(err)
		}
		return m, tea.Batch(m.refresh(), status("Preferences saved"))

	case "import":
		path := *m.formPath
		return m, func() tea.Msg {
			st, err := export.ReadState(path)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Import failed: %v", err), isError: true}
			}
			if err := m.store.ReplaceState(st); err != nil {
				return statusMsg{text: fmt.Sprintf("Import failed: %v", err), isError: true}
			}
			return importDoneMsg{path: path}
		}

	case "reset":
		if !*m.formConfirm {
			return m, nil
		}
		// Carry the current preferences over explicitly.
		m.store.Reset(m.prefs)
		return m, tea.Batch(m.refresh(), status("All data has been reset"))
	}
	return m, nil
}

// --- Rendering ---

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	if m.exportPicking {
		return m.renderExportPicker(w)
	}

	schema := m.prefs.ColorSchema
	if schema == "" {
		schema = colorSchemas[0].Name
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(16).Render("Name"), highlightStyle.Render(m.prefs.Name)))
	rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(16).Render("Theme"), highlightStyle.Render(m.prefs.Theme)))
	rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(16).Render("Color schema"), highlightStyle.Render(schema)))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  e: export  i: import  r: reset all data"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m settingsModel) renderExportPicker(w int) string {
	formats := []string{"JSON (full backup)", "CSV (turn log)"}
	var rows []string
	rows = append(rows, titleStyle.Render("Export Format"))
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == m.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
