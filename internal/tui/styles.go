package tui

import "github.com/charmbracelet/lipgloss"

// Color schemas selectable in user preferences. The first entry is the
// fallback for an unset or unknown identifier.
var colorSchemas = []struct {
	Name  string
	Color lipgloss.Color
}{
	{"indigo", lipgloss.Color("#6C63FF")},
	{"teal", lipgloss.Color("#2EC4B6")},
	{"rose", lipgloss.Color("#FF6B6B")},
	{"amber", lipgloss.Color("#F39C12")},
	{"emerald", lipgloss.Color("#2ECC71")},
}

// Color palette
var (
	colorPrimary   = colorSchemas[0].Color
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Duration readouts
	durationStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	durationPausedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWarning)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorHighlight)
)

// applyColorSchema re-derives the accent styles from the preferred schema.
func applyColorSchema(name string) {
	c := colorSchemas[0].Color
	for _, s := range colorSchemas {
		if s.Name == name {
			c = s.Color
			break
		}
	}
	colorPrimary = c
	activeTabStyle = activeTabStyle.Foreground(c).BorderForeground(c)
	activePanelStyle = activePanelStyle.BorderForeground(c)
	selectedItemStyle = selectedItemStyle.Foreground(c)
}
