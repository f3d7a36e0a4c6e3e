package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"holong/internal/state"
)

// reportsModel charts how tracked time is distributed across sections.
type reportsModel struct {
	store  *state.Store
	width  int
	height int

	st    state.AppState
	chart barchart.Model
}

func newReportsModel(s *state.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *reportsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m reportsModel) refresh() tea.Cmd {
	return snapshotCmd(m.store)
}

func (m reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.st = msg.st
		m.buildChart()
		return m, nil
	}
	return m, nil
}

// sectionTotal sums TotalDuration over a section's members.
func (m reportsModel) sectionTotal(sectionID string, now time.Time) (time.Duration, int) {
	var total time.Duration
	count := 0
	for _, t := range m.st.Timexes {
		if t.SectionID != sectionID {
			continue
		}
		total += state.TotalDuration(t, now)
		count++
	}
	return total, count
}

func (m *reportsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	now := time.Now()
	var bars []barchart.BarData
	for _, sec := range m.st.Sections {
		total, count := m.sectionTotal(sec.ID, now)
		if count == 0 {
			continue
		}
		hours := total.Hours()
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(sectionColor(m.st, sec.ID)))
		bars = append(bars, barchart.BarData{
			Label: sec.Name,
			Values: []barchart.BarValue{
				{Name: sec.Name, Value: hours, Style: style},
			},
		})
	}

	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "—",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m reportsModel) view() string {
	w := m.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ",
		mutedStyle.Render("tracked hours per section"),
	)

	chartView := m.chart.View()
	tableView := m.renderSummaryTable(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", chartView, "", tableView),
	)
}

func (m reportsModel) renderSummaryTable(w int) string {
	now := time.Now()

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-20s %12s %10s", "Section", "Tracked", "Timexes"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 44))))

	any := false
	for _, sec := range m.st.Sections {
		total, count := m.sectionTotal(sec.ID, now)
		if count == 0 {
			continue
		}
		any = true
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sectionColor(m.st, sec.ID))).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-18s %12s %10d",
			dot, sec.Name, state.FormatDuration(total), count,
		))
	}
	if !any {
		return mutedStyle.Render("  No timexes yet")
	}

	return strings.Join(rows, "\n")
}
