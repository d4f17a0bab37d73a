package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/terraincognita07/medtrack/internal/tracker"
)

const (
	takenMark       = "✓"
	missedMark      = "·"
	dayColumnWidth  = 8
	minNameWidth    = 12
	maxNameWidth    = 28
	nameColumnTitle = "Medication"
)

var (
	weekTitleStyle = lipgloss.NewStyle().Bold(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241"))
	cellStyle      = lipgloss.NewStyle().Width(dayColumnWidth).Align(lipgloss.Center)
	takenStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240"))
)

// RenderWeek draws the seven-day grid with one row per medication.
func RenderWeek(snapshot tracker.Snapshot) string {
	nameWidth := nameColumnWidth(snapshot)
	nameStyle := lipgloss.NewStyle().Width(nameWidth + 2)

	headerCells := []string{nameStyle.Render(nameColumnTitle)}
	for _, header := range snapshot.Window.DayHeaders() {
		headerCells = append(headerCells, cellStyle.Render(fmt.Sprintf("%s %d", header.Weekday, header.Day)))
	}

	rows := []string{
		weekTitleStyle.Render(snapshot.Window.Label()),
		"",
		headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)),
	}

	if len(snapshot.Medications) == 0 {
		rows = append(rows, hintStyle.Render("No medications yet. Add one with `medtrack add <name>`."))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	dates := snapshot.Window.Dates()
	for _, medication := range snapshot.Medications {
		cells := []string{nameStyle.Render(truncateName(medication.Name, nameWidth))}
		for _, date := range dates {
			if snapshot.IsChecked(medication.ID, date) {
				cells = append(cells, cellStyle.Render(takenStyle.Render(takenMark)))
				continue
			}
			cells = append(cells, cellStyle.Render(missedStyle.Render(missedMark)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func nameColumnWidth(snapshot tracker.Snapshot) int {
	width := minNameWidth
	for _, medication := range snapshot.Medications {
		if length := utf8.RuneCountInString(medication.Name); length > width {
			width = length
		}
	}
	if width > maxNameWidth {
		return maxNameWidth
	}
	return width
}

func truncateName(name string, width int) string {
	if utf8.RuneCountInString(name) <= width {
		return name
	}
	runes := []rune(name)
	return string(runes[:width-1]) + "…"
}
