// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// primaryColor is the main theme color (demand orange).
	primaryColor = lipgloss.Color("#F97316")
	// successColor indicates successful operations.
	successColor = lipgloss.Color("#22C55E") // Green
	// warningColor indicates warnings or caution messages.
	warningColor = lipgloss.Color("#EAB308") // Amber
	// errorColor indicates errors or elevated risk.
	errorColor = lipgloss.Color("#EF4444") // Red
	// infoColor indicates informational messages.
	infoColor = lipgloss.Color("#3B82F6") // Supply blue
	// subtleColor indicates less prominent UI elements.
	subtleColor = lipgloss.Color("#666666") // Gray

	// titleStyle is used for section titles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// infoStyle formats informational messages.
	infoStyle = lipgloss.NewStyle().
			Foreground(infoColor)

	// subtleStyle formats less prominent text.
	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	// boxStyle is used for bordered content boxes.
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// tableHeaderStyle is used for table headers.
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// tableCellStyle formats table cells with appropriate padding.
	tableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	BoltIcon    = "⚡"
	ChartIcon   = "📊"
	MapIcon     = "🗺️"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return infoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the bolt icon.
func FormatTitle(title string) string {
	return titleStyle.Render(BoltIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := titleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return boxStyle.Render(boxContent)
}

// RenderTable lays out rows under a header with columns padded to the widest cell.
func RenderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = tableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(strings.Join(parts, ""))
	}

	var b strings.Builder
	b.WriteString(line(header, tableHeaderStyle))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(line(row, lipgloss.NewStyle()))
	}
	return b.String()
}

// KeyValue renders an aligned "key: value" line.
func KeyValue(key string, value any) string {
	return fmt.Sprintf("%s %v", subtleStyle.Render(fmt.Sprintf("%-22s", key+":")), value)
}
