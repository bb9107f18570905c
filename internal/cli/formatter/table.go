// Package formatter renders planctl output for terminals.
package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorDim    = lipgloss.Color("#928374")
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

const colGap = 2

// RenderTable aligns rows under bold headers with a dim separator line.
// Widths are measured on visible characters so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	sep := make([]string, cols)
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(sep, func(s string) string { return StyleDim.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

// Header renders an uppercase section title underlined in the dim color.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return StyleHeader.Render(upper) + "\n" + StyleDim.Render(strings.Repeat("─", lipgloss.Width(upper)))
}

// Dim renders muted text.
func Dim(text string) string {
	return StyleDim.Render(text)
}
