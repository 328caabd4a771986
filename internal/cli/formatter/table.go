package formatter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const colGap = 2

// RenderTable renders an aligned table with a header rule. Columns holding
// only numbers, optionally behind a ▶ current-row marker, are right-aligned.
// Other columns are left-aligned and the last one is never padded.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	numeric := make([]bool, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
		numeric[i] = true
	}
	for i := range cols {
		seen := false
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
			plain := strings.TrimLeft(strings.TrimSpace(ansi.Strip(row[i])), "▶ ")
			if plain == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(plain, 64); err != nil {
				numeric[i] = false
			}
		}
		numeric[i] = numeric[i] && seen
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			last := i == cols-1
			if style != nil {
				cell = style(cell)
			}
			switch {
			case numeric[i]:
				b.WriteString(strings.Repeat(" ", pad) + cell)
			case last:
				b.WriteString(cell)
			default:
				b.WriteString(cell + strings.Repeat(" ", pad))
			}
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	rules := make([]string, cols)
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	writeRow(rules, func(s string) string { return StyleDim.Render(s) })

	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
