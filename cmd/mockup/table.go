// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorHeader = lipgloss.Color("#89b4fa")
	colorMuted  = lipgloss.Color("#7f849c")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// renderTable lays rows out in padded columns under a styled header.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = style.Width(widths[i]).Render(cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	var b strings.Builder
	b.WriteString(line(headers, headerStyle))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(line(row, lipgloss.NewStyle()))
		b.WriteByte('\n')
	}
	return b.String()
}
