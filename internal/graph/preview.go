package graph

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	pixelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")) // contribution-graph green
)

// Preview renders the bitmap as a bordered terminal grid, one character per
// cell, with lit cells drawn as green blocks.
func (b *Bitmap) Preview() string {
	rows := make([]string, 0, Rows)
	for row := 0; row < Rows; row++ {
		var sb strings.Builder
		for col := 0; col < Cols; col++ {
			if b.cells[row][col] {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		rows = append(rows, pixelStyle.Render(sb.String()))
	}
	return previewStyle.Render(strings.Join(rows, "\n"))
}
