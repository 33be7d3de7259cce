package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
)

var (
	headerCell = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff")).Padding(0, 1)
	bodyCell   = lipgloss.NewStyle().Padding(0, 1)
)

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
	return t.Render()
}

// Chart plots series with a caption. Each series gets its own color.
func Chart(caption string, height, width int, series ...[]float64) string {
	if len(series) == 0 || len(series[0]) == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	}
	if len(series) > 1 {
		colors := []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Yellow, asciigraph.Green, asciigraph.Red, asciigraph.Magenta}
		opts = append(opts, asciigraph.SeriesColors(colors[:min(len(series), len(colors))]...))
	}
	return asciigraph.PlotMany(series, opts...)
}
