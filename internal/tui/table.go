package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/753753753/Card-game/internal/game"
)

const (
	roundColWidth  = 6
	playerColWidth = 10
)

// renderScoreTable draws the read-only grid of rounds with a totals row.
func renderScoreTable(players []string, rows []game.RoundEntry) string {
	if len(rows) == 0 {
		return mutedStyle.Render("No rounds yet.")
	}
	cols := make([]table.Column, 0, len(players)+1)
	cols = append(cols, table.Column{Title: "Round", Width: roundColWidth})
	for _, p := range players {
		cols = append(cols, table.Column{Title: ansi.Truncate(p, playerColWidth, "…"), Width: playerColWidth})
	}

	trows := make([]table.Row, 0, len(rows)+1)
	for i, entry := range rows {
		row := table.Row{strconv.Itoa(i + 1)}
		for j := range players {
			row = append(row, cell(entry, j))
		}
		trows = append(trows, row)
	}
	total := table.Row{"Total"}
	for _, v := range game.Totals(rows, len(players)) {
		total = append(total, strconv.Itoa(v))
	}
	trows = append(trows, total)

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithFocused(false),
		table.WithHeight(len(trows)+2),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(colorAccent).BorderForeground(colorBorder)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return t.View()
}

func cell(entry game.RoundEntry, i int) string {
	if i >= len(entry) {
		return ""
	}
	return strconv.Itoa(entry[i])
}
