package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/753753753/Card-game/internal/game"
)

const cardNameWidth = 12

func (a *App) View() string {
	var body string
	if res, err := a.tracker.Result(); err == nil {
		body = a.viewResult(res)
	} else {
		body = a.viewEditing()
	}
	if a.width > 0 {
		body = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, body)
	}
	return body
}

func (a *App) viewEditing() string {
	players := a.tracker.Players()
	hands := a.tracker.Hands()

	cards := make([]string, 0, len(players))
	for i, p := range players {
		hint := mutedStyle.Render(fmt.Sprintf("0-%d", a.maxHand))
		if v, ok := hands[i].Int(); ok && v > a.maxHand {
			hint = warnStyle.Render(fmt.Sprintf("above %d", a.maxHand))
		}
		content := lipgloss.JoinVertical(lipgloss.Center,
			labelStyle.Render(ansi.Truncate(p, cardNameWidth, "…")),
			a.inputs[i].View(),
			hint,
		)
		style := cardStyle
		if i == a.focus {
			style = focusedCardStyle
		}
		cards = append(cards, style.Width(cardNameWidth+2).Render(content))
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Round %d", a.tracker.Round())),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		helpLine(a.keys.editingHelp()),
		"",
		renderScoreTable(players, a.tracker.Scores()),
	}
	if s := a.statusLine(); s != "" {
		lines = append(lines, "", s)
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewResult(res *game.Result) string {
	players := res.Players()
	totals := res.Totals()
	leading := make(map[int]bool)
	for _, i := range res.Leaders() {
		leading[i] = true
	}

	var sb strings.Builder
	sb.WriteString(labelStyle.Render(fmt.Sprintf("%-14s %6s", "Player", "Total")))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(strings.Repeat("─", 23)))
	for i, p := range players {
		name := fmt.Sprintf("%-14s", ansi.Truncate(p, 14, "…"))
		total := fmt.Sprintf("%6d", totals[i])
		line := "  " + name + " " + total
		if leading[i] {
			line = leaderStyle.Render("★ " + name + " " + total)
		}
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	lines := []string{
		titleStyle.Render("Final Scores"),
		"",
		boxStyle.Render(sb.String()),
		"",
		renderScoreTable(players, res.FinalScores()),
		"",
		helpLine(a.keys.resultHelp()),
	}
	if s := a.statusLine(); s != "" {
		lines = append(lines, "", s)
	}
	return strings.Join(lines, "\n")
}

func (a *App) statusLine() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return errorStyle.Render(a.status)
	}
	return successStyle.Render(a.status)
}
