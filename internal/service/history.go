package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/753753753/Card-game/internal/database"
	"github.com/753753753/Card-game/internal/database/repository"
	"github.com/753753753/Card-game/internal/game"
)

// History archives finished games and summarises them. It satisfies game.Archive.
type History struct {
	Games *repository.GameRepo
	Now   func() time.Time
}

// GameSummary is one archived game with its per-player totals.
type GameSummary struct {
	ID         string
	FinishedAt time.Time
	Players    []string
	Rounds     int
	Totals     []int
	Leaders    []int
}

// Winners returns the names of the players sharing the highest total.
func (s GameSummary) Winners() []string {
	out := make([]string, 0, len(s.Leaders))
	for _, i := range s.Leaders {
		if i < len(s.Players) {
			out = append(out, s.Players[i])
		}
	}
	return out
}

// Record stores a finished game under a new id.
func (h *History) Record(ctx context.Context, players []string, final []game.RoundEntry) error {
	if h.Games == nil {
		return fmt.Errorf("history: games repo not configured")
	}
	scores := make([][]int, 0, len(final))
	for _, e := range final {
		scores = append(scores, []int(e))
	}
	g := repository.FinishedGame{
		ID:         uuid.NewString(),
		Players:    players,
		Scores:     scores,
		FinishedAt: h.now(),
	}
	if err := h.Games.Insert(ctx, g); err != nil {
		return fmt.Errorf("record game %s: %w", g.ID, err)
	}
	return nil
}

// Recent returns up to limit archived games, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]GameSummary, error) {
	if h.Games == nil {
		return nil, fmt.Errorf("history: games repo not configured")
	}
	games, err := h.Games.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	out := make([]GameSummary, 0, len(games))
	for _, g := range games {
		entries := make([]game.RoundEntry, 0, len(g.Scores))
		for _, row := range g.Scores {
			entries = append(entries, game.RoundEntry(row))
		}
		totals := game.Totals(entries, len(g.Players))
		out = append(out, GameSummary{
			ID:         g.ID,
			FinishedAt: g.FinishedAt,
			Players:    g.Players,
			Rounds:     g.Rounds(),
			Totals:     totals,
			Leaders:    game.Leaders(totals),
		})
	}
	return out, nil
}

func (h *History) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC().Truncate(time.Second)
	}
	return database.Now()
}
