package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// GameRepo handles archived games.
type GameRepo struct {
	db *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo { return &GameRepo{db: db} }

func (r *GameRepo) Insert(ctx context.Context, g FinishedGame) error {
	players, err := json.Marshal(g.Players)
	if err != nil {
		return fmt.Errorf("encode players: %w", err)
	}
	scores := g.Scores
	if scores == nil {
		scores = [][]int{}
	}
	rounds, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO finished_games(id, players, scores, rounds, finished_at)
	VALUES (?, ?, ?, ?, ?);
	`, g.ID, string(players), string(rounds), len(scores), g.FinishedAt.UTC())
	return err
}

func (r *GameRepo) Get(ctx context.Context, id string) (*FinishedGame, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, players, scores, finished_at FROM finished_games WHERE id = ?`, id)
	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return g, nil
}

// List returns the most recently finished games first. limit <= 0 means all.
func (r *GameRepo) List(ctx context.Context, limit int) ([]FinishedGame, error) {
	q := `SELECT id, players, scores, finished_at FROM finished_games ORDER BY finished_at DESC, id`
	var args []interface{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FinishedGame
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(s scanner) (*FinishedGame, error) {
	var (
		g               FinishedGame
		players, scores string
	)
	if err := s.Scan(&g.ID, &players, &scores, &g.FinishedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(players), &g.Players); err != nil {
		return nil, fmt.Errorf("decode players for %s: %w", g.ID, err)
	}
	if err := json.Unmarshal([]byte(scores), &g.Scores); err != nil {
		return nil, fmt.Errorf("decode scores for %s: %w", g.ID, err)
	}
	return &g, nil
}
