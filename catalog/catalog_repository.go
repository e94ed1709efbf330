package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type Repository struct{ conn *pgx.Conn }

func NewRepository(conn *pgx.Conn) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) GetGameByID(ctx context.Context, id int) (Game, error) {
	sql := `
			SELECT id, title, COALESCE(platform, ''), max_players, total_copies, available_copies
			FROM gaming_area.game
			WHERE id=$1;
		`

	var game Game
	err := r.conn.QueryRow(ctx, sql, id).Scan(
		&game.ID,
		&game.Title,
		&game.Platform,
		&game.MaxPlayers,
		&game.TotalCopies,
		&game.AvailableCopies,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return Game{}, ErrGameNotFound
	}

	if err != nil {
		return Game{}, fmt.Errorf("failed to fetch game with id %v: %w", id, err)
	}

	return game, nil
}
