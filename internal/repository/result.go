package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
)

var ErrResultNotFound = errors.New("result not found")

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	Find(ctx context.Context, gameID string) (*entity.Result, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result *entity.Result) error {
	query := `INSERT INTO results (game_id, winner, turns) VALUES (?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, result.GameID, result.Winner, result.Turns)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *resultRepository) Find(ctx context.Context, gameID string) (*entity.Result, error) {
	query := `SELECT game_id, winner, turns FROM results WHERE game_id = ?`

	var result entity.Result

	err := that.conn.QueryRowContext(ctx, query, gameID).Scan(&result.GameID, &result.Winner, &result.Turns)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find result: %w", err)
	}

	return &result, nil
}
