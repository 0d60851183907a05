package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
	"github.com/rocketscienceinc/monopoly-engine/internal/monopoly"
)

var ErrNoSnapshot = errors.New("no snapshot to resume from")

type snapshotRepo interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
}

// GameRunner drives a game to completion turn by turn, persisting a
// snapshot after every turn so an interrupted game can be resumed.
type GameRunner struct {
	logger *slog.Logger

	snapshotRepo snapshotRepo
	resultRepo   resultRepo
}

func NewGameRunner(logger *slog.Logger, snapshotRepo snapshotRepo, resultRepo resultRepo) *GameRunner {
	return &GameRunner{
		logger: logger.With("component", "game_runner"),

		snapshotRepo: snapshotRepo,
		resultRepo:   resultRepo,
	}
}

// NewGame creates a fresh game for the given players.
func (that *GameRunner) NewGame(names []string, strategies map[string]monopoly.Strategy, rng *rand.Rand) (*monopoly.Game, error) {
	game, err := monopoly.NewGame(names, entity.StartingBalance, strategies, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// Resume rebuilds a game from its last saved snapshot.
func (that *GameRunner) Resume(ctx context.Context, id string, strategies map[string]monopoly.Strategy, rng *rand.Rand) (*monopoly.Game, error) {
	snapshot, err := that.snapshotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, id)
	}

	game, err := monopoly.RestoreGame(snapshot, strategies, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	that.logger.Info("resumed game from snapshot", "game_id", id, "turn_total", game.TurnTotal)

	return game, nil
}

// Run plays the game until a winner remains, the turn limit is hit or the
// context is canceled. The winner, if any, is recorded and the snapshot
// removed once the game is over.
func (that *GameRunner) Run(ctx context.Context, id string, game *monopoly.Game, maxTurns int) error {
	for !game.IsOver() {
		if maxTurns > 0 && game.TurnTotal >= maxTurns {
			that.logger.Info("turn limit reached", "game_id", id, "turn_total", game.TurnTotal)
			return that.saveSnapshot(ctx, id, game)
		}

		if err := ctx.Err(); err != nil {
			that.logger.Info("run interrupted", "game_id", id, "turn_total", game.TurnTotal)

			if saveErr := that.saveSnapshot(ctx, id, game); saveErr != nil {
				that.logger.Error("failed to save snapshot on shutdown", "error", saveErr)
			}

			return fmt.Errorf("game run canceled: %w", err)
		}

		player := game.CurrentPlayer()

		if err := game.TakeTurn(); err != nil {
			if errors.Is(err, apperror.ErrGameExited) {
				that.logger.Info("player exited the game", "game_id", id, "player", player.Name)
				return that.saveSnapshot(ctx, id, game)
			}

			return fmt.Errorf("turn %d failed: %w", game.TurnTotal, err)
		}

		that.logger.Debug("turn complete",
			"game_id", id,
			"turn_total", game.TurnTotal,
			"player", player.Name,
			"balance", player.Balance,
		)

		if err := that.saveSnapshot(ctx, id, game); err != nil {
			return err
		}
	}

	return that.finish(ctx, id, game)
}

func (that *GameRunner) saveSnapshot(ctx context.Context, id string, game *monopoly.Game) error {
	snapshot := game.Snapshot(id)

	if err := that.snapshotRepo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (that *GameRunner) finish(ctx context.Context, id string, game *monopoly.Game) error {
	winner := game.Winner()
	if winner == nil {
		return nil
	}

	that.logger.Info("game over", "game_id", id, "winner", winner.Name, "turn_total", game.TurnTotal)

	result := &entity.Result{
		GameID: id,
		Winner: winner.Name,
		Turns:  game.TurnTotal,
	}

	if that.resultRepo != nil {
		if err := that.resultRepo.Save(ctx, result); err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
	}

	if err := that.snapshotRepo.DeleteByID(ctx, id); err != nil {
		that.logger.Error("failed to delete snapshot", "game_id", id, "error", err)
	}

	return nil
}
