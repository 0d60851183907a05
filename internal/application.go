package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/monopoly-engine/internal/config"
	"github.com/rocketscienceinc/monopoly-engine/internal/monopoly"
	"github.com/rocketscienceinc/monopoly-engine/internal/repository"
	"github.com/rocketscienceinc/monopoly-engine/internal/repository/storage"
	"github.com/rocketscienceinc/monopoly-engine/internal/service"
	"github.com/rocketscienceinc/monopoly-engine/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Connection.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	snapshotRepo := repository.NewSnapshotRepository(redisStorage.Connection)
	resultRepo := repository.NewResultRepository(sqliteStorage.Connection)

	seed := conf.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed)) //nolint: gosec // game dice, not crypto

	strategies := make(map[string]monopoly.Strategy, len(conf.Game.Players))
	bots := make(map[string]*service.BotStrategy, len(conf.Game.Players))

	for _, name := range conf.Game.Players {
		bot := service.NewBotStrategy(rng)
		strategies[name] = bot
		bots[name] = bot
	}

	runner := usecase.NewGameRunner(logger, snapshotRepo, resultRepo)

	var game *monopoly.Game
	if conf.Game.Resume {
		game, err = runner.Resume(ctx, conf.Game.ID, strategies, rng)
		if err != nil {
			return fmt.Errorf("could not resume game: %w", err)
		}
	} else {
		game, err = runner.NewGame(conf.Game.Players, strategies, rng)
		if err != nil {
			return fmt.Errorf("could not create game: %w", err)
		}
	}

	for _, player := range game.Players {
		if bot, ok := bots[player.Name]; ok {
			bot.Bind(player)
		}
	}

	log.Info("Starting game", "game_id", conf.Game.ID, "players", len(game.Players))

	if err = runner.Run(ctx, conf.Game.ID, game, conf.Game.MaxTurns); err != nil {
		return fmt.Errorf("game run failed: %w", err)
	}

	return nil
}
