package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSnapshot struct {
	client *redis.Client
}

func NewSnapshotRepository(client *redis.Client) SnapshotRepository {
	return &dbSnapshot{
		client: client,
	}
}

func (that *dbSnapshot) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	snapshotKey := "game:" + snapshot.ID
	err = that.client.Set(ctx, snapshotKey, snapshotJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *dbSnapshot) GetByID(ctx context.Context, id string) (*entity.Snapshot, error) {
	snapshotKey := "game:" + id

	response, err := that.client.Get(ctx, snapshotKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot by id: %w", err)
	}

	var existingSnapshot entity.Snapshot
	if err = json.Unmarshal([]byte(response), &existingSnapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &existingSnapshot, nil
}

func (that *dbSnapshot) DeleteByID(ctx context.Context, id string) error {
	snapshotKey := "game:" + id

	err := that.client.Del(ctx, snapshotKey).Err()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot by id: %w", err)
	}

	return nil
}
