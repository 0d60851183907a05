package monopoly

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
)

// Snapshot captures the full game for the persistence collaborator.
func (that *Game) Snapshot(id string) *entity.Snapshot {
	snapshot := &entity.Snapshot{
		ID:        id,
		Turn:      that.Turn,
		TurnTotal: that.TurnTotal,
	}

	for _, player := range that.Players {
		record := snapshotPlayer(player)
		if that.IsActive(player) {
			snapshot.Players = append(snapshot.Players, record)
		} else {
			snapshot.Lost = append(snapshot.Lost, record)
		}
	}

	for position, space := range that.Board.Spaces {
		if space.Kind != entity.SpaceAsset {
			continue
		}
		asset := space.Asset
		record := entity.AssetSnapshot{
			Position:     position,
			Improvements: asset.Improvements,
			Mortgaged:    asset.Mortgaged,
			ExtraCharge:  asset.ExtraCharge,
		}
		if asset.Owner != nil {
			record.Owner = asset.Owner.Name
		}
		snapshot.Assets = append(snapshot.Assets, record)
	}

	for _, card := range that.Chance.Remaining {
		snapshot.Chance = append(snapshot.Chance, card.Index)
	}
	for _, card := range that.Chest.Remaining {
		snapshot.Chest = append(snapshot.Chest, card.Index)
	}
	return snapshot
}

func snapshotPlayer(player *entity.Player) entity.PlayerSnapshot {
	return entity.PlayerSnapshot{
		Name:            player.Name,
		TurnIndex:       player.TurnIndex,
		Position:        player.Position,
		Balance:         player.Balance,
		ChanceJailCards: player.ChanceJailCards,
		ChestJailCards:  player.ChestJailCards,
		InJail:          player.InJail,
		JailTurns:       player.JailTurns,
		DoublesCount:    player.DoublesCount,
	}
}

// RestoreGame rebuilds a game from a stored snapshot after validating it.
// Every inconsistency surfaces as apperror.ErrLoadValidation and no game is
// produced.
func RestoreGame(snapshot *entity.Snapshot, strategies map[string]Strategy, rng *rand.Rand) (*Game, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return nil, err
	}

	game := &Game{
		Board:      entity.NewBoard(),
		Chance:     entity.NewDeck(entity.DeckChance, rng),
		Chest:      entity.NewDeck(entity.DeckChest, rng),
		Turn:       snapshot.Turn,
		TurnTotal:  snapshot.TurnTotal,
		Phase:      PhaseAwaitingAction,
		dice:       entity.NewDice(rng),
		rng:        rng,
		strategies: strategies,
	}

	registry := entity.NewNameRegistry(reservedNames...)
	restore := func(records []entity.PlayerSnapshot, lost bool) error {
		for _, record := range records {
			if err := registry.Reserve(record.Name); err != nil {
				return fmt.Errorf("%w: %v", apperror.ErrLoadValidation, err)
			}
			if !lost {
				if _, ok := strategies[record.Name]; !ok {
					return fmt.Errorf("%w: %s", ErrMissingStrategy, record.Name)
				}
			}
			player := entity.NewPlayer(record.Name, record.TurnIndex, record.Balance)
			player.Position = record.Position
			player.ChanceJailCards = record.ChanceJailCards
			player.ChestJailCards = record.ChestJailCards
			player.InJail = record.InJail
			player.JailTurns = record.JailTurns
			player.DoublesCount = record.DoublesCount
			game.Players = append(game.Players, player)
			if lost {
				game.Lost = append(game.Lost, player)
			}
		}
		return nil
	}
	if err := restore(snapshot.Players, false); err != nil {
		return nil, err
	}
	if err := restore(snapshot.Lost, true); err != nil {
		return nil, err
	}

	sort.Slice(game.Players, func(i, j int) bool {
		return game.Players[i].TurnIndex < game.Players[j].TurnIndex
	})
	for i, player := range game.Players {
		if player.TurnIndex != i {
			return nil, fmt.Errorf("%w: turn order is not contiguous", apperror.ErrLoadValidation)
		}
	}
	if !game.IsActive(game.CurrentPlayer()) {
		return nil, fmt.Errorf("%w: current turn belongs to a lost player", apperror.ErrLoadValidation)
	}

	for _, record := range snapshot.Assets {
		asset := game.Board.Space(record.Position).Asset
		asset.Improvements = record.Improvements
		asset.Mortgaged = record.Mortgaged
		asset.ExtraCharge = record.ExtraCharge
		if record.Owner != "" {
			owner := game.FindPlayer(record.Owner)
			owner.AddAsset(asset)
		}
	}

	if err := game.Chance.Restore(snapshot.Chance); err != nil {
		return nil, fmt.Errorf("%w: chance deck: %v", apperror.ErrLoadValidation, err)
	}
	if err := game.Chest.Restore(snapshot.Chest); err != nil {
		return nil, fmt.Errorf("%w: chest deck: %v", apperror.ErrLoadValidation, err)
	}

	if game.IsOver() {
		game.Phase = PhaseGameOver
	}
	return game, nil
}

// validateSnapshot rejects structurally or semantically inconsistent
// snapshots before any game state is built from them.
func validateSnapshot(snapshot *entity.Snapshot) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", apperror.ErrLoadValidation, fmt.Sprintf(format, args...))
	}
	if snapshot == nil {
		return fail("snapshot is nil")
	}
	if len(snapshot.Players) < 1 {
		return fail("no active players")
	}
	if snapshot.Turn < 0 || snapshot.Turn >= len(snapshot.Players)+len(snapshot.Lost) {
		return fail("turn index %d out of range", snapshot.Turn)
	}
	// Drawing refreshes an exhausted deck before the next draw, so a live
	// game never holds an empty remainder.
	if len(snapshot.Chance) == 0 || len(snapshot.Chest) == 0 {
		return fail("deck remainder is empty")
	}

	active := make(map[string]bool, len(snapshot.Players))
	for _, record := range append(append([]entity.PlayerSnapshot{}, snapshot.Players...), snapshot.Lost...) {
		if record.Position < 0 || record.Position >= entity.BoardSize {
			return fail("player %s position %d out of range", record.Name, record.Position)
		}
		if record.JailTurns < 0 || record.JailTurns > 3 || record.DoublesCount < 0 || record.DoublesCount > 3 {
			return fail("player %s jail or doubles counter out of range", record.Name)
		}
		if record.ChanceJailCards < 0 || record.ChanceJailCards > 1 || record.ChestJailCards < 0 || record.ChestJailCards > 1 {
			return fail("player %s jail card count out of range", record.Name)
		}
	}
	for _, record := range snapshot.Players {
		if record.Balance < 0 {
			return fail("player %s has negative balance", record.Name)
		}
		active[record.Name] = true
	}

	board := entity.NewBoard()
	for _, record := range snapshot.Assets {
		if record.Position < 0 || record.Position >= entity.BoardSize {
			return fail("asset position %d out of range", record.Position)
		}
		space := board.Space(record.Position)
		if space.Kind != entity.SpaceAsset {
			return fail("position %d is not an asset", record.Position)
		}
		if record.Improvements < 0 || record.Improvements > entity.MaxImprovements {
			return fail("%s improvement count %d out of range", space.Name, record.Improvements)
		}
		if space.Asset.Variant != entity.VariantStandard && record.Improvements != 0 {
			return fail("%s cannot carry improvements", space.Name)
		}
		if record.Owner == "" {
			if record.Mortgaged || record.Improvements != 0 {
				return fail("bank-owned %s has mortgage or improvements", space.Name)
			}
			continue
		}
		if !active[record.Owner] {
			return fail("%s owned by unknown player %s", space.Name, record.Owner)
		}
		if record.Mortgaged && record.Improvements != 0 {
			return fail("%s is mortgaged with improvements", space.Name)
		}
	}
	return nil
}
