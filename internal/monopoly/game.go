package monopoly

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
)

// Phase is the turn controller's current state.
type Phase string

const (
	PhaseAwaitingAction    Phase = "awaiting_action"
	PhaseInJail            Phase = "in_jail"
	PhaseAwaitingLanding   Phase = "awaiting_landing"
	PhaseAuctionInProgress Phase = "auction_in_progress"
	PhasePlayerBankrupt    Phase = "player_bankrupt"
	PhaseGameOver          Phase = "game_over"
)

var (
	ErrNotEnoughPlayers = errors.New("a game needs at least two players")
	ErrMissingStrategy  = errors.New("player has no strategy")
)

// reservedNames can never be claimed as player names.
var reservedNames = []string{"bank", "the bank"}

// Game owns the master state: whose turn it is, the shared board, both card
// decks and the active and lost player lists. It is strictly turn-sequential
// and never touched concurrently.
type Game struct {
	Board     *entity.Board
	Chance    *entity.Deck
	Chest     *entity.Deck
	Players   []*entity.Player
	Lost      []*entity.Player
	Turn      int
	TurnTotal int
	Phase     Phase

	dice       *entity.Dice
	rng        *rand.Rand
	strategies map[string]Strategy
}

// NewGame creates a fresh game. Player names are reserved through an
// explicit registry scoped to this instance, and one strategy per player
// name must be supplied.
func NewGame(names []string, startingBalance int, strategies map[string]Strategy, rng *rand.Rand) (*Game, error) {
	if len(names) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	registry := entity.NewNameRegistry(reservedNames...)
	game := &Game{
		Board:      entity.NewBoard(),
		Chance:     entity.NewDeck(entity.DeckChance, rng),
		Chest:      entity.NewDeck(entity.DeckChest, rng),
		Phase:      PhaseAwaitingAction,
		dice:       entity.NewDice(rng),
		rng:        rng,
		strategies: strategies,
	}

	for i, name := range names {
		if err := registry.Reserve(name); err != nil {
			return nil, fmt.Errorf("failed to reserve player name: %w", err)
		}
		if _, ok := strategies[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingStrategy, name)
		}
		game.Players = append(game.Players, entity.NewPlayer(name, i, startingBalance))
	}

	return game, nil
}

// CurrentPlayer is the player whose turn it is.
func (that *Game) CurrentPlayer() *entity.Player {
	return that.Players[that.Turn]
}

// IsActive reports whether the player is still in the rotation.
func (that *Game) IsActive(player *entity.Player) bool {
	for _, lost := range that.Lost {
		if lost == player {
			return false
		}
	}
	return true
}

// ActivePlayers lists the players still in the game, in turn order.
func (that *Game) ActivePlayers() []*entity.Player {
	var active []*entity.Player
	for _, player := range that.Players {
		if that.IsActive(player) {
			active = append(active, player)
		}
	}
	return active
}

// IsOver reports whether at most one active player remains.
func (that *Game) IsOver() bool {
	return len(that.ActivePlayers()) <= 1
}

// Winner is the last active player once the game is over, nil otherwise.
func (that *Game) Winner() *entity.Player {
	active := that.ActivePlayers()
	if len(active) != 1 {
		return nil
	}
	return active[0]
}

// FindPlayer resolves an active or lost player by name, or nil.
func (that *Game) FindPlayer(name string) *entity.Player {
	for _, player := range that.Players {
		if player.Name == name {
			return player
		}
	}
	return nil
}

func (that *Game) strategyFor(player *entity.Player) Strategy {
	return that.strategies[player.Name]
}

// advanceTurn moves to the next active player and counts the finished turn.
func (that *Game) advanceTurn() {
	that.TurnTotal++
	if that.IsOver() {
		that.Phase = PhaseGameOver
		return
	}
	for {
		that.Turn = (that.Turn + 1) % len(that.Players)
		if that.IsActive(that.Players[that.Turn]) {
			return
		}
	}
}

// jailCardHeld reports whether any player currently holds the deck's
// get-out-of-jail card, looking at lost players too since cards transfer.
func (that *Game) jailCardHeld(variant entity.DeckVariant) bool {
	for _, player := range that.Players {
		if variant == entity.DeckChance && player.ChanceJailCards > 0 {
			return true
		}
		if variant == entity.DeckChest && player.ChestJailCards > 0 {
			return true
		}
	}
	return false
}
