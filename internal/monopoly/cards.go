package monopoly

import (
	"fmt"

	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
)

// Repair levies per improvement level. The hotel level is charged flat.
const (
	chanceRepairPerHouse = 25
	chanceRepairPerHotel = 100
	chestRepairPerHouse  = 40
	chestRepairPerHotel  = 115
)

// Positions of the transit and utility spaces, for the "advance to
// nearest" effects.
var (
	transitPositions = []int{5, 15, 25, 35}
	utilityPositions = []int{12, 28}
)

// drawCard draws, applies the effect, then checks exhaustion and refreshes,
// in that order. The refresh withholds the get-out-of-jail entry while a
// player holds it.
func (that *Game) drawCard(deck *entity.Deck, player *entity.Player) error {
	card, err := deck.Draw()
	if err != nil {
		return fmt.Errorf("failed to draw a card: %w", err)
	}

	if deck.Variant == entity.DeckChance {
		err = that.applyChanceCard(card, player)
	} else {
		err = that.applyChestCard(card, player)
	}

	if deck.Len() == 0 {
		deck.Refresh(that.jailCardHeld(deck.Variant))
	}
	return err
}

func (that *Game) applyChanceCard(card entity.Card, player *entity.Player) error {
	switch card.Index {
	case 0:
		return that.advance(player, entity.PositionGo, true)
	case 1:
		return that.advance(player, 24, true) // Illinois Avenue
	case 2:
		return that.advance(player, 11, true) // St. Charles Place
	case 3:
		return that.advanceToNearest(player, utilityPositions)
	case 4, 5:
		return that.advanceToNearest(player, transitPositions)
	case 6:
		player.Credit(50)
	case 7:
		player.ChanceJailCards++
	case 8:
		return that.advance(player, player.Position-3, false)
	case 9:
		that.sendToJail(player)
	case 10:
		_, err := that.collectDebt(player, nil, repairLevy(player, chanceRepairPerHouse, chanceRepairPerHotel))
		return err
	case 11:
		return that.advance(player, 5, true) // Reading Railroad
	case 12:
		_, err := that.collectDebt(player, nil, 15)
		return err
	case 13:
		return that.advance(player, 39, true) // Boardwalk
	case 14:
		return that.payEachPlayer(player, 50)
	case 15:
		player.Credit(150)
	}
	return nil
}

func (that *Game) applyChestCard(card entity.Card, player *entity.Player) error {
	switch card.Index {
	case 0:
		return that.advance(player, entity.PositionGo, true)
	case 1:
		player.Credit(200)
	case 2, 11, 12:
		_, err := that.collectDebt(player, nil, 50)
		return err
	case 3:
		player.Credit(50)
	case 4:
		player.ChestJailCards++
	case 5:
		that.sendToJail(player)
	case 6:
		return that.collectFromEachPlayer(player, 50)
	case 7, 10, 16:
		player.Credit(100)
	case 8:
		player.Credit(20)
	case 9:
		return that.collectFromEachPlayer(player, 10)
	case 13:
		player.Credit(25)
	case 14:
		_, err := that.collectDebt(player, nil, repairLevy(player, chestRepairPerHouse, chestRepairPerHotel))
		return err
	case 15:
		player.Credit(10)
	}
	return nil
}

// advance relocates the player and resolves the landing like a normal move.
func (that *Game) advance(player *entity.Player, position int, collectGo bool) error {
	movement := that.forcedMovement(player, position, collectGo)
	movement.apply()
	return that.resolveLanding(player, movement)
}

// advanceToNearest moves forward to the first of the candidate positions
// and flags the asset there for a one-time extra charge when it is already
// held by an opponent.
func (that *Game) advanceToNearest(player *entity.Player, positions []int) error {
	destination := positions[0]
	for _, position := range positions {
		if position > player.Position {
			destination = position
			break
		}
	}

	asset := that.Board.Space(destination).Asset
	if asset.Owner != nil && asset.Owner != player {
		asset.ExtraCharge = true
	}
	return that.advance(player, destination, true)
}

// repairLevy totals the per-building assessment over the player's estate.
func repairLevy(player *entity.Player, perHouse, perHotel int) int {
	total := 0
	for _, asset := range player.OwnedAssets() {
		if asset.Improvements == entity.MaxImprovements {
			total += perHotel
		} else {
			total += perHouse * asset.Improvements
		}
	}
	return total
}

// payEachPlayer pays every other active player in turn, stopping when the
// payer goes bankrupt mid-way.
func (that *Game) payEachPlayer(payer *entity.Player, amount int) error {
	for _, other := range that.ActivePlayers() {
		if other == payer {
			continue
		}
		bankrupt, err := that.collectDebt(payer, other, amount)
		if err != nil || bankrupt {
			return err
		}
	}
	return nil
}

// collectFromEachPlayer charges every other active player; any of them may
// go bankrupt into the collector. An inherited estate can cascade the
// collector out mid-way, after which nobody else owes anything.
func (that *Game) collectFromEachPlayer(collector *entity.Player, amount int) error {
	for _, other := range that.ActivePlayers() {
		if other == collector {
			continue
		}
		if !that.IsActive(collector) {
			return nil
		}
		if _, err := that.collectDebt(other, collector, amount); err != nil {
			return err
		}
	}
	return nil
}
