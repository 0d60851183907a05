package monopoly

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
)

// maxManagementActions caps how many builds a strategy may queue before the
// roll, so a looping strategy cannot stall the turn forever.
const maxManagementActions = 16

// TakeTurn drives one complete turn of the current player: the pre-roll
// management phase, rolling (repeatedly on doubles), landing resolution and
// any bankruptcy it cascades into, then rotation to the next active player.
// It returns apperror.ErrGameExited when a strategy abandoned the game and
// apperror.ErrGameFinished when called on a decided game.
func (that *Game) TakeTurn() error {
	if that.IsOver() {
		that.Phase = PhaseGameOver
		return apperror.ErrGameFinished
	}

	player := that.CurrentPlayer()
	that.Phase = PhaseAwaitingAction

	if err := that.managementPhase(player); err != nil {
		return err
	}
	if err := that.movementPhase(player); err != nil {
		return err
	}

	player.DoublesCount = 0
	that.advanceTurn()
	return nil
}

// managementPhase lets the player build and propose one trade before moving.
func (that *Game) managementPhase(player *entity.Player) error {
	strategy := that.strategyFor(player)

	for i := 0; i < maxManagementActions; i++ {
		order, err := strategy.DecideImprovement(player)
		if err != nil {
			if errors.Is(err, apperror.ErrGameExited) {
				return err
			}
			break
		}
		if order == nil || order.Asset == nil {
			break
		}
		// An order on someone else's asset is as unlawful as any other
		// malformed build order and must never reach Improve.
		if order.Asset.Owner != player {
			break
		}
		cost, err := order.Asset.Improve(order.Count)
		if err != nil {
			break
		}
		if err = player.Pay(cost); err != nil {
			return err
		}
	}

	offer, err := strategy.DecideTrade(player)
	if err != nil {
		if errors.Is(err, apperror.ErrGameExited) {
			return err
		}
		return nil
	}
	if offer == nil {
		return nil
	}
	if err = that.ApplyTrade(offer); err != nil && errors.Is(err, apperror.ErrGameExited) {
		return err
	}
	return nil
}

// movementPhase rolls and resolves, repeating while the player keeps
// rolling doubles. Three consecutive doubles send the player to jail
// instead of a third move.
func (that *Game) movementPhase(player *entity.Player) error {
	for {
		var movement *Movement

		if player.InJail {
			that.Phase = PhaseInJail
			moved, jailMovement, err := that.resolveJail(player)
			if err != nil {
				return err
			}
			if !moved {
				return nil
			}
			movement = jailMovement
		} else {
			movement = that.rollMovement(player)
			if movement.Doubles {
				player.DoublesCount++
				if player.DoublesCount == 3 {
					that.sendToJail(player)
					return nil
				}
			}
		}

		movement.apply()
		if err := that.resolveLanding(player, movement); err != nil {
			return err
		}

		if !that.IsActive(player) || player.InJail || that.IsOver() {
			return nil
		}
		if !movement.Doubles {
			return nil
		}
	}
}

// resolveJail plays one jail turn. It reports whether the player gets to
// move, and with which movement.
func (that *Game) resolveJail(player *entity.Player) (bool, *Movement, error) {
	player.JailTurns++

	// Served the full sentence: the fine is compulsory and the roll follows.
	if player.JailTurns >= 3 {
		bankrupt, err := that.collectDebt(player, nil, entity.JailFine)
		if err != nil || bankrupt {
			return false, nil, err
		}
		that.releaseFromJail(player)
		return true, that.rollMovement(player), nil
	}

	strategy := that.strategyFor(player)
	for retries := 0; retries <= maxDecisionRetries; retries++ {
		action, err := strategy.DecideJailAction(player)
		if err != nil {
			if errors.Is(err, apperror.ErrGameExited) {
				return false, nil, err
			}
			continue
		}

		switch action {
		case JailPay:
			bankrupt, err := that.collectDebt(player, nil, entity.JailFine)
			if err != nil || bankrupt {
				return false, nil, err
			}
			that.releaseFromJail(player)
			return true, that.rollMovement(player), nil

		case JailUseCard:
			if !player.HasJailCard() {
				continue
			}
			if player.ChanceJailCards > 0 {
				player.ChanceJailCards--
			} else {
				player.ChestJailCards--
			}
			that.releaseFromJail(player)
			return true, that.rollMovement(player), nil

		case JailRoll:
			roll, doubles := that.dice.Roll()
			if !doubles {
				return false, nil, nil
			}
			that.releaseFromJail(player)
			position := (player.Position + roll) % entity.BoardSize
			return true, &Movement{
				Player:   player,
				Roll:     roll,
				Position: position,
				Space:    that.Board.Space(position),
			}, nil
		}
	}

	// A strategy that cannot pick a lawful action stays put this turn.
	return false, nil, nil
}

func (that *Game) releaseFromJail(player *entity.Player) {
	player.InJail = false
	player.JailTurns = 0
	player.DoublesCount = 0
}

func (that *Game) sendToJail(player *entity.Player) {
	player.Position = entity.PositionJail
	player.InJail = true
	player.JailTurns = 0
	player.DoublesCount = 0
}

// resolveLanding dispatches the effect of the space the player stopped on.
func (that *Game) resolveLanding(player *entity.Player, movement *Movement) error {
	that.Phase = PhaseAwaitingLanding

	switch movement.Space.Kind {
	case entity.SpaceAsset:
		return that.resolveAssetLanding(player, movement.Space.Asset)
	case entity.SpaceIncomeTax:
		_, err := that.collectDebt(player, nil, entity.IncomeTaxFee)
		return err
	case entity.SpaceLuxuryTax:
		_, err := that.collectDebt(player, nil, entity.LuxuryTaxFee)
		return err
	case entity.SpaceChance:
		return that.drawCard(that.Chance, player)
	case entity.SpaceChest:
		return that.drawCard(that.Chest, player)
	case entity.SpaceGoToJail:
		that.sendToJail(player)
		return nil
	default:
		// Go, Free Parking and a mere visit to Jail have no effect.
		return nil
	}
}

// resolveAssetLanding handles the buy-or-auction decision on unowned assets
// and rent on owned ones.
func (that *Game) resolveAssetLanding(player *entity.Player, asset *entity.Asset) error {
	if asset.Owner == nil {
		return that.offerAsset(player, asset)
	}
	if asset.Owner == player {
		return nil
	}
	if asset.Mortgaged {
		return nil
	}

	utilityRoll := 0
	if asset.Variant == entity.VariantUtility {
		utilityRoll, _ = that.dice.Roll()
	}
	rent := asset.Rent(utilityRoll)

	_, err := that.collectDebt(player, asset.Owner, rent)
	return err
}

// offerAsset asks the lander to buy at face price and falls back to an
// auction among every active player on decline.
func (that *Game) offerAsset(player *entity.Player, asset *entity.Asset) error {
	strategy := that.strategyFor(player)

	wants := false
	for retries := 0; retries <= maxDecisionRetries; retries++ {
		decided, err := strategy.DecideBuy(asset)
		if err != nil {
			if errors.Is(err, apperror.ErrGameExited) {
				return err
			}
			continue
		}
		wants = decided
		break
	}

	if wants {
		return that.settleAcquisition(player, asset, asset.Price)
	}

	winner, bid, err := that.RunAuction(asset, that.ActivePlayers())
	if err != nil {
		return err
	}
	if winner == nil {
		return nil
	}
	return that.settleAcquisition(winner, asset, bid)
}

// settleAcquisition runs Acquire and converts an insolvency into the
// buyer's bankruptcy instead of propagating it.
func (that *Game) settleAcquisition(buyer *entity.Player, asset *entity.Asset, price int) error {
	err := that.Acquire(buyer, asset, price)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperror.ErrGameExited):
		return err
	case errors.Is(err, apperror.ErrInsolvent):
		return that.finalizeBankruptcy(buyer, nil)
	default:
		return fmt.Errorf("failed to settle acquisition: %w", err)
	}
}

// collectDebt debits with the full liquidation protocol and finalizes the
// debtor's bankruptcy when it fails. It reports whether the debtor went
// bankrupt; the error is reserved for game-exit propagation.
func (that *Game) collectDebt(debtor, creditor *entity.Player, amount int) (bool, error) {
	err := that.Debit(debtor, creditor, amount)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, apperror.ErrGameExited):
		return false, err
	case errors.Is(err, apperror.ErrInsolvent):
		return true, that.finalizeBankruptcy(debtor, creditor)
	default:
		return false, err
	}
}
