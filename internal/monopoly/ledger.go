package monopoly

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
)

// maxDecisionRetries bounds re-prompting after malformed strategy responses.
// A strategy that cannot produce a lawful liquidation step within the bound
// forfeits, which reads as insolvency to the caller.
const maxDecisionRetries = 8

// Credit pays a player from the bank.
func (that *Game) Credit(player *entity.Player, amount int) {
	player.Credit(amount)
}

// Debit takes amount from the debtor, liquidating assets as needed, and
// credits the creditor. A nil creditor is the bank. It returns
// apperror.ErrInsolvent when the debtor cannot raise the amount; the debit
// does not complete and the caller finalizes the bankruptcy.
func (that *Game) Debit(debtor, creditor *entity.Player, amount int) error {
	if amount <= 0 {
		return nil
	}

	debtor.Creditor = creditor
	defer func() { debtor.Creditor = nil }()

	if err := that.liquidate(debtor, amount); err != nil {
		return err
	}
	if err := debtor.Pay(amount); err != nil {
		return err
	}
	if creditor != nil {
		creditor.Credit(amount)
	}
	return nil
}

// liquidate runs the liquidation protocol until the debtor's balance covers
// the debt or nothing can raise money anymore.
func (that *Game) liquidate(debtor *entity.Player, debt int) error {
	strategy := that.strategyFor(debtor)
	retries := 0

	for debtor.Balance < debt {
		if !debtor.HasLiquidable() {
			return fmt.Errorf("%w: %s owes %d with nothing left to liquidate", apperror.ErrInsolvent, debtor.Name, debt)
		}

		action, err := strategy.DecideLiquidation(debtor, debt-debtor.Balance)
		if err != nil {
			if errors.Is(err, apperror.ErrGameExited) {
				return err
			}
			retries++
			if retries > maxDecisionRetries {
				return fmt.Errorf("%w: %s gave no usable liquidation step", apperror.ErrInsolvent, debtor.Name)
			}
			continue
		}

		if err = that.applyLiquidation(debtor, action); err != nil {
			retries++
			if retries > maxDecisionRetries {
				return fmt.Errorf("%w: %s gave no usable liquidation step", apperror.ErrInsolvent, debtor.Name)
			}
			continue
		}
		retries = 0
	}
	return nil
}

func (that *Game) applyLiquidation(debtor *entity.Player, action LiquidationAction) error {
	switch {
	case action.Mortgage != nil:
		if action.Mortgage.Owner != debtor {
			return fmt.Errorf("%w: %s does not own %s", apperror.ErrInvalidDecision, debtor.Name, action.Mortgage.Name)
		}
		return action.Mortgage.Mortgage()
	case action.SellGroup != "":
		return that.sellGroupEvenly(debtor, action.SellGroup)
	default:
		return fmt.Errorf("%w: empty liquidation action", apperror.ErrInvalidDecision)
	}
}

// sellGroupEvenly sells one improvement level off every most-improved asset
// in the group, keeping the even-building invariant.
func (that *Game) sellGroupEvenly(seller *entity.Player, group string) error {
	collection := seller.Collection(group)
	highest := 0
	for _, asset := range collection {
		if asset.Improvements > highest {
			highest = asset.Improvements
		}
	}
	if highest == 0 {
		return fmt.Errorf("%w: no improvements to sell in %s", apperror.ErrInvalidDecision, group)
	}

	for _, asset := range collection {
		if asset.Improvements != highest {
			continue
		}
		proceeds, err := asset.SellImprovement(1)
		if err != nil {
			return err
		}
		seller.Credit(proceeds)
	}
	return nil
}

// Acquire buys an asset for the given price, liquidating if the price
// exceeds the buyer's balance. Receiving a mortgaged asset immediately
// forces the mortgage-assumption decision.
func (that *Game) Acquire(buyer *entity.Player, asset *entity.Asset, price int) error {
	if asset.Owner != nil {
		return fmt.Errorf("%w: %s already belongs to %s", apperror.ErrInvalidDecision, asset.Name, asset.Owner.Name)
	}
	if err := that.Debit(buyer, nil, price); err != nil {
		return err
	}
	buyer.AddAsset(asset)
	if asset.Mortgaged {
		return that.assumeMortgage(buyer, asset)
	}
	return nil
}

// Release returns an asset to the bank.
func (that *Game) Release(owner *entity.Player, asset *entity.Asset) {
	owner.RemoveAsset(asset)
}

// transferAsset hands an unowned asset to a player without a sale, as in
// bankruptcy transfers and trades.
func (that *Game) transferAsset(to *entity.Player, asset *entity.Asset) error {
	to.AddAsset(asset)
	if asset.Mortgaged {
		return that.assumeMortgage(to, asset)
	}
	return nil
}

// assumeMortgage settles a mortgaged acquisition: the new owner either
// unmortgages at 110% of the mortgage value or pays the 10% interest fee
// and keeps the mortgage. Failing to raise even the fee returns the asset
// to the bank.
func (that *Game) assumeMortgage(owner *entity.Player, asset *entity.Asset) error {
	strategy := that.strategyFor(owner)

	choice := AssumptionPayInterest
	for retries := 0; retries <= maxDecisionRetries; retries++ {
		decided, err := strategy.DecideMortgageAssumption(asset)
		if err != nil {
			if errors.Is(err, apperror.ErrGameExited) {
				return err
			}
			continue
		}
		if decided == AssumptionUnmortgage || decided == AssumptionPayInterest {
			choice = decided
			break
		}
	}

	fee := asset.Interest()
	if choice == AssumptionUnmortgage {
		fee = asset.UnmortgageCost()
	}

	if err := that.Debit(owner, nil, fee); err != nil {
		owner.RemoveAsset(asset)
		return err
	}
	if choice == AssumptionUnmortgage {
		asset.Mortgaged = false
	}
	return nil
}

var ErrTradeRejected = errors.New("trade rejected")

// ApplyTrade validates and executes an offer as an atomic pair of
// acquire/release exchanges plus cash. Improved assets cannot be traded and
// both cash legs must be covered up front, so no leg can fail mid-way.
func (that *Game) ApplyTrade(offer *TradeOffer) error {
	if offer == nil || offer.Proposer == nil || offer.Partner == nil || offer.Proposer == offer.Partner {
		return fmt.Errorf("%w: malformed trade offer", apperror.ErrInvalidDecision)
	}
	if err := validateTradeLeg(offer.Proposer, offer.OfferedAssets, offer.OfferedCash); err != nil {
		return err
	}
	if err := validateTradeLeg(offer.Partner, offer.RequestedAssets, offer.RequestedCash); err != nil {
		return err
	}

	response, err := that.strategyFor(offer.Partner).EvaluateTrade(offer)
	if err != nil {
		return err
	}
	if response != TradeAccept {
		return ErrTradeRejected
	}

	if offer.OfferedCash > 0 {
		if err = offer.Proposer.Pay(offer.OfferedCash); err != nil {
			return err
		}
		offer.Partner.Credit(offer.OfferedCash)
	}
	if offer.RequestedCash > 0 {
		if err = offer.Partner.Pay(offer.RequestedCash); err != nil {
			return err
		}
		offer.Proposer.Credit(offer.RequestedCash)
	}

	for _, asset := range offer.OfferedAssets {
		offer.Proposer.RemoveAsset(asset)
	}
	for _, asset := range offer.RequestedAssets {
		offer.Partner.RemoveAsset(asset)
	}
	var firstErr error
	for _, asset := range offer.OfferedAssets {
		if err := that.transferAsset(offer.Partner, asset); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, asset := range offer.RequestedAssets {
		if err := that.transferAsset(offer.Proposer, asset); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func validateTradeLeg(owner *entity.Player, assets []*entity.Asset, cash int) error {
	if cash < 0 || owner.Balance < cash {
		return fmt.Errorf("%w: %s cannot cover the cash leg", apperror.ErrInsufficientFunds, owner.Name)
	}
	for _, asset := range assets {
		if asset.Owner != owner {
			return fmt.Errorf("%w: %s does not own %s", apperror.ErrInvalidDecision, owner.Name, asset.Name)
		}
		if asset.Improvements > 0 {
			return fmt.Errorf("%w: %s", apperror.ErrGroupHasImprovements, asset.Name)
		}
	}
	return nil
}
