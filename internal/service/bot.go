package service

import (
	"math/rand"

	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
	"github.com/rocketscienceinc/monopoly-engine/internal/monopoly"
)

// cashReserve is how much the bot tries to keep liquid after any purchase.
const cashReserve = 50

// mortgagePriority orders groups from most to least expendable when the
// bot has to raise money.
var mortgagePriority = []string{
	entity.GroupUtilities, entity.GroupBrown, entity.GroupDarkBlue,
	entity.GroupLightBlue, entity.GroupPink, entity.GroupGreen,
	entity.GroupTransit, entity.GroupYellow, entity.GroupOrange, entity.GroupRed,
}

// BotStrategy is an automated player. It is deterministic for a fixed
// random source, which keeps simulations reproducible.
type BotStrategy struct {
	player *entity.Player
	rng    *rand.Rand
}

func NewBotStrategy(rng *rand.Rand) *BotStrategy {
	return &BotStrategy{rng: rng}
}

// Bind attaches the bot to its player once the game has created it.
func (that *BotStrategy) Bind(player *entity.Player) {
	that.player = player
}

// DecideBuy buys anything that leaves the cash reserve intact.
func (that *BotStrategy) DecideBuy(asset *entity.Asset) (bool, error) {
	return asset.Price < that.player.Balance-cashReserve, nil
}

// DecideBid steps to the lowest legal bid while it stays under the bot's
// ceiling for the asset, withdrawing otherwise.
func (that *BotStrategy) DecideBid(auction *monopoly.Auction) (int, error) {
	ceiling := that.bidCeiling(auction.Asset)
	if bid := auction.MinimumBid(); bid <= ceiling {
		return bid, nil
	}
	return 0, nil
}

// bidCeiling values the asset by price, scaled up when it advances a group
// the bot already collects, and bounded by the wallet.
func (that *BotStrategy) bidCeiling(asset *entity.Asset) int {
	factor := 1.0
	if that.player.Balance < 200 {
		factor *= 0.75
	}
	owned := that.player.CountGroup(asset.Group)
	if owned > 0 {
		factor *= 4.0 / 3.0
	}
	if owned+1 == asset.GroupSize {
		factor *= 2
	}

	byPrice := int(float64(asset.Price) * factor)
	if limit := that.player.Balance - cashReserve; byPrice > limit {
		byPrice = limit
	}
	if byBalance := that.player.Balance / 10; byBalance > byPrice {
		byPrice = byBalance
	}
	jitter := (that.rng.Intn(7) - 3) * monopoly.BidIncrement
	return byPrice/monopoly.BidIncrement*monopoly.BidIncrement + jitter
}

// DecideJailAction spends a card when held, buys out early while cash is
// comfortable, and waits on the dice otherwise.
func (that *BotStrategy) DecideJailAction(player *entity.Player) (monopoly.JailAction, error) {
	switch {
	case player.HasJailCard():
		return monopoly.JailUseCard, nil
	case player.Balance >= 200:
		return monopoly.JailPay, nil
	default:
		return monopoly.JailRoll, nil
	}
}

// DecideLiquidation mortgages expendable clean deeds first, then sells
// improvements off the least built-up group.
func (that *BotStrategy) DecideLiquidation(player *entity.Player, debt int) (monopoly.LiquidationAction, error) {
	for _, group := range mortgagePriority {
		for _, asset := range player.Collection(group) {
			if !asset.Mortgaged && asset.Improvements == 0 && groupImprovementFree(player, group) {
				return monopoly.LiquidationAction{Mortgage: asset}, nil
			}
		}
	}

	bestGroup := ""
	bestLevel := 0
	for _, group := range entity.GroupOrder {
		for _, asset := range player.Collection(group) {
			if asset.Improvements > 0 && (bestGroup == "" || asset.Improvements < bestLevel) {
				bestGroup = group
				bestLevel = asset.Improvements
			}
		}
	}
	if bestGroup != "" {
		return monopoly.LiquidationAction{SellGroup: bestGroup}, nil
	}
	return monopoly.LiquidationAction{}, nil
}

func groupImprovementFree(player *entity.Player, group string) bool {
	for _, asset := range player.Collection(group) {
		if asset.Improvements != 0 {
			return false
		}
	}
	return true
}

// DecideMortgageAssumption unmortgages when the wallet stays comfortable,
// otherwise pays the interest and keeps the mortgage.
func (that *BotStrategy) DecideMortgageAssumption(asset *entity.Asset) (monopoly.MortgageAssumption, error) {
	if that.player.Balance >= asset.UnmortgageCost()+2*cashReserve {
		return monopoly.AssumptionUnmortgage, nil
	}
	return monopoly.AssumptionPayInterest, nil
}

// DecideImprovement builds one house at a time on the least improved asset
// of a complete, unmortgaged group, while the reserve holds.
func (that *BotStrategy) DecideImprovement(player *entity.Player) (*monopoly.ImprovementOrder, error) {
	for _, group := range entity.GroupOrder {
		collection := player.Collection(group)
		if len(collection) == 0 || collection[0].Variant != entity.VariantStandard {
			continue
		}
		if len(collection) != collection[0].GroupSize || groupMortgaged(collection) {
			continue
		}

		target := collection[0]
		for _, asset := range collection[1:] {
			if asset.Improvements < target.Improvements {
				target = asset
			}
		}
		if target.Improvements < entity.MaxImprovements &&
			player.Balance >= target.ImprovementCost+2*cashReserve {
			return &monopoly.ImprovementOrder{Asset: target, Count: 1}, nil
		}
	}
	return nil, nil
}

func groupMortgaged(collection []*entity.Asset) bool {
	for _, asset := range collection {
		if asset.Mortgaged {
			return true
		}
	}
	return false
}

// DecideTrade proposes nothing; the bot only reacts to offers.
func (that *BotStrategy) DecideTrade(_ *entity.Player) (*monopoly.TradeOffer, error) {
	return nil, nil
}

// EvaluateTrade accepts offers worth clearly more than what they ask.
func (that *BotStrategy) EvaluateTrade(offer *monopoly.TradeOffer) (monopoly.TradeResponse, error) {
	offered := offer.OfferedCash + valueAssets(offer.OfferedAssets)
	requested := offer.RequestedCash + valueAssets(offer.RequestedAssets)
	if offered*5 >= requested*6 {
		return monopoly.TradeAccept, nil
	}
	return monopoly.TradeReject, nil
}

func valueAssets(assets []*entity.Asset) int {
	total := 0
	for _, asset := range assets {
		if asset.Mortgaged {
			total += asset.Price / 2
		} else {
			total += asset.Price
		}
	}
	return total
}
