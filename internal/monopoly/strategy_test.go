package monopoly

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
	"github.com/stretchr/testify/require"
)

// newTestGame builds a game with scripted strategies and a fixed seed.
func newTestGame(t *testing.T, names []string, strategies map[string]Strategy) *Game {
	t.Helper()

	game, err := NewGame(names, entity.StartingBalance, strategies, rand.New(rand.NewSource(1))) //nolint: gosec
	require.NoError(t, err)
	return game
}

// stubStrategy scripts every decision through optional function fields.
// Unset fields answer with the most passive legal choice.
type stubStrategy struct {
	buy           func(asset *entity.Asset) (bool, error)
	bid           func(auction *Auction) (int, error)
	jail          func(player *entity.Player) (JailAction, error)
	liquidation   func(player *entity.Player, debt int) (LiquidationAction, error)
	assumption    func(asset *entity.Asset) (MortgageAssumption, error)
	improvement   func(player *entity.Player) (*ImprovementOrder, error)
	trade         func(player *entity.Player) (*TradeOffer, error)
	tradeResponse func(offer *TradeOffer) (TradeResponse, error)
}

func (that *stubStrategy) DecideBuy(asset *entity.Asset) (bool, error) {
	if that.buy != nil {
		return that.buy(asset)
	}
	return false, nil
}

func (that *stubStrategy) DecideBid(auction *Auction) (int, error) {
	if that.bid != nil {
		return that.bid(auction)
	}
	return 0, nil
}

func (that *stubStrategy) DecideJailAction(player *entity.Player) (JailAction, error) {
	if that.jail != nil {
		return that.jail(player)
	}
	return JailRoll, nil
}

func (that *stubStrategy) DecideLiquidation(player *entity.Player, debt int) (LiquidationAction, error) {
	if that.liquidation != nil {
		return that.liquidation(player, debt)
	}
	return LiquidationAction{}, nil
}

func (that *stubStrategy) DecideMortgageAssumption(asset *entity.Asset) (MortgageAssumption, error) {
	if that.assumption != nil {
		return that.assumption(asset)
	}
	return AssumptionPayInterest, nil
}

func (that *stubStrategy) DecideImprovement(player *entity.Player) (*ImprovementOrder, error) {
	if that.improvement != nil {
		return that.improvement(player)
	}
	return nil, nil
}

func (that *stubStrategy) DecideTrade(player *entity.Player) (*TradeOffer, error) {
	if that.trade != nil {
		return that.trade(player)
	}
	return nil, nil
}

func (that *stubStrategy) EvaluateTrade(offer *TradeOffer) (TradeResponse, error) {
	if that.tradeResponse != nil {
		return that.tradeResponse(offer)
	}
	return TradeReject, nil
}
