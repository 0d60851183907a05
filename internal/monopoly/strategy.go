package monopoly

import "github.com/rocketscienceinc/monopoly-engine/internal/entity"

// JailAction is a player's choice when starting a turn in jail.
type JailAction string

const (
	JailPay     JailAction = "pay"
	JailUseCard JailAction = "card"
	JailRoll    JailAction = "roll"
)

// LiquidationAction is one step of the liquidation protocol: mortgage a
// specific clean asset, or sell improvements evenly off a group. The zero
// value means the strategy sees nothing left to liquidate.
type LiquidationAction struct {
	Mortgage  *entity.Asset
	SellGroup string
}

// MortgageAssumption decides what a new owner does with an asset received
// mortgaged.
type MortgageAssumption string

const (
	AssumptionUnmortgage  MortgageAssumption = "unmortgage"
	AssumptionPayInterest MortgageAssumption = "interest"
)

// ImprovementOrder asks to build Count levels on one asset.
type ImprovementOrder struct {
	Asset *entity.Asset
	Count int
}

// TradeOffer describes an exchange between two players. It is applied
// atomically: either every transfer happens or none does.
type TradeOffer struct {
	Proposer *entity.Player
	Partner  *entity.Player

	OfferedAssets   []*entity.Asset
	RequestedAssets []*entity.Asset
	OfferedCash     int
	RequestedCash   int
}

// TradeResponse is the partner's verdict on an offer.
type TradeResponse string

const (
	TradeAccept TradeResponse = "accept"
	TradeReject TradeResponse = "reject"
)

// Strategy supplies every player decision to the engine. All calls are
// synchronous; the engine does not resume until they return. A strategy may
// return apperror.ErrGameExited from any call to abandon the game, which
// unwinds the turn loop without touching committed ledger state. Any other
// malformed response is re-prompted a bounded number of times.
type Strategy interface {
	// DecideBuy answers whether to buy an unowned asset at face price.
	DecideBuy(asset *entity.Asset) (bool, error)

	// DecideBid returns the next bid. Anything below the current high bid
	// plus the increment counts as a withdrawal.
	DecideBid(auction *Auction) (int, error)

	// DecideJailAction picks pay, card or roll.
	DecideJailAction(player *entity.Player) (JailAction, error)

	// DecideLiquidation picks the next asset to mortgage or group to sell
	// down while the player cannot cover a debt.
	DecideLiquidation(player *entity.Player, debt int) (LiquidationAction, error)

	// DecideMortgageAssumption picks between unmortgaging a received
	// mortgaged asset and paying the 10% interest fee to keep it mortgaged.
	DecideMortgageAssumption(asset *entity.Asset) (MortgageAssumption, error)

	// DecideImprovement proposes a build during the management phase, or
	// nil for none.
	DecideImprovement(player *entity.Player) (*ImprovementOrder, error)

	// DecideTrade proposes a trade during the management phase, or nil.
	DecideTrade(player *entity.Player) (*TradeOffer, error)

	// EvaluateTrade answers an offer addressed to this player.
	EvaluateTrade(offer *TradeOffer) (TradeResponse, error)
}
