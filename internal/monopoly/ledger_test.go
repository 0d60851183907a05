package monopoly

import (
	"testing"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_Debit(t *testing.T) {
	t.Run("Covered debit moves money between players", func(t *testing.T) {
		// Given: two players at the starting balance
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice, bob := game.Players[0], game.Players[1]

		// When: Alice pays Bob 100
		err := game.Debit(alice, bob, 100)

		// Then: the money moved and the total is conserved
		require.NoError(t, err)
		assert.Equal(t, entity.StartingBalance-100, alice.Balance)
		assert.Equal(t, entity.StartingBalance+100, bob.Balance)
		assert.Equal(t, 2*entity.StartingBalance, alice.Balance+bob.Balance)
	})

	t.Run("Debit to the bank destroys the money", func(t *testing.T) {
		// Given: a two player game
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice := game.Players[0]

		// When: Alice pays the bank 200
		err := game.Debit(alice, nil, 200)

		// Then: only her balance drops
		require.NoError(t, err)
		assert.Equal(t, entity.StartingBalance-200, alice.Balance)
	})

	t.Run("Debit liquidates through a mortgage decision", func(t *testing.T) {
		// Given: Alice short on cash but holding a clean deed
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{
				liquidation: func(player *entity.Player, debt int) (LiquidationAction, error) {
					return LiquidationAction{Mortgage: player.Collection(entity.GroupBrown)[0]}, nil
				},
			},
			"Bob": &stubStrategy{},
		})
		alice, bob := game.Players[0], game.Players[1]
		baltic := game.Board.FindAsset("Baltic Avenue")
		alice.AddAsset(baltic)
		alice.Balance = 10

		// When: Alice owes Bob 30
		err := game.Debit(alice, bob, 30)

		// Then: the deed got mortgaged for 30 and the debt settled
		require.NoError(t, err)
		assert.True(t, baltic.Mortgaged)
		assert.Equal(t, 10, alice.Balance)
		assert.Equal(t, entity.StartingBalance+30, bob.Balance)
		assert.Nil(t, alice.Creditor)
	})

	t.Run("Debit liquidates by selling a group down evenly", func(t *testing.T) {
		// Given: Alice broke with a house on each brown asset
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{
				liquidation: func(player *entity.Player, debt int) (LiquidationAction, error) {
					return LiquidationAction{SellGroup: entity.GroupBrown}, nil
				},
			},
			"Bob": &stubStrategy{},
		})
		alice := game.Players[0]
		mediterranean := game.Board.FindAsset("Mediterranean Avenue")
		baltic := game.Board.FindAsset("Baltic Avenue")
		alice.AddAsset(mediterranean)
		alice.AddAsset(baltic)
		mediterranean.Improvements = 1
		baltic.Improvements = 1
		alice.Balance = 0

		// When: Alice owes the bank 50
		err := game.Debit(alice, nil, 50)

		// Then: one level came off each asset at half cost, covering the debt
		require.NoError(t, err)
		assert.Equal(t, 0, mediterranean.Improvements)
		assert.Equal(t, 0, baltic.Improvements)
		assert.Equal(t, 0, alice.Balance)
	})

	t.Run("Debit with nothing to liquidate reports insolvency", func(t *testing.T) {
		// Given: Alice with 10 and no assets
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice, bob := game.Players[0], game.Players[1]
		alice.Balance = 10

		// When: she owes Bob 100
		err := game.Debit(alice, bob, 100)

		// Then: the debit does not complete
		assert.ErrorIs(t, err, apperror.ErrInsolvent)
		assert.Equal(t, 10, alice.Balance)
		assert.Equal(t, entity.StartingBalance, bob.Balance)
	})

	t.Run("Unusable liquidation steps forfeit after the retry bound", func(t *testing.T) {
		// Given: Alice holding a liquidable deed but a strategy that never
		// produces a lawful step
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{
				liquidation: func(player *entity.Player, debt int) (LiquidationAction, error) {
					return LiquidationAction{}, nil
				},
			},
			"Bob": &stubStrategy{},
		})
		alice := game.Players[0]
		alice.AddAsset(game.Board.FindAsset("Baltic Avenue"))
		alice.Balance = 0

		// When: she owes the bank 100
		err := game.Debit(alice, nil, 100)

		// Then: the forfeit reads as insolvency
		assert.ErrorIs(t, err, apperror.ErrInsolvent)
	})

	t.Run("Exiting during liquidation unwinds the debit", func(t *testing.T) {
		// Given: a strategy that abandons the game when pressed for money
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{
				liquidation: func(player *entity.Player, debt int) (LiquidationAction, error) {
					return LiquidationAction{}, apperror.ErrGameExited
				},
			},
			"Bob": &stubStrategy{},
		})
		alice := game.Players[0]
		alice.AddAsset(game.Board.FindAsset("Baltic Avenue"))
		alice.Balance = 0

		// When: the debit runs
		err := game.Debit(alice, nil, 100)

		// Then: the exit propagates
		assert.ErrorIs(t, err, apperror.ErrGameExited)
	})
}

func TestGame_Acquire(t *testing.T) {
	t.Run("Buying an asset debits the price and assigns ownership", func(t *testing.T) {
		// Given: a fresh game
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice := game.Players[0]
		mediterranean := game.Board.FindAsset("Mediterranean Avenue")

		// When: Alice buys at face price
		err := game.Acquire(alice, mediterranean, mediterranean.Price)

		// Then: she owns it and paid 60
		require.NoError(t, err)
		assert.Same(t, alice, mediterranean.Owner)
		assert.Equal(t, entity.StartingBalance-60, alice.Balance)
	})

	t.Run("Buying an owned asset is rejected", func(t *testing.T) {
		// Given: an asset already owned by Bob
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice, bob := game.Players[0], game.Players[1]
		mediterranean := game.Board.FindAsset("Mediterranean Avenue")
		bob.AddAsset(mediterranean)

		// When: Alice tries to acquire it
		err := game.Acquire(alice, mediterranean, mediterranean.Price)

		// Then: the acquisition is refused
		assert.ErrorIs(t, err, apperror.ErrInvalidDecision)
	})
}

func TestGame_MortgageAssumption(t *testing.T) {
	t.Run("Receiver unmortgages at 110 percent", func(t *testing.T) {
		// Given: a mortgaged deed headed to Alice, who chooses to unmortgage
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{
				assumption: func(asset *entity.Asset) (MortgageAssumption, error) {
					return AssumptionUnmortgage, nil
				},
			},
			"Bob": &stubStrategy{},
		})
		alice := game.Players[0]
		baltic := game.Board.FindAsset("Baltic Avenue")
		baltic.Mortgaged = true

		// When: the asset transfers
		err := game.transferAsset(alice, baltic)

		// Then: she paid 33 and holds it clean
		require.NoError(t, err)
		assert.False(t, baltic.Mortgaged)
		assert.Equal(t, entity.StartingBalance-33, alice.Balance)
	})

	t.Run("Receiver keeps the mortgage for the interest fee", func(t *testing.T) {
		// Given: a mortgaged deed headed to Alice, who pays interest
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice := game.Players[0]
		baltic := game.Board.FindAsset("Baltic Avenue")
		baltic.Mortgaged = true

		// When: the asset transfers
		err := game.transferAsset(alice, baltic)

		// Then: she paid the 10% fee and the mortgage stands
		require.NoError(t, err)
		assert.True(t, baltic.Mortgaged)
		assert.Equal(t, entity.StartingBalance-3, alice.Balance)
		assert.Same(t, alice, baltic.Owner)
	})

	t.Run("Failing to raise the fee returns the asset to the bank", func(t *testing.T) {
		// Given: a destitute receiver
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice := game.Players[0]
		alice.Balance = 0
		baltic := game.Board.FindAsset("Baltic Avenue")
		baltic.Mortgaged = true

		// When: the asset transfers
		err := game.transferAsset(alice, baltic)

		// Then: the insolvency surfaces and ownership is reverted
		assert.ErrorIs(t, err, apperror.ErrInsolvent)
		assert.Nil(t, baltic.Owner)
	})
}

func TestGame_ApplyTrade(t *testing.T) {
	t.Run("Accepted trade swaps assets and cash atomically", func(t *testing.T) {
		// Given: Alice offering a deed for Bob's cash
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{},
			"Bob": &stubStrategy{
				tradeResponse: func(offer *TradeOffer) (TradeResponse, error) {
					return TradeAccept, nil
				},
			},
		})
		alice, bob := game.Players[0], game.Players[1]
		baltic := game.Board.FindAsset("Baltic Avenue")
		alice.AddAsset(baltic)

		// When: the trade applies
		err := game.ApplyTrade(&TradeOffer{
			Proposer:      alice,
			Partner:       bob,
			OfferedAssets: []*entity.Asset{baltic},
			RequestedCash: 100,
		})

		// Then: Bob owns the deed and Alice has the cash
		require.NoError(t, err)
		assert.Same(t, bob, baltic.Owner)
		assert.Equal(t, entity.StartingBalance+100, alice.Balance)
		assert.Equal(t, entity.StartingBalance-100, bob.Balance)
	})

	t.Run("Rejected trade leaves everything untouched", func(t *testing.T) {
		// Given: a partner that declines everything
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice, bob := game.Players[0], game.Players[1]
		baltic := game.Board.FindAsset("Baltic Avenue")
		alice.AddAsset(baltic)

		// When: the trade applies
		err := game.ApplyTrade(&TradeOffer{
			Proposer:      alice,
			Partner:       bob,
			OfferedAssets: []*entity.Asset{baltic},
			RequestedCash: 100,
		})

		// Then: nothing moved
		assert.ErrorIs(t, err, ErrTradeRejected)
		assert.Same(t, alice, baltic.Owner)
		assert.Equal(t, entity.StartingBalance, alice.Balance)
		assert.Equal(t, entity.StartingBalance, bob.Balance)
	})

	t.Run("Improved assets cannot be traded", func(t *testing.T) {
		// Given: an offered asset carrying a house
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice, bob := game.Players[0], game.Players[1]
		baltic := game.Board.FindAsset("Baltic Avenue")
		alice.AddAsset(baltic)
		baltic.Improvements = 1

		// When: the trade applies
		err := game.ApplyTrade(&TradeOffer{
			Proposer:      alice,
			Partner:       bob,
			OfferedAssets: []*entity.Asset{baltic},
		})

		// Then: the leg validation rejects it before the partner is asked
		assert.ErrorIs(t, err, apperror.ErrGroupHasImprovements)
	})

	t.Run("Uncovered cash leg is rejected up front", func(t *testing.T) {
		// Given: a request for more cash than the partner holds
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		alice, bob := game.Players[0], game.Players[1]

		// When: the trade applies
		err := game.ApplyTrade(&TradeOffer{
			Proposer:      alice,
			Partner:       bob,
			RequestedCash: entity.StartingBalance + 1,
		})

		// Then: the leg validation rejects it
		assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)
	})
}
