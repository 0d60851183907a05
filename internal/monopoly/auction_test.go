package monopoly

import (
	"testing"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bidUpTo keeps taking the minimum bid while it stays within the ceiling.
func bidUpTo(ceiling int) func(auction *Auction) (int, error) {
	return func(auction *Auction) (int, error) {
		if bid := auction.MinimumBid(); bid <= ceiling {
			return bid, nil
		}
		return 0, nil
	}
}

func TestGame_RunAuction(t *testing.T) {
	t.Run("Highest ceiling wins at one increment past the rival", func(t *testing.T) {
		// Given: three bidders with ceilings 50, 30 and nothing
		game := newTestGame(t, []string{"Alice", "Bob", "Carol"}, map[string]Strategy{
			"Alice": &stubStrategy{bid: bidUpTo(50)},
			"Bob":   &stubStrategy{bid: bidUpTo(30)},
			"Carol": &stubStrategy{},
		})
		mediterranean := game.Board.FindAsset("Mediterranean Avenue")

		// When: the auction runs
		winner, bid, err := game.RunAuction(mediterranean, game.ActivePlayers())

		// Then: Alice takes it for 30
		require.NoError(t, err)
		assert.Equal(t, "Alice", winner.Name)
		assert.Equal(t, 30, bid)
	})

	t.Run("No bids leaves the asset unsold", func(t *testing.T) {
		// Given: bidders that all pass
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{}, "Bob": &stubStrategy{},
		})
		mediterranean := game.Board.FindAsset("Mediterranean Avenue")

		// When: the auction runs
		winner, bid, err := game.RunAuction(mediterranean, game.ActivePlayers())

		// Then: nobody won
		require.NoError(t, err)
		assert.Nil(t, winner)
		assert.Equal(t, 0, bid)
	})

	t.Run("A bid off the increment counts as withdrawal", func(t *testing.T) {
		// Given: Bob bidding an unlawful 15
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{bid: bidUpTo(10)},
			"Bob": &stubStrategy{bid: func(auction *Auction) (int, error) {
				return 15, nil
			}},
		})
		mediterranean := game.Board.FindAsset("Mediterranean Avenue")

		// When: the auction runs
		winner, bid, err := game.RunAuction(mediterranean, game.ActivePlayers())

		// Then: Alice wins at the opening bid
		require.NoError(t, err)
		assert.Equal(t, "Alice", winner.Name)
		assert.Equal(t, 10, bid)
	})

	t.Run("A strategy error withdraws the bidder", func(t *testing.T) {
		// Given: Bob's strategy failing outright
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{bid: bidUpTo(20)},
			"Bob": &stubStrategy{bid: func(auction *Auction) (int, error) {
				return 0, assert.AnError
			}},
		})
		mediterranean := game.Board.FindAsset("Mediterranean Avenue")

		// When: the auction runs
		winner, _, err := game.RunAuction(mediterranean, game.ActivePlayers())

		// Then: the auction still completes with Alice
		require.NoError(t, err)
		assert.Equal(t, "Alice", winner.Name)
	})

	t.Run("A game exit aborts the auction", func(t *testing.T) {
		// Given: Bob abandoning the game mid-auction
		game := newTestGame(t, []string{"Alice", "Bob"}, map[string]Strategy{
			"Alice": &stubStrategy{bid: bidUpTo(20)},
			"Bob": &stubStrategy{bid: func(auction *Auction) (int, error) {
				return 0, apperror.ErrGameExited
			}},
		})
		mediterranean := game.Board.FindAsset("Mediterranean Avenue")

		// When: the auction runs
		_, _, err := game.RunAuction(mediterranean, game.ActivePlayers())

		// Then: the exit propagates
		assert.ErrorIs(t, err, apperror.ErrGameExited)
	})

	t.Run("MinimumBid steps by the fixed increment", func(t *testing.T) {
		// Given: an auction with a standing high bid
		auction := NewAuction(&entity.Asset{Name: "x"}, nil)
		auction.HighBid = 40

		// Then: the next lawful bid is one increment up
		assert.Equal(t, 50, auction.MinimumBid())
	})
}
