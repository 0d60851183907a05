package entity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeck_Draw(t *testing.T) {
	t.Run("Deck depletes card by card", func(t *testing.T) {
		// Given: a fresh chance deck
		deck := NewDeck(DeckChance, rand.New(rand.NewSource(1))) //nolint: gosec

		// When: every card is drawn
		seen := make(map[int]bool)
		for deck.Len() > 0 {
			card, err := deck.Draw()
			require.NoError(t, err)
			seen[card.Index] = true
		}

		// Then: all 16 distinct cards came out exactly once
		assert.Len(t, seen, 16)

		// And: drawing from the empty deck fails
		_, err := deck.Draw()
		assert.ErrorIs(t, err, ErrDeckEmpty)
	})
}

func TestDeck_Refresh(t *testing.T) {
	t.Run("Refresh restores the full catalog", func(t *testing.T) {
		// Given: an exhausted chest deck
		deck := NewDeck(DeckChest, rand.New(rand.NewSource(1))) //nolint: gosec
		for deck.Len() > 0 {
			_, err := deck.Draw()
			require.NoError(t, err)
		}

		// When: the deck is refreshed with nobody holding the jail card
		deck.Refresh(false)

		// Then: all 17 cards are back
		assert.Equal(t, 17, deck.Len())
	})

	t.Run("Refresh withholds a held jail card", func(t *testing.T) {
		// Given: an exhausted chance deck
		deck := NewDeck(DeckChance, rand.New(rand.NewSource(1))) //nolint: gosec
		for deck.Len() > 0 {
			_, err := deck.Draw()
			require.NoError(t, err)
		}

		// When: the deck is refreshed while a player holds the jail card
		deck.Refresh(true)

		// Then: the jail card stays out
		assert.Equal(t, 15, deck.Len())
		for _, card := range deck.Remaining {
			assert.NotEqual(t, ChanceJailCardIndex, card.Index)
		}
	})
}

func TestDeck_Restore(t *testing.T) {
	t.Run("Restore rebuilds an exact remainder", func(t *testing.T) {
		// Given: a chance deck
		deck := NewDeck(DeckChance, rand.New(rand.NewSource(1))) //nolint: gosec

		// When: a stored remainder is applied
		require.NoError(t, deck.Restore([]int{8, 0, 15}))

		// Then: the cards come out in the stored order
		first, err := deck.Draw()
		require.NoError(t, err)
		assert.Equal(t, 8, first.Index)
		assert.Equal(t, 2, deck.Len())
	})

	t.Run("Restore rejects out-of-range indices", func(t *testing.T) {
		// Given: a chance deck
		deck := NewDeck(DeckChance, rand.New(rand.NewSource(1))) //nolint: gosec

		// When: an impossible index is applied
		err := deck.Restore([]int{99})

		// Then: the restore fails
		assert.Error(t, err)
	})
}
