package entity

import (
	"errors"
	"math/rand"
)

// DeckVariant names the two card catalogs.
type DeckVariant string

const (
	DeckChance DeckVariant = "chance"
	DeckChest  DeckVariant = "community_chest"
)

// Catalog indices of the get-out-of-jail cards. A refresh withholds them
// while a player still holds the card.
const (
	ChanceJailCardIndex = 7
	ChestJailCardIndex  = 4
)

var ErrDeckEmpty = errors.New("deck is empty")

// Card pairs a stable catalog index with its face text. Effects are
// dispatched by index, never by text.
type Card struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Deck is a shuffled, depleting sequence over a fixed catalog.
type Deck struct {
	Variant   DeckVariant
	Remaining []Card

	rng *rand.Rand
}

// NewDeck shuffles the full catalog of the variant.
func NewDeck(variant DeckVariant, rng *rand.Rand) *Deck {
	deck := &Deck{Variant: variant, rng: rng}
	deck.Refresh(false)
	return deck
}

// Draw consumes the top card.
func (that *Deck) Draw() (Card, error) {
	if len(that.Remaining) == 0 {
		return Card{}, ErrDeckEmpty
	}
	card := that.Remaining[0]
	that.Remaining = that.Remaining[1:]
	return card, nil
}

// Len reports how many cards are left before the next refresh.
func (that *Deck) Len() int {
	return len(that.Remaining)
}

// Refresh reshuffles the full catalog. When withholdJailCard is set the
// get-out-of-jail entry stays out because a player still holds it.
func (that *Deck) Refresh(withholdJailCard bool) {
	catalog := Catalog(that.Variant)
	cards := make([]Card, 0, len(catalog))
	for _, card := range catalog {
		if withholdJailCard && card.Index == jailCardIndex(that.Variant) {
			continue
		}
		cards = append(cards, card)
	}
	that.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	that.Remaining = cards
}

// Restore rebuilds the remaining sequence from catalog indices, in order.
func (that *Deck) Restore(indices []int) error {
	catalog := Catalog(that.Variant)
	cards := make([]Card, 0, len(indices))
	for _, index := range indices {
		if index < 0 || index >= len(catalog) {
			return errors.New("card index out of range")
		}
		cards = append(cards, catalog[index])
	}
	that.Remaining = cards
	return nil
}

func jailCardIndex(variant DeckVariant) int {
	if variant == DeckChance {
		return ChanceJailCardIndex
	}
	return ChestJailCardIndex
}

// Catalog returns the fixed card list of a variant, ordered by index.
func Catalog(variant DeckVariant) []Card {
	if variant == DeckChance {
		return chanceCatalog
	}
	return chestCatalog
}

var chanceCatalog = []Card{
	{0, "Advance to Go. Collect $200."},
	{1, "Advance to Illinois Avenue."},
	{2, "Advance to St. Charles Place."},
	{3, "Advance to the nearest Utility. If owned, pay ten times your roll."},
	{4, "Advance to the nearest Railroad. If owned, pay double the rent."},
	{5, "Advance to the nearest Railroad. If owned, pay double the rent."},
	{6, "Bank pays you a dividend of $50."},
	{7, "Get Out of Jail Free."},
	{8, "Go back three spaces."},
	{9, "Go directly to Jail. Do not pass Go, do not collect $200."},
	{10, "Make general repairs on all your property: $25 per house, $100 per hotel."},
	{11, "Take a trip to Reading Railroad."},
	{12, "Pay poor tax of $15."},
	{13, "Take a walk on the Boardwalk."},
	{14, "You have been elected chairman of the board. Pay each player $50."},
	{15, "Your building loan matures. Collect $150."},
}

var chestCatalog = []Card{
	{0, "Advance to Go. Collect $200."},
	{1, "Bank error in your favor. Collect $200."},
	{2, "Doctor's fees. Pay $50."},
	{3, "From sale of stock you get $50."},
	{4, "Get Out of Jail Free."},
	{5, "Go directly to Jail. Do not pass Go, do not collect $200."},
	{6, "Grand opera night. Collect $50 from every player."},
	{7, "Holiday fund matures. Collect $100."},
	{8, "Income tax refund. Collect $20."},
	{9, "It's your birthday. Collect $10 from every player."},
	{10, "Life insurance matures. Collect $100."},
	{11, "Pay hospital fees of $50."},
	{12, "Pay school fees of $50."},
	{13, "Receive $25 consultancy fee."},
	{14, "You are assessed for street repairs: $40 per house, $115 per hotel."},
	{15, "You have won second prize in a beauty contest. Collect $10."},
	{16, "You inherit $100."},
}
