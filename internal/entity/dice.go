package entity

import "math/rand"

// Dice rolls two six-sided dice.
type Dice struct {
	rng *rand.Rand
}

func NewDice(rng *rand.Rand) *Dice {
	return &Dice{rng: rng}
}

// Roll returns the sum of both dice and whether they matched.
func (that *Dice) Roll() (int, bool) {
	a := that.rng.Intn(6) + 1
	b := that.rng.Intn(6) + 1
	return a + b, a == b
}
