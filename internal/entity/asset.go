package entity

import (
	"fmt"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
)

// AssetVariant selects the rent calculation and improvability of an asset.
// The set is closed; every switch over it handles all three values.
type AssetVariant string

const (
	VariantStandard AssetVariant = "standard"
	VariantTransit  AssetVariant = "transit"
	VariantUtility  AssetVariant = "utility"
)

const (
	// MaxImprovements is the hotel level.
	MaxImprovements = 5

	// utilityExtraMultiplier applies when a card forced the extra charge,
	// regardless of how many utilities the owner holds.
	utilityExtraMultiplier = 10
)

// Asset is a purchasable board position. It is created once at board
// initialization and only mutated afterwards, never replaced.
type Asset struct {
	Name            string       `json:"name"`
	Group           string       `json:"group"`
	GroupSize       int          `json:"group_size"`
	Variant         AssetVariant `json:"variant"`
	Price           int          `json:"price"`
	MortgageValue   int          `json:"mortgage_value"`
	ImprovementCost int          `json:"improvement_cost"`
	RentSchedule    []int        `json:"rent_schedule"`

	Improvements int  `json:"improvements"`
	Mortgaged    bool `json:"mortgaged"`
	// OwnedInGroup caches how many assets of this group the current owner
	// holds. Recomputed by the owner's collection on every transfer.
	OwnedInGroup int `json:"owned_in_group"`
	// ExtraCharge doubles the next rent collection once, then clears.
	ExtraCharge bool `json:"extra_charge"`

	Owner *Player `json:"-"`
}

// Interest is the fee for assuming this asset while mortgaged.
func (that *Asset) Interest() int {
	return that.MortgageValue / 10
}

// UnmortgageCost is the mortgage value plus 10% interest, rounded down.
func (that *Asset) UnmortgageCost() int {
	return that.MortgageValue * 11 / 10
}

// Rent determines how much to charge a guest. utilityRoll must be a fresh
// dice roll; it is only consulted by the utility variant. Collecting an
// extra charge clears the flag.
func (that *Asset) Rent(utilityRoll int) int {
	switch that.Variant {
	case VariantTransit:
		rent := that.RentSchedule[that.OwnedInGroup-1]
		if that.ExtraCharge {
			that.ExtraCharge = false
			rent *= 2
		}
		return rent
	case VariantUtility:
		if that.ExtraCharge {
			that.ExtraCharge = false
			return utilityRoll * utilityExtraMultiplier
		}
		return utilityRoll * that.RentSchedule[that.OwnedInGroup-1]
	default:
		if that.ExtraCharge {
			that.ExtraCharge = false
			return that.RentSchedule[that.Improvements] * 2
		}
		if that.OwnedInGroup == that.GroupSize && that.Improvements == 0 {
			return 2 * that.RentSchedule[0]
		}
		return that.RentSchedule[that.Improvements]
	}
}

// Mortgage credits the owner with the mortgage value. Every asset in the
// group must be free of improvements first.
func (that *Asset) Mortgage() error {
	if that.Owner == nil {
		return apperror.ErrNotOwned
	}
	if that.Mortgaged {
		return apperror.ErrAlreadyMortgaged
	}
	for _, sibling := range that.Owner.Collection(that.Group) {
		if sibling.Improvements != 0 {
			return fmt.Errorf("%w: %s", apperror.ErrGroupHasImprovements, sibling.Name)
		}
	}
	that.Owner.Credit(that.MortgageValue)
	that.Mortgaged = true
	return nil
}

// Unmortgage debits the owner with the mortgage value plus interest. It
// never triggers liquidation; an owner who cannot pay keeps the mortgage.
func (that *Asset) Unmortgage() error {
	if that.Owner == nil {
		return apperror.ErrNotOwned
	}
	if !that.Mortgaged {
		return apperror.ErrNotMortgaged
	}
	if err := that.Owner.Pay(that.UnmortgageCost()); err != nil {
		return err
	}
	that.Mortgaged = false
	return nil
}

// Improve adds count improvement levels and returns the total cost for the
// caller to debit. The owner must hold the complete unmortgaged group and
// building must stay even across it.
func (that *Asset) Improve(count int) (int, error) {
	if that.Variant != VariantStandard {
		return 0, apperror.ErrImprovementNotSupported
	}
	if that.Owner == nil {
		return 0, apperror.ErrNotOwned
	}
	if count < 1 || that.Improvements+count > MaxImprovements {
		return 0, apperror.ErrAtMaximum
	}
	if that.OwnedInGroup != that.GroupSize {
		return 0, apperror.ErrIncompleteGroup
	}
	cost := that.ImprovementCost * count
	if that.Owner.Balance < cost {
		return 0, apperror.ErrInsufficientFunds
	}
	for _, sibling := range that.Owner.Collection(that.Group) {
		if sibling.Mortgaged {
			return 0, fmt.Errorf("%w: %s", apperror.ErrGroupMortgaged, sibling.Name)
		}
		if sibling != that && that.Improvements+count > sibling.Improvements+1 {
			return 0, fmt.Errorf("%w: %s has %d, %s would have %d",
				apperror.ErrUnevenBuilding, sibling.Name, sibling.Improvements, that.Name, that.Improvements+count)
		}
	}
	that.Improvements += count
	return cost, nil
}

// SellImprovement removes up to count improvement levels and returns the
// proceeds, half the build cost rounded down. Selling from an unimproved
// asset is a no-op returning zero.
func (that *Asset) SellImprovement(count int) (int, error) {
	if that.Variant != VariantStandard {
		return 0, apperror.ErrImprovementNotSupported
	}
	if that.Improvements == 0 {
		return 0, nil
	}
	if count > that.Improvements {
		count = that.Improvements
	}
	that.Improvements -= count
	return that.ImprovementCost * count / 2, nil
}

func (that *Asset) String() string {
	return that.Name
}
