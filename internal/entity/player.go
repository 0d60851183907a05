package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
)

// Group names, in board order. Collections iterate in this order so that
// every walk over a player's holdings is deterministic.
const (
	GroupBrown     = "Brown"
	GroupLightBlue = "Light Blue"
	GroupPink      = "Pink"
	GroupOrange    = "Orange"
	GroupRed       = "Red"
	GroupYellow    = "Yellow"
	GroupGreen     = "Green"
	GroupDarkBlue  = "Dark Blue"
	GroupTransit   = "Railroads"
	GroupUtilities = "Utilities"
)

var GroupOrder = []string{
	GroupBrown, GroupLightBlue, GroupPink, GroupOrange,
	GroupRed, GroupYellow, GroupGreen, GroupDarkBlue,
	GroupTransit, GroupUtilities,
}

const StartingBalance = 1500

// Player owns a wallet balance and a per-group collection of assets.
// The balance may only go negative transiently inside a debit while the
// liquidation protocol runs.
type Player struct {
	Name      string `json:"name"`
	TurnIndex int    `json:"turn_index"`
	Position  int    `json:"position"`
	Balance   int    `json:"balance"`

	ChanceJailCards int `json:"chance_jail_cards"`
	ChestJailCards  int `json:"chest_jail_cards"`

	InJail       bool `json:"in_jail"`
	JailTurns    int  `json:"jail_turns"`
	DoublesCount int  `json:"doubles_count"`

	// Creditor routes liquidation proceeds and bankruptcy transfers.
	// nil means the bank.
	Creditor *Player `json:"-"`

	// OnBalanceChanged, when set, fires after every balance mutation so a
	// surrounding UI can render it.
	OnBalanceChanged func(balance int) `json:"-"`

	collections map[string][]*Asset
}

func NewPlayer(name string, turnIndex, balance int) *Player {
	player := &Player{
		Name:        name,
		TurnIndex:   turnIndex,
		Balance:     balance,
		collections: make(map[string][]*Asset, len(GroupOrder)),
	}
	for _, group := range GroupOrder {
		player.collections[group] = nil
	}
	return player
}

// Credit increases the balance.
func (that *Player) Credit(amount int) {
	that.Balance += amount
	that.notifyBalance()
}

// Pay subtracts amount when the balance covers it. It never liquidates;
// the ledger layer wraps it with the liquidation protocol.
func (that *Player) Pay(amount int) error {
	if that.Balance < amount {
		return fmt.Errorf("%w: have %d, need %d", apperror.ErrInsufficientFunds, that.Balance, amount)
	}
	that.Balance -= amount
	that.notifyBalance()
	return nil
}

func (that *Player) notifyBalance() {
	if that.OnBalanceChanged != nil {
		that.OnBalanceChanged(that.Balance)
	}
}

// AddAsset inserts the asset into its group collection, takes ownership and
// recounts the group cache.
func (that *Player) AddAsset(asset *Asset) {
	that.collections[asset.Group] = append(that.collections[asset.Group], asset)
	asset.Owner = that
	that.recountGroup(asset.Group)
}

// RemoveAsset drops the asset from its group collection, clears ownership
// and recounts the cache for the remaining members.
func (that *Player) RemoveAsset(asset *Asset) {
	collection := that.collections[asset.Group]
	for i, held := range collection {
		if held == asset {
			that.collections[asset.Group] = append(collection[:i], collection[i+1:]...)
			break
		}
	}
	asset.Owner = nil
	asset.OwnedInGroup = 0
	that.recountGroup(asset.Group)
}

func (that *Player) recountGroup(group string) {
	count := len(that.collections[group])
	for _, held := range that.collections[group] {
		held.OwnedInGroup = count
	}
}

// Collection returns the player's assets of one group.
func (that *Player) Collection(group string) []*Asset {
	return that.collections[group]
}

// CountGroup reports how many assets of the group the player holds.
func (that *Player) CountGroup(group string) int {
	return len(that.collections[group])
}

// OwnedAssets lists every held asset in group order.
func (that *Player) OwnedAssets() []*Asset {
	var assets []*Asset
	for _, group := range GroupOrder {
		assets = append(assets, that.collections[group]...)
	}
	return assets
}

// HasLiquidable reports whether any asset can still raise money: an
// unmortgaged deed or a sellable improvement.
func (that *Player) HasLiquidable() bool {
	for _, asset := range that.OwnedAssets() {
		if !asset.Mortgaged || asset.Improvements > 0 {
			return true
		}
	}
	return false
}

// HasJailCard reports whether the player holds any get-out-of-jail card.
func (that *Player) HasJailCard() bool {
	return that.ChanceJailCards > 0 || that.ChestJailCards > 0
}

func (that *Player) String() string {
	return that.Name
}

var ErrNameTaken = errors.New("player name is taken or reserved")

// NameRegistry reserves player names for one game instance.
type NameRegistry struct {
	taken map[string]struct{}
}

// NewNameRegistry seeds the registry with names no player may claim.
func NewNameRegistry(reserved ...string) *NameRegistry {
	registry := &NameRegistry{taken: make(map[string]struct{}, len(reserved))}
	for _, name := range reserved {
		registry.taken[strings.ToLower(name)] = struct{}{}
	}
	return registry
}

// Reserve claims a name, failing on duplicates, reserved words and blanks.
func (that *NameRegistry) Reserve(name string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("%w: empty name", ErrNameTaken)
	}
	if _, ok := that.taken[key]; ok {
		return fmt.Errorf("%w: %s", ErrNameTaken, name)
	}
	that.taken[key] = struct{}{}
	return nil
}
