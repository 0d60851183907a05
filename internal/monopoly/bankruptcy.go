package monopoly

import (
	"errors"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
)

// finalizeBankruptcy removes the loser from the rotation and disposes of
// their estate. Owing the bank puts every asset, cleared of its mortgage,
// up for auction; owing a player transfers everything directly, with the
// usual mortgage-assumption decision per mortgaged asset. Jail cards follow
// the same route.
func (that *Game) finalizeBankruptcy(loser, creditor *entity.Player) error {
	that.Phase = PhasePlayerBankrupt
	loser.Creditor = nil
	that.Lost = append(that.Lost, loser)

	estate := loser.OwnedAssets()
	for _, asset := range estate {
		loser.RemoveAsset(asset)
	}

	var err error
	if creditor == nil || !that.IsActive(creditor) {
		err = that.auctionEstate(loser, estate)
	} else {
		err = that.transferEstate(loser, creditor, estate)
	}

	loser.ChanceJailCards = 0
	loser.ChestJailCards = 0

	if that.IsOver() {
		that.Phase = PhaseGameOver
	}
	return err
}

// auctionEstate re-auctions a bank-claimed estate one asset at a time.
// Unsold assets stay with the bank.
func (that *Game) auctionEstate(loser *entity.Player, estate []*entity.Asset) error {
	for _, asset := range estate {
		asset.Mortgaged = false
		asset.Improvements = 0

		bidders := that.ActivePlayers()
		if len(bidders) < 2 {
			continue
		}
		winner, bid, err := that.RunAuction(asset, bidders)
		if err != nil {
			return err
		}
		if winner == nil {
			continue
		}
		if err = that.settleAcquisition(winner, asset, bid); err != nil {
			return err
		}
	}
	return nil
}

// transferEstate hands the whole estate to the creditor. If assuming the
// mortgages bankrupts the creditor in turn, the cascade finalizes against
// the bank and the rest of the estate stays unowned with mortgages cleared.
func (that *Game) transferEstate(loser, creditor *entity.Player, estate []*entity.Asset) error {
	creditor.ChanceJailCards += loser.ChanceJailCards
	creditor.ChestJailCards += loser.ChestJailCards

	for i, asset := range estate {
		err := that.transferAsset(creditor, asset)
		if err == nil {
			continue
		}
		if errors.Is(err, apperror.ErrGameExited) {
			return err
		}
		if errors.Is(err, apperror.ErrInsolvent) {
			for _, rest := range estate[i:] {
				rest.Mortgaged = false
			}
			return that.finalizeBankruptcy(creditor, nil)
		}
		return err
	}
	return nil
}
