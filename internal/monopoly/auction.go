package monopoly

import (
	"errors"

	"github.com/rocketscienceinc/monopoly-engine/internal/apperror"
	"github.com/rocketscienceinc/monopoly-engine/internal/entity"
)

// BidIncrement is the fixed step every bid must clear.
const BidIncrement = 10

// Auction runs round-robin ascending bidding for an unsold asset. Bids must
// strictly exceed the current high bid in increments of BidIncrement;
// anything else counts as a withdrawal.
type Auction struct {
	Asset      *entity.Asset
	Bidders    []*entity.Player
	HighBid    int
	HighBidder *entity.Player

	withdrawn map[string]bool
}

// NewAuction prepares an auction among the eligible bidders.
func NewAuction(asset *entity.Asset, bidders []*entity.Player) *Auction {
	return &Auction{
		Asset:     asset,
		Bidders:   bidders,
		withdrawn: make(map[string]bool, len(bidders)),
	}
}

// remaining counts bidders who have not withdrawn.
func (that *Auction) remaining() int {
	count := 0
	for _, bidder := range that.Bidders {
		if !that.withdrawn[bidder.Name] {
			count++
		}
	}
	return count
}

// MinimumBid is the lowest acceptable next bid.
func (that *Auction) MinimumBid() int {
	return that.HighBid + BidIncrement
}

// RunAuction auctions an asset among the bidders and returns the winner and
// winning bid. A nil winner means nobody bid and the asset stays unowned.
// The caller performs the acquisition.
func (that *Game) RunAuction(asset *entity.Asset, bidders []*entity.Player) (*entity.Player, int, error) {
	that.Phase = PhaseAuctionInProgress
	auction := NewAuction(asset, bidders)

	for auction.remaining() > 1 {
		for _, bidder := range auction.Bidders {
			if auction.withdrawn[bidder.Name] || bidder == auction.HighBidder {
				continue
			}

			bid, err := that.strategyFor(bidder).DecideBid(auction)
			if err != nil {
				if errors.Is(err, apperror.ErrGameExited) {
					return nil, 0, err
				}
				auction.withdrawn[bidder.Name] = true
				continue
			}

			if bid < auction.MinimumBid() || bid%BidIncrement != 0 {
				auction.withdrawn[bidder.Name] = true
				continue
			}
			auction.HighBid = bid
			auction.HighBidder = bidder
		}
	}

	if auction.HighBidder == nil || auction.HighBid == 0 {
		return nil, 0, nil
	}
	return auction.HighBidder, auction.HighBid, nil
}
