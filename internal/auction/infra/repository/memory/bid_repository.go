package memory

import (
	"context"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
)

// BidRepository writes bids into the auctions held by an AuctionRepository,
// so the batches see them the way they see bids loaded from postgres.
type BidRepository struct {
	auctions *AuctionRepository
}

func NewBidRepository(auctions *AuctionRepository) *BidRepository {
	return &BidRepository{auctions: auctions}
}

func (r *BidRepository) Save(_ context.Context, bid *domain.Bid) error {
	return r.auctions.appendBid(bid)
}
