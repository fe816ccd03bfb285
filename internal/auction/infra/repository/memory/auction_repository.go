package memory

import (
	"context"
	"sync"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/google/uuid"
)

// AuctionRepository keeps auctions in process memory. The persisted closed state is
// tracked apart from the entity, so a Close without Update is not visible to readers.
type AuctionRepository struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	auctions map[uuid.UUID]*domain.Auction
	closed   map[uuid.UUID]bool
}

func NewAuctionRepository() *AuctionRepository {
	return &AuctionRepository{
		auctions: make(map[uuid.UUID]*domain.Auction),
		closed:   make(map[uuid.UUID]bool),
	}
}

// Add stores a new auction, used for seeding.
func (r *AuctionRepository) Add(auction *domain.Auction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.auctions[auction.ID]; !ok {
		r.order = append(r.order, auction.ID)
	}
	r.auctions[auction.ID] = auction
	r.closed[auction.ID] = auction.IsClosed()
}

func (r *AuctionRepository) Open(_ context.Context) ([]*domain.Auction, error) {
	return r.byState(false), nil
}

func (r *AuctionRepository) Closed(_ context.Context) ([]*domain.Auction, error) {
	return r.byState(true), nil
}

func (r *AuctionRepository) byState(closed bool) []*domain.Auction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Auction{}
	for _, id := range r.order {
		if r.closed[id] == closed {
			out = append(out, r.auctions[id])
		}
	}
	return out
}

func (r *AuctionRepository) Update(_ context.Context, auction *domain.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.auctions[auction.ID]; !ok {
		return domain.ErrAuctionNotFound
	}
	r.auctions[auction.ID] = auction
	r.closed[auction.ID] = auction.IsClosed()
	return nil
}

func (r *AuctionRepository) Create(_ context.Context, auction *domain.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.auctions[auction.ID]; ok {
		return domain.ErrAuctionExists
	}
	r.order = append(r.order, auction.ID)
	r.auctions[auction.ID] = auction
	r.closed[auction.ID] = auction.IsClosed()
	return nil
}

// GetByID returns a detached copy with the stored state, bids placed on it are not
// stored until a BidRepository saves them.
func (r *AuctionRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.auctions[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	c := domain.NewAuction(stored.ID, stored.Name, stored.CreatedAt)
	c.Bids = stored.BidsSnapshot()
	if r.closed[id] {
		c.Close()
	}
	return c, nil
}

// appendBid adds bid to the stored auction, checking the rules again on the stored state
func (r *AuctionRepository) appendBid(bid *domain.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.auctions[bid.AuctionID]
	if !ok {
		return domain.ErrAuctionNotFound
	}
	if r.closed[bid.AuctionID] {
		return domain.ErrAuctionClosed
	}
	return stored.PlaceBid(bid)
}
