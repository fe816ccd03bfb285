package domain

import (
	"sync"
	"time"

	"github.com/cristianortiz/auctionBatch/internal/shared/clock"
	"github.com/cristianortiz/auctionBatch/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// maximum number of bids a single user may place in one auction
const MaxBidsPerUser = 5

// Auction is the aggregate root: an item up for bidding with its bids.
type Auction struct {
	ID   uuid.UUID
	Name string
	// calendar date the auction was opened, time of day is always zero
	CreatedAt time.Time
	Closed    bool
	// insertion order is the bidding order
	Bids []*Bid

	mu sync.Mutex
}

func NewAuction(id uuid.UUID, name string, createdAt time.Time) *Auction {
	return &Auction{
		ID:        id,
		Name:      name,
		CreatedAt: clock.DateOf(createdAt),
		Bids:      []*Bid{},
	}
}

// PlaceBid appends bid when it respects the bidding rules
func (a *Auction) PlaceBid(bid *Bid) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Closed {
		log.Warn("Bid rejected: auction closed",
			zap.String("auctionID", a.ID.String()),
			zap.String("userID", bid.UserID.String()),
		)
		return ErrAuctionClosed
	}
	if bid.Amount <= 0 {
		return ErrInvalidAmount
	}
	if n := len(a.Bids); n > 0 && a.Bids[n-1].UserID == bid.UserID {
		log.Warn("Bid rejected: consecutive bid by same user",
			zap.String("auctionID", a.ID.String()),
			zap.String("userID", bid.UserID.String()),
		)
		return ErrConsecutiveBid
	}
	if a.bidsBy(bid.UserID) >= MaxBidsPerUser {
		log.Warn("Bid rejected: bid limit reached",
			zap.String("auctionID", a.ID.String()),
			zap.String("userID", bid.UserID.String()),
			zap.Int("limit", MaxBidsPerUser),
		)
		return ErrBidLimitReached
	}

	bid.AuctionID = a.ID
	a.Bids = append(a.Bids, bid)
	return nil
}

func (a *Auction) bidsBy(userID uuid.UUID) int {
	count := 0
	for _, b := range a.Bids {
		if b.UserID == userID {
			count++
		}
	}
	return count
}

// Close marks the auction as closed. There is no way back.
func (a *Auction) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Closed = true
}

func (a *Auction) IsClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Closed
}

// AgeInDays counts whole calendar days from the creation date to today.
// Only the date parts are compared, locations are ignored.
func (a *Auction) AgeInDays(today time.Time) int {
	from := civil(a.CreatedAt)
	to := civil(today)
	return int(to.Sub(from).Hours() / 24)
}

// civil maps a date to UTC midnight so day arithmetic ignores DST shifts
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HighestBid returns the bid with the largest amount.
// On ties the earliest of them wins.
func (a *Auction) HighestBid() (*Bid, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.Bids) == 0 {
		return nil, ErrNoBids
	}
	highest := a.Bids[0]
	for _, b := range a.Bids[1:] {
		if b.Amount > highest.Amount {
			highest = b
		}
	}
	return highest, nil
}

// BidsSnapshot returns a copy of the bid slice.
func (a *Auction) BidsSnapshot() []*Bid {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Bid, len(a.Bids))
	copy(out, a.Bids)
	return out
}
