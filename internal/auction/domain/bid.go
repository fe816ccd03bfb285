package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bid is a monetary offer made by a user for an auction.
// Entity inside the Auction aggregate
type Bid struct {
	ID        uuid.UUID
	AuctionID uuid.UUID
	UserID    uuid.UUID //who makes the bid
	Amount    float64
	Timestamp time.Time
}

// NewBid creates a new Bid instance, AuctionID is set when the auction accepts it
func NewBid(id, userID uuid.UUID, amount float64, timestamp time.Time) *Bid {
	return &Bid{
		ID:        id,
		UserID:    userID,
		Amount:    amount,
		Timestamp: timestamp,
	}
}
