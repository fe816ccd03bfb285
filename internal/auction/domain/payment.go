package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payment is generated once per closed auction, for the winning bid.
type Payment struct {
	ID        uuid.UUID
	AuctionID uuid.UUID
	Amount    float64
	DueDate   time.Time
	CreatedAt time.Time
}

func NewPayment(id, auctionID uuid.UUID, amount float64, dueDate time.Time, createdAt time.Time) *Payment {
	return &Payment{
		ID:        id,
		AuctionID: auctionID,
		Amount:    amount,
		DueDate:   dueDate,
		CreatedAt: createdAt,
	}
}
