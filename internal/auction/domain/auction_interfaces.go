package domain

import (
	"context"

	"github.com/google/uuid"
)

type AuctionRepository interface {
	// Open returns the auctions still accepting bids
	Open(ctx context.Context) ([]*Auction, error)
	Closed(ctx context.Context) ([]*Auction, error)
	Update(ctx context.Context, auction *Auction) error
}

type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
}

// EmailSender notifies the interested parties that an auction was closed.
type EmailSender interface {
	Send(ctx context.Context, auction *Auction) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// AuctionCatalog is the bidding side view of the auctions: single lookups and creation.
type AuctionCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Auction, error)
	Create(ctx context.Context, auction *Auction) error
}

// BidRepository only inserts bids, the auction rules are checked by Auction.PlaceBid
type BidRepository interface {
	Save(ctx context.Context, bid *Bid) error
}

type UserRegistry interface {
	UserRepository
	Create(ctx context.Context, user *User) error
}
