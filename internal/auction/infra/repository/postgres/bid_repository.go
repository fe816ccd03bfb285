package postgres

import (
	"context"
	"fmt"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository implements domain.BidRepository interface
type BidRepository struct {
	pool *pgxpool.Pool
}

// NewBidRepository creates new instance of BidRepository.
func NewBidRepository(pool *pgxpool.Pool) *BidRepository {
	return &BidRepository{pool: pool}
}

// Save inserts a bid only while its auction is still open, a close that won the race
// turns the insert into domain.ErrAuctionClosed.
func (r *BidRepository) Save(ctx context.Context, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (id, auction_id, user_id, amount, timestamp)
        SELECT $1::uuid, $2::uuid, $3::uuid, $4::numeric, $5::timestamptz
        WHERE EXISTS (SELECT 1 FROM auctions WHERE id = $2 AND NOT closed)
    `
	tag, err := r.pool.Exec(ctx, query,
		bid.ID,
		bid.AuctionID,
		bid.UserID,
		bid.Amount,
		bid.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert bid %s: %w", bid.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAuctionClosed
	}
	return nil
}
