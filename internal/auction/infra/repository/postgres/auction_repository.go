package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuctionRepository implements domain.AuctionRepository interface
type AuctionRepository struct {
	pool *pgxpool.Pool
}

// NewAuctionRepository creates a new instance of AuctionRepository
func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{pool: pool}
}

// Open returns every auction not yet closed, with its bids.
func (r *AuctionRepository) Open(ctx context.Context) ([]*domain.Auction, error) {
	return r.byState(ctx, false)
}

// Closed returns every closed auction, with its bids.
func (r *AuctionRepository) Closed(ctx context.Context) ([]*domain.Auction, error) {
	return r.byState(ctx, true)
}

func (r *AuctionRepository) byState(ctx context.Context, closed bool) ([]*domain.Auction, error) {
	query := `
        SELECT id, name, created_on, closed
        FROM auctions
        WHERE closed = $1
        ORDER BY created_on ASC, id ASC
    `
	rows, err := r.pool.Query(ctx, query, closed)
	if err != nil {
		return nil, fmt.Errorf("query auctions: %w", err)
	}
	defer rows.Close()

	var auctions []*domain.Auction
	byID := make(map[uuid.UUID]*domain.Auction)
	for rows.Next() {
		a := &domain.Auction{Bids: []*domain.Bid{}}
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.Closed); err != nil {
			return nil, fmt.Errorf("scan auction: %w", err)
		}
		auctions = append(auctions, a)
		byID[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(auctions) == 0 {
		return auctions, nil
	}
	if err := r.loadBids(ctx, byID); err != nil {
		return nil, err
	}
	return auctions, nil
}

// loadBids fills the bids of the given auctions in bidding order, one query for all of them
func (r *AuctionRepository) loadBids(ctx context.Context, byID map[uuid.UUID]*domain.Auction) error {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id.String())
	}

	query := `
        SELECT id, auction_id, user_id, amount, timestamp
        FROM bids
        WHERE auction_id = ANY($1::uuid[])
        ORDER BY timestamp ASC, id ASC
    `
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("query bids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		bid := &domain.Bid{}
		if err := rows.Scan(&bid.ID, &bid.AuctionID, &bid.UserID, &bid.Amount, &bid.Timestamp); err != nil {
			return fmt.Errorf("scan bid: %w", err)
		}
		if a, ok := byID[bid.AuctionID]; ok {
			a.Bids = append(a.Bids, bid)
		}
	}
	return rows.Err()
}

// Update persists the mutable fields of an auction. Bids are written by the bidding side.
func (r *AuctionRepository) Update(ctx context.Context, auction *domain.Auction) error {
	query := `
        UPDATE auctions
        SET name = $2, closed = $3, updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.pool.Exec(ctx, query, auction.ID, auction.Name, auction.IsClosed())
	if err != nil {
		return fmt.Errorf("update auction %s: %w", auction.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

// GetByID returns one auction with its bids.
func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	query := `
        SELECT id, name, created_on, closed
        FROM auctions
        WHERE id = $1
    `
	a := &domain.Auction{Bids: []*domain.Bid{}}
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.Closed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("get auction %s: %w", id, err)
	}
	if err := r.loadBids(ctx, map[uuid.UUID]*domain.Auction{a.ID: a}); err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new auction, its bids are saved by BidRepository
func (r *AuctionRepository) Create(ctx context.Context, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, name, created_on, closed)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.pool.Exec(ctx, query, auction.ID, auction.Name, auction.CreatedAt, auction.IsClosed())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAuctionExists
		}
		return fmt.Errorf("insert auction %s: %w", auction.ID, err)
	}
	return nil
}
