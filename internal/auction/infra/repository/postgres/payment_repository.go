package postgres

import (
	"context"
	"fmt"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository implements domain.PaymentRepository interface
type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Save inserts a new payment, payments are never updated
func (r *PaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	query := `
        INSERT INTO payments (id, auction_id, amount, due_date, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.AuctionID,
		payment.Amount,
		payment.DueDate,
		payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment for auction %s: %w", payment.AuctionID, err)
	}
	return nil
}
