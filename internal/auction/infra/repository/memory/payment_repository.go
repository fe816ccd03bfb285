package memory

import (
	"context"
	"sync"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
)

type PaymentRepository struct {
	mu       sync.Mutex
	payments []*domain.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) Save(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, payment)
	return nil
}

// All returns the saved payments in insertion order.
func (r *PaymentRepository) All() []*domain.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Payment, len(r.payments))
	copy(out, r.payments)
	return out
}
