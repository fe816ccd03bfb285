package application

import (
	"context"
	"sync"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/cristianortiz/auctionBatch/internal/shared/clock"
	"github.com/cristianortiz/auctionBatch/internal/shared/metrics"
)

// CloseReport is the outcome of one closing run
type CloseReport struct {
	Closed   int          `json:"closed"`
	Failures []*ItemError `json:"-"`
}

// PaymentReport is the outcome of one payment run
type PaymentReport struct {
	Payments []*domain.Payment `json:"-"`
}

func (r PaymentReport) Generated() int { return len(r.Payments) }

// BatchService exposes the batch use cases to the infra layer (http, cron)
type BatchService interface {
	// CloseExpired runs a fresh AuctionCloser, so totals never leak between runs
	CloseExpired(ctx context.Context) (CloseReport, error)
	GeneratePayments(ctx context.Context) (PaymentReport, error)
}

// BatchDeps groups the collaborators shared by both batches
type BatchDeps struct {
	Auctions  domain.AuctionRepository
	Payments  domain.PaymentRepository
	Sender    domain.EmailSender
	Evaluator domain.Evaluator
	Clock     clock.Clock
	Metrics   metrics.Metrics
	// zero or less means DefaultCloseAfterDays
	CloseAfterDays int
}

// concret implementation of BatchService
type batchService struct {
	deps BatchDeps
	// runs never overlap, whoever triggers them
	mu sync.Mutex
}

func NewBatchService(deps BatchDeps) BatchService {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Noop{}
	}
	if deps.Evaluator == nil {
		deps.Evaluator = domain.BidEvaluator{}
	}
	// an unset threshold would close auctions opened today
	if deps.CloseAfterDays <= 0 {
		deps.CloseAfterDays = DefaultCloseAfterDays
	}
	return &batchService{deps: deps}
}

// CloseExpired implements BatchService.
func (s *batchService) CloseExpired(ctx context.Context) (CloseReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	closer := NewAuctionCloser(s.deps.Auctions, s.deps.Sender,
		WithClock(s.deps.Clock),
		WithThreshold(s.deps.CloseAfterDays),
		WithCloserMetrics(s.deps.Metrics),
	)
	err := closer.Close(ctx)
	return CloseReport{Closed: closer.TotalClosed(), Failures: closer.Failures()}, err
}

// GeneratePayments implements BatchService.
func (s *batchService) GeneratePayments(ctx context.Context) (PaymentReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	generator := NewPaymentGenerator(s.deps.Auctions, s.deps.Payments, s.deps.Evaluator,
		WithGeneratorClock(s.deps.Clock),
		WithGeneratorMetrics(s.deps.Metrics),
	)
	payments, err := generator.Generate(ctx)
	return PaymentReport{Payments: payments}, err
}
