package application

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/cristianortiz/auctionBatch/internal/shared/clock"
	"github.com/cristianortiz/auctionBatch/internal/shared/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGenerator creates the payment of the winning bid for every closed auction.
// Unlike AuctionCloser it does not isolate failures: the first one ends the run.
type PaymentGenerator struct {
	auctions  domain.AuctionRepository
	payments  domain.PaymentRepository
	evaluator domain.Evaluator
	clock     clock.Clock
	metrics   metrics.Metrics
	newID     func() uuid.UUID
}

type GeneratorOption func(*PaymentGenerator)

func WithGeneratorClock(c clock.Clock) GeneratorOption {
	return func(g *PaymentGenerator) { g.clock = c }
}

func WithGeneratorMetrics(m metrics.Metrics) GeneratorOption {
	return func(g *PaymentGenerator) { g.metrics = m }
}

func NewPaymentGenerator(auctions domain.AuctionRepository,
	payments domain.PaymentRepository,
	evaluator domain.Evaluator,
	opts ...GeneratorOption) *PaymentGenerator {

	g := &PaymentGenerator{
		auctions:  auctions,
		payments:  payments,
		evaluator: evaluator,
		clock:     clock.SystemClock{},
		metrics:   metrics.Noop{},
		newID:     uuid.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate saves one payment per closed auction and returns the saved payments.
// On error the payments saved before the failure are returned with it.
func (g *PaymentGenerator) Generate(ctx context.Context) ([]*domain.Payment, error) {
	start := time.Now()
	payments, err := g.generate(ctx)
	g.metrics.RecordBatchRun("generate_payments", err == nil, time.Since(start))
	return payments, err
}

func (g *PaymentGenerator) generate(ctx context.Context) ([]*domain.Payment, error) {
	closed, err := g.auctions.Closed(ctx)
	if err != nil {
		log.Error("PaymentGenerator: Failed to fetch closed auctions", zap.Error(err))
		return nil, fmt.Errorf("payment generator: failed to fetch closed auctions: %w", err)
	}

	today := g.clock.Today()
	dueDate := domain.FirstBusinessDay(today)
	log.Info("PaymentGenerator: Starting run",
		zap.Int("closedAuctions", len(closed)),
		zap.Time("dueDate", dueDate),
	)

	generated := make([]*domain.Payment, 0, len(closed))
	for _, auction := range closed {
		evaluation, err := g.evaluator.Evaluate(auction)
		if err != nil {
			g.metrics.RecordPaymentGenerated("evaluate_failed")
			log.Error("PaymentGenerator: Failed to evaluate auction",
				zap.String("auctionID", auction.ID.String()),
				zap.Error(err),
			)
			return generated, fmt.Errorf("payment generator: failed to evaluate auction %s: %w", auction.ID, err)
		}
		if evaluation.Highest == nil {
			g.metrics.RecordPaymentGenerated("evaluate_failed")
			log.Error("PaymentGenerator: Evaluation without a winning bid",
				zap.String("auctionID", auction.ID.String()),
			)
			return generated, fmt.Errorf("payment generator: failed to evaluate auction %s: %w", auction.ID, domain.ErrNoBids)
		}

		payment := domain.NewPayment(g.newID(), auction.ID, evaluation.Highest.Amount, dueDate, today)
		if err := g.payments.Save(ctx, payment); err != nil {
			g.metrics.RecordPaymentGenerated("save_failed")
			log.Error("PaymentGenerator: Failed to save payment",
				zap.String("auctionID", auction.ID.String()),
				zap.Float64("amount", payment.Amount),
				zap.Error(err),
			)
			return generated, fmt.Errorf("payment generator: failed to save payment for auction %s: %w", auction.ID, err)
		}
		g.metrics.RecordPaymentGenerated("success")
		generated = append(generated, payment)

		log.Info("PaymentGenerator: Payment generated",
			zap.String("auctionID", auction.ID.String()),
			zap.String("paymentID", payment.ID.String()),
			zap.Float64("amount", payment.Amount),
			zap.Float64s("topBids", amounts(evaluation.Top)),
			zap.Float64p("lowestBid", lowestAmount(evaluation)),
		)
	}

	return generated, nil
}

func amounts(bids []*domain.Bid) []float64 {
	out := make([]float64, 0, len(bids))
	for _, b := range bids {
		out = append(out, b.Amount)
	}
	return out
}

func lowestAmount(e domain.Evaluation) *float64 {
	if e.Lowest == nil {
		return nil
	}
	return &e.Lowest.Amount
}
