package application

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/cristianortiz/auctionBatch/internal/shared/clock"
	"github.com/cristianortiz/auctionBatch/internal/shared/logger"
	"github.com/cristianortiz/auctionBatch/internal/shared/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// DefaultCloseAfterDays is how long an auction stays open: one week.
const DefaultCloseAfterDays = 7

// ItemError is a failure on a single auction that did not stop the batch.
type ItemError struct {
	AuctionID uuid.UUID
	Op        string
	Err       error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("auction %s: %s: %v", e.AuctionID, e.Op, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// AuctionCloser closes every open auction older than the threshold, persists it and notifies.
// The closed total belongs to the instance, build a new one for each run.
type AuctionCloser struct {
	auctions domain.AuctionRepository
	sender   domain.EmailSender
	clock    clock.Clock
	metrics  metrics.Metrics

	thresholdDays     int
	isolateNotifyErrs bool

	totalClosed int
	failures    []*ItemError
}

type CloserOption func(*AuctionCloser)

func WithClock(c clock.Clock) CloserOption {
	return func(ac *AuctionCloser) { ac.clock = c }
}

// WithThreshold sets the minimum age, in days, for an auction to be closed.
func WithThreshold(days int) CloserOption {
	return func(ac *AuctionCloser) { ac.thresholdDays = days }
}

func WithCloserMetrics(m metrics.Metrics) CloserOption {
	return func(ac *AuctionCloser) { ac.metrics = m }
}

// WithNotificationIsolation records notification failures per auction instead of aborting the run.
func WithNotificationIsolation() CloserOption {
	return func(ac *AuctionCloser) { ac.isolateNotifyErrs = true }
}

func NewAuctionCloser(auctions domain.AuctionRepository, sender domain.EmailSender, opts ...CloserOption) *AuctionCloser {
	ac := &AuctionCloser{
		auctions:      auctions,
		sender:        sender,
		clock:         clock.SystemClock{},
		metrics:       metrics.Noop{},
		thresholdDays: DefaultCloseAfterDays,
	}
	for _, opt := range opts {
		opt(ac)
	}
	return ac
}

// Close runs one pass over the open auctions.
// A failed update is recorded and skipped: that auction is not notified and the
// pass goes on. A failed notification ends the pass unless isolation is enabled.
func (ac *AuctionCloser) Close(ctx context.Context) error {
	start := time.Now()
	err := ac.close(ctx)
	ac.metrics.RecordBatchRun("close_auctions", err == nil, time.Since(start))
	return err
}

func (ac *AuctionCloser) close(ctx context.Context) error {
	open, err := ac.auctions.Open(ctx)
	if err != nil {
		log.Error("AuctionCloser: Failed to fetch open auctions", zap.Error(err))
		return fmt.Errorf("auction closer: failed to fetch open auctions: %w", err)
	}

	today := ac.clock.Today()
	log.Info("AuctionCloser: Starting run",
		zap.Int("openAuctions", len(open)),
		zap.Time("today", today),
		zap.Int("thresholdDays", ac.thresholdDays),
	)

	for _, auction := range open {
		if auction.AgeInDays(today) < ac.thresholdDays {
			continue
		}

		// flag goes first, persistence sees the closed auction
		auction.Close()

		if err := ac.auctions.Update(ctx, auction); err != nil {
			ac.recordFailure(auction, "update", err)
			ac.metrics.RecordAuctionClosed("update_failed")
			continue
		}
		ac.totalClosed++
		ac.metrics.RecordAuctionClosed("success")

		if err := ac.sender.Send(ctx, auction); err != nil {
			if ac.isolateNotifyErrs {
				ac.recordFailure(auction, "notify", err)
				continue
			}
			log.Error("AuctionCloser: Failed to notify, aborting run",
				zap.String("auctionID", auction.ID.String()),
				zap.Error(err),
			)
			return fmt.Errorf("auction closer: failed to notify auction %s: %w", auction.ID, err)
		}

		log.Info("AuctionCloser: Auction closed",
			zap.String("auctionID", auction.ID.String()),
			zap.String("name", auction.Name),
		)
	}

	log.Info("AuctionCloser: Run finished",
		zap.Int("closed", ac.totalClosed),
		zap.Int("failures", len(ac.failures)),
	)
	return nil
}

func (ac *AuctionCloser) recordFailure(auction *domain.Auction, op string, err error) {
	log.Warn("AuctionCloser: Skipping auction",
		zap.String("auctionID", auction.ID.String()),
		zap.String("op", op),
		zap.Error(err),
	)
	ac.failures = append(ac.failures, &ItemError{AuctionID: auction.ID, Op: op, Err: err})
}

// TotalClosed is the number of auctions closed and persisted by this instance.
func (ac *AuctionCloser) TotalClosed() int { return ac.totalClosed }

// Failures lists the auctions skipped so far, in processing order.
func (ac *AuctionCloser) Failures() []*ItemError {
	out := make([]*ItemError, len(ac.failures))
	copy(out, ac.failures)
	return out
}
