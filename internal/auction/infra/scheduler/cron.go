package scheduler

import (
	"context"
	"fmt"

	"github.com/cristianortiz/auctionBatch/internal/auction/application"
	"github.com/cristianortiz/auctionBatch/internal/shared/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// CronScheduler triggers the batch runs on cron schedules (seconds field optional).
type CronScheduler struct {
	cron    *cron.Cron
	batches application.BatchService
}

func NewCronScheduler(batches application.BatchService) *CronScheduler {
	return &CronScheduler{
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
		batches: batches,
	}
}

// Start registers both jobs and starts the cron loop. Runs stop once ctx is done.
func (s *CronScheduler) Start(ctx context.Context, closeSpec, paymentSpec string) error {
	if _, err := s.cron.AddFunc(closeSpec, func() { s.runClose(ctx) }); err != nil {
		return fmt.Errorf("invalid close schedule %q: %w", closeSpec, err)
	}
	if _, err := s.cron.AddFunc(paymentSpec, func() { s.runPayments(ctx) }); err != nil {
		return fmt.Errorf("invalid payment schedule %q: %w", paymentSpec, err)
	}

	log.Info("Starting batch scheduler",
		zap.String("closeSchedule", closeSpec),
		zap.String("paymentSchedule", paymentSpec),
	)
	s.cron.Start()
	return nil
}

// Stop waits for running jobs to finish.
func (s *CronScheduler) Stop() {
	log.Info("Stopping batch scheduler")
	<-s.cron.Stop().Done()
}

func (s *CronScheduler) runClose(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	report, err := s.batches.CloseExpired(ctx)
	if err != nil {
		log.Error("Scheduled close run failed", zap.Int("closed", report.Closed), zap.Error(err))
		return
	}
	log.Info("Scheduled close run done",
		zap.Int("closed", report.Closed),
		zap.Int("failures", len(report.Failures)),
	)
}

func (s *CronScheduler) runPayments(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	report, err := s.batches.GeneratePayments(ctx)
	if err != nil {
		log.Error("Scheduled payment run failed", zap.Int("generated", report.Generated()), zap.Error(err))
		return
	}
	log.Info("Scheduled payment run done", zap.Int("generated", report.Generated()))
}
