package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianortiz/auctionBatch/internal/auction/application"
	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/cristianortiz/auctionBatch/internal/auction/infra/email"
	"github.com/cristianortiz/auctionBatch/internal/auction/infra/httpapi"
	"github.com/cristianortiz/auctionBatch/internal/auction/infra/repository/memory"
	"github.com/cristianortiz/auctionBatch/internal/auction/infra/repository/postgres"
	"github.com/cristianortiz/auctionBatch/internal/auction/infra/scheduler"
	auctionws "github.com/cristianortiz/auctionBatch/internal/auction/infra/websocket"
	"github.com/cristianortiz/auctionBatch/internal/shared/clock"
	"github.com/cristianortiz/auctionBatch/internal/shared/config"
	"github.com/cristianortiz/auctionBatch/internal/shared/db"
	"github.com/cristianortiz/auctionBatch/internal/shared/db/migrations"
	"github.com/cristianortiz/auctionBatch/internal/shared/httpserver"
	"github.com/cristianortiz/auctionBatch/internal/shared/logger"
	"github.com/cristianortiz/auctionBatch/internal/shared/metrics"
	"github.com/cristianortiz/auctionBatch/internal/shared/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type repositories struct {
	auctions domain.AuctionRepository
	catalog  domain.AuctionCatalog
	bids     domain.BidRepository
	payments domain.PaymentRepository
	users    domain.UserRegistry
	close    func()
}

func main() {
	logger := logger.GetLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	logger.Info("Starting auction batch service...",
		zap.String("env", cfg.AppEnv),
		zap.String("storage", cfg.Storage),
		zap.String("notifier", cfg.Notifier),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := buildRepositories(ctx, cfg)
	if err != nil {
		logger.Fatal("Storage setup failed", zap.Error(err))
	}
	defer repos.close()

	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheusMetrics(reg, "auction-batch")

	hub := websocket.NewHub()
	go hub.Run(ctx)

	batches := application.NewBatchService(application.BatchDeps{
		Auctions:       repos.auctions,
		Payments:       repos.payments,
		Sender:         buildSender(cfg, repos.users, hub),
		Evaluator:      domain.BidEvaluator{},
		Clock:          clock.SystemClock{},
		Metrics:        m,
		CloseAfterDays: cfg.CloseAfterDays,
	})

	bidding := application.NewAuctionService(application.AuctionDeps{
		Auctions: repos.catalog,
		Bids:     repos.bids,
		Users:    repos.users,
		Clock:    clock.SystemClock{},
	})

	cron := scheduler.NewCronScheduler(batches)
	if err := cron.Start(ctx, cfg.CloseSchedule, cfg.PaymentSchedule); err != nil {
		logger.Fatal("Scheduler setup failed", zap.Error(err))
	}
	defer cron.Stop()

	server := httpserver.NewServer(m, reg)
	httpapi.Register(server.App(),
		httpapi.NewJobHandler(batches),
		httpapi.NewAuctionHandler(bidding, auctionws.NewLiveSender(hub)),
		auctionws.NewAuctionWSHandler(hub),
	)
	if err := server.Start(ctx, cfg.HTTPAddr); err != nil {
		logger.Error("HTTP server failed", zap.Error(err))
	}
}

func buildRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if cfg.Storage == "memory" {
		auctions := memory.NewAuctionRepository()
		return repositories{
			auctions: auctions,
			catalog:  auctions,
			bids:     memory.NewBidRepository(auctions),
			payments: memory.NewPaymentRepository(),
			users:    memory.NewUserRepository(),
			close:    func() {},
		}, nil
	}

	log := logger.GetLogger()
	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(cfg.MigrationsPath, cfg.PostgresDSN()); err != nil {
		return repositories{}, err
	}
	log.Info("Database migrations completed successfully.")

	pool, err := db.GetPostgresDBPool(ctx, cfg.PostgresDSN())
	if err != nil {
		return repositories{}, err
	}
	auctions := postgres.NewAuctionRepository(pool)
	return repositories{
		auctions: auctions,
		catalog:  auctions,
		bids:     postgres.NewBidRepository(pool),
		payments: postgres.NewPaymentRepository(pool),
		users:    postgres.NewUserRepository(pool),
		close:    pool.Close,
	}, nil
}

// buildSender always feeds the websocket subscribers, then the configured mail channel
func buildSender(cfg *config.Config, users domain.UserRepository, hub *websocket.Hub) domain.EmailSender {
	var mail domain.EmailSender = email.LogSender{}
	if cfg.Notifier == "smtp" {
		mail = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, users)
	}
	return email.NewFanout(auctionws.NewLiveSender(hub), mail)
}
