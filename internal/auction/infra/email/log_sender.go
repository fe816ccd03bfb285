package email

import (
	"context"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/cristianortiz/auctionBatch/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// LogSender only writes the notification to the log, for local runs.
type LogSender struct{}

func (LogSender) Send(_ context.Context, auction *domain.Auction) error {
	fields := []zap.Field{
		zap.String("auctionID", auction.ID.String()),
		zap.String("name", auction.Name),
	}
	if winner, err := auction.HighestBid(); err == nil {
		fields = append(fields,
			zap.String("winnerID", winner.UserID.String()),
			zap.Float64("amount", winner.Amount),
		)
	}
	log.Info("Auction closed notification", fields...)
	return nil
}
