package email

import (
	"context"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
)

// Fanout forwards a notification to every sender in order and stops at the first error.
type Fanout []domain.EmailSender

func NewFanout(senders ...domain.EmailSender) Fanout {
	return Fanout(senders)
}

func (f Fanout) Send(ctx context.Context, auction *domain.Auction) error {
	for _, s := range f {
		if err := s.Send(ctx, auction); err != nil {
			return err
		}
	}
	return nil
}
