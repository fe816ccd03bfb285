package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/cristianortiz/auctionBatch/internal/shared/logger"
	"github.com/cristianortiz/auctionBatch/internal/shared/websocket"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// broadcaster is the part of the hub the sender needs
type broadcaster interface {
	Broadcast(topic string, data []byte) bool
}

// LiveSender pushes closing events and accepted bids to the websocket subscribers of the auction.
// A full hub queue drops the event, it does not fail the notification.
type LiveSender struct {
	hub broadcaster
	now func() time.Time
}

func NewLiveSender(hub *websocket.Hub) *LiveSender {
	return &LiveSender{hub: hub, now: time.Now}
}

func (s *LiveSender) Send(_ context.Context, auction *domain.Auction) error {
	msg := ServerAuctionClosedMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerAuctionClosed},
	}
	msg.Payload.AuctionID = auction.ID
	msg.Payload.Name = auction.Name
	msg.Payload.ClosedAt = s.now()
	if winner, err := auction.HighestBid(); err == nil {
		msg.Payload.WinnerID = winner.UserID
		msg.Payload.WinningAmount = winner.Amount
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("live sender: failed to serialize closing event: %w", err)
	}
	if !s.hub.Broadcast(auction.ID.String(), data) {
		log.Warn("LiveSender: closing event dropped", zap.String("auctionID", auction.ID.String()))
	}
	return nil
}

// BidPlaced broadcasts an accepted bid, a dropped event is only logged
func (s *LiveSender) BidPlaced(bid *domain.Bid) {
	msg := ServerBidPlacedMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerBidPlaced},
	}
	msg.Payload.AuctionID = bid.AuctionID
	msg.Payload.BidID = bid.ID
	msg.Payload.UserID = bid.UserID
	msg.Payload.Amount = bid.Amount
	msg.Payload.Timestamp = bid.Timestamp

	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("LiveSender: failed to serialize bid event", zap.Error(err))
		return
	}
	if !s.hub.Broadcast(bid.AuctionID.String(), data) {
		log.Warn("LiveSender: bid event dropped", zap.String("auctionID", bid.AuctionID.String()))
	}
}
