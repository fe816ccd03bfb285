package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	accept bool
	topic  string
	data   []byte
}

func (f *fakeHub) Broadcast(topic string, data []byte) bool {
	f.topic, f.data = topic, data
	return f.accept
}

func TestLiveSender_BroadcastsClosingEvent(t *testing.T) {
	hub := &fakeHub{accept: true}
	closedAt := time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)
	s := &LiveSender{hub: hub, now: func() time.Time { return closedAt }}
	winner := uuid.New()
	a := domain.NewAuction(uuid.New(), "TV", closedAt)
	require.NoError(t, a.PlaceBid(domain.NewBid(uuid.New(), winner, 900, closedAt)))
	a.Close()

	err := s.Send(context.Background(), a)

	require.NoError(t, err)
	assert.Equal(t, a.ID.String(), hub.topic)
	var msg ServerAuctionClosedMessage
	require.NoError(t, json.Unmarshal(hub.data, &msg))
	assert.Equal(t, MessageTypeServerAuctionClosed, msg.Type)
	assert.Equal(t, a.ID, msg.Payload.AuctionID)
	assert.Equal(t, winner, msg.Payload.WinnerID)
	assert.Equal(t, 900.0, msg.Payload.WinningAmount)
	assert.True(t, closedAt.Equal(msg.Payload.ClosedAt))
}

func TestLiveSender_DroppedEventIsNotAnError(t *testing.T) {
	s := &LiveSender{hub: &fakeHub{accept: false}, now: time.Now}

	err := s.Send(context.Background(), domain.NewAuction(uuid.New(), "TV", time.Now()))

	assert.NoError(t, err)
}

func TestLiveSender_BroadcastsAcceptedBid(t *testing.T) {
	hub := &fakeHub{accept: true}
	s := &LiveSender{hub: hub, now: time.Now}
	placedAt := time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)
	bid := domain.NewBid(uuid.New(), uuid.New(), 350, placedAt)
	bid.AuctionID = uuid.New()

	s.BidPlaced(bid)

	assert.Equal(t, bid.AuctionID.String(), hub.topic)
	var msg ServerBidPlacedMessage
	require.NoError(t, json.Unmarshal(hub.data, &msg))
	assert.Equal(t, MessageTypeServerBidPlaced, msg.Type)
	assert.Equal(t, bid.ID, msg.Payload.BidID)
	assert.Equal(t, bid.UserID, msg.Payload.UserID)
	assert.Equal(t, 350.0, msg.Payload.Amount)
	assert.True(t, placedAt.Equal(msg.Payload.Timestamp))
}
