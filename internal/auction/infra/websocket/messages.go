package websocket

import (
	"time"

	"github.com/google/uuid"
)

// MessageType defines ws type message
type MessageType string

const (
	MessageTypeServerAuctionClosed MessageType = "server_auction_closed" // server msg when the closer closes an auction
	MessageTypeServerBidPlaced     MessageType = "server_bid_placed"     // server msg when an auction accepts a bid
	MessageTypeServerSubscribed    MessageType = "server_subscribed"     // server msg acknowledging a subscription
	MessageTypeServerError         MessageType = "server_error"          // server msg indicating error
)

// BaseMessage is base struct for all the WS messages, includes a Type field for identify the message type
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// ServerAuctionClosedMessage is DTO for the closing event pushed to subscribers
type ServerAuctionClosedMessage struct {
	BaseMessage
	Payload struct {
		AuctionID     uuid.UUID `json:"auction_id"`
		Name          string    `json:"name"`
		ClosedAt      time.Time `json:"closed_at"`
		WinnerID      uuid.UUID `json:"winner_id,omitempty"`
		WinningAmount float64   `json:"winning_amount,omitempty"`
	} `json:"payload"`
}

// ServerBidPlacedMessage is DTO for an accepted bid pushed to subscribers
type ServerBidPlacedMessage struct {
	BaseMessage
	Payload struct {
		AuctionID uuid.UUID `json:"auction_id"`
		BidID     uuid.UUID `json:"bid_id"`
		UserID    uuid.UUID `json:"user_id"`
		Amount    float64   `json:"amount"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"payload"`
}

type ServerSubscribedMessage struct {
	BaseMessage
	Payload struct {
		AuctionID uuid.UUID `json:"auction_id"`
	} `json:"payload"`
}

type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Error string `json:"error"`
	} `json:"payload"`
}
