package websocket

import (
	"github.com/cristianortiz/auctionBatch/internal/shared/websocket"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuctionWSHandler subscribes websocket connections to the closing events of one auction
type AuctionWSHandler struct {
	hub *websocket.Hub
}

func NewAuctionWSHandler(hub *websocket.Hub) *AuctionWSHandler {
	return &AuctionWSHandler{hub: hub}
}

// Subscribe serves one connection until it goes away. The auction id comes from the :id route param.
func (h *AuctionWSHandler) Subscribe(conn *fiberws.Conn) {
	auctionID, err := uuid.Parse(conn.Params("id"))
	if err != nil {
		sendError(conn, "invalid auction id")
		return
	}

	ack := ServerSubscribedMessage{BaseMessage: BaseMessage{Type: MessageTypeServerSubscribed}}
	ack.Payload.AuctionID = auctionID
	if err := conn.WriteJSON(ack); err != nil {
		log.Warn("failed to acknowledge subscription", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, auctionID.String(), uuid.NewString())
	if !h.hub.RegisterClient(client) {
		sendError(conn, "server shutting down")
		return
	}

	// fiber closes the connection once this handler returns
	go client.WritePump()
	client.ReadPump()
}

func sendError(conn *fiberws.Conn, errorMessage string) {
	errMsg := ServerErrorMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerError},
	}
	errMsg.Payload.Error = errorMessage
	if err := conn.WriteJSON(errMsg); err != nil {
		log.Error("failed to send ServerErrorMessage", zap.Error(err))
	}
}
