package httpapi

import (
	"time"

	"github.com/cristianortiz/auctionBatch/internal/auction/application"
	auctionws "github.com/cristianortiz/auctionBatch/internal/auction/infra/websocket"
	"github.com/cristianortiz/auctionBatch/internal/shared/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

type failureDTO struct {
	AuctionID uuid.UUID `json:"auction_id"`
	Op        string    `json:"op"`
	Error     string    `json:"error"`
}

type closeResponse struct {
	Closed   int          `json:"closed"`
	Failures []failureDTO `json:"failures"`
	Error    string       `json:"error,omitempty"`
}

type paymentDTO struct {
	ID        uuid.UUID `json:"id"`
	AuctionID uuid.UUID `json:"auction_id"`
	Amount    float64   `json:"amount"`
	DueDate   string    `json:"due_date"`
}

type paymentResponse struct {
	Generated int          `json:"generated"`
	Payments  []paymentDTO `json:"payments"`
	Error     string       `json:"error,omitempty"`
}

// JobHandler triggers batch runs over HTTP
type JobHandler struct {
	batches application.BatchService
}

func NewJobHandler(batches application.BatchService) *JobHandler {
	return &JobHandler{batches: batches}
}

// Register mounts the job endpoints and, when not nil, the bidding endpoints and the websocket feed.
func Register(app *fiber.App, jobs *JobHandler, auctions *AuctionHandler, ws *auctionws.AuctionWSHandler) {
	g := app.Group("/jobs")
	g.Post("/close-auctions", jobs.CloseAuctions)
	g.Post("/generate-payments", jobs.GeneratePayments)

	if auctions != nil {
		app.Post("/users", auctions.RegisterUser)
		app.Post("/auctions", auctions.CreateAuction)
		app.Post("/auctions/:id/bids", auctions.PlaceBid)
	}

	if ws == nil {
		return
	}
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/auctions/:id", websocket.New(ws.Subscribe))
}

// CloseAuctions runs the closer once. Per auction failures are part of a 200 response,
// a failure that stopped the run answers 500 with the partial report.
func (h *JobHandler) CloseAuctions(c *fiber.Ctx) error {
	report, err := h.batches.CloseExpired(c.UserContext())

	resp := closeResponse{Closed: report.Closed, Failures: []failureDTO{}}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, failureDTO{AuctionID: f.AuctionID, Op: f.Op, Error: f.Err.Error()})
	}
	if err != nil {
		log.Error("CloseAuctions job failed", zap.Error(err))
		resp.Error = err.Error()
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
	return c.JSON(resp)
}

func (h *JobHandler) GeneratePayments(c *fiber.Ctx) error {
	report, err := h.batches.GeneratePayments(c.UserContext())

	resp := paymentResponse{Generated: report.Generated(), Payments: []paymentDTO{}}
	for _, p := range report.Payments {
		resp.Payments = append(resp.Payments, paymentDTO{
			ID:        p.ID,
			AuctionID: p.AuctionID,
			Amount:    p.Amount,
			DueDate:   p.DueDate.Format(time.DateOnly),
		})
	}
	if err != nil {
		log.Error("GeneratePayments job failed", zap.Error(err))
		resp.Error = err.Error()
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
	return c.JSON(resp)
}
