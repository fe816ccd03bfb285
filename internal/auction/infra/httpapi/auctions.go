package httpapi

import (
	"errors"
	"time"

	"github.com/cristianortiz/auctionBatch/internal/auction/application"
	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BidFeed is told about every accepted bid
type BidFeed interface {
	BidPlaced(bid *domain.Bid)
}

type createAuctionRequest struct {
	Name string `json:"name"`
}

type registerUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type placeBidRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Amount float64   `json:"amount"`
}

type auctionDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedOn string    `json:"created_on"`
	Closed    bool      `json:"closed"`
}

type userDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type bidDTO struct {
	ID        uuid.UUID `json:"id"`
	AuctionID uuid.UUID `json:"auction_id"`
	UserID    uuid.UUID `json:"user_id"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// AuctionHandler exposes auction creation, bidder registration and bidding
type AuctionHandler struct {
	auctions application.AuctionService
	feed     BidFeed
}

// NewAuctionHandler builds the handler, feed may be nil
func NewAuctionHandler(auctions application.AuctionService, feed BidFeed) *AuctionHandler {
	return &AuctionHandler{auctions: auctions, feed: feed}
}

func (h *AuctionHandler) CreateAuction(c *fiber.Ctx) error {
	var req createAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	auction, err := h.auctions.CreateAuction(c.UserContext(), application.CreateAuctionDTO{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(auctionDTO{
		ID:        auction.ID,
		Name:      auction.Name,
		CreatedOn: auction.CreatedAt.Format(time.DateOnly),
		Closed:    auction.IsClosed(),
	})
}

func (h *AuctionHandler) RegisterUser(c *fiber.Ctx) error {
	var req registerUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	user, err := h.auctions.RegisterUser(c.UserContext(), application.RegisterUserDTO{Name: req.Name, Email: req.Email})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(userDTO{ID: user.ID, Name: user.Name, Email: user.Email})
}

// PlaceBid takes a bid for the auction in the :id route param
func (h *AuctionHandler) PlaceBid(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid auction id"})
	}
	var req placeBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	bid, err := h.auctions.PlaceBid(c.UserContext(), application.PlaceBidDTO{
		AuctionID: auctionID,
		UserID:    req.UserID,
		Amount:    req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	if h.feed != nil {
		h.feed.BidPlaced(bid)
	}
	return c.Status(fiber.StatusCreated).JSON(bidDTO{
		ID:        bid.ID,
		AuctionID: bid.AuctionID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		Timestamp: bid.Timestamp,
	})
}

// writeError maps domain errors to status codes, anything else is a 500
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrAuctionNotFound), errors.Is(err, domain.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidName), errors.Is(err, domain.ErrInvalidEmail):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAuctionClosed), errors.Is(err, domain.ErrConsecutiveBid),
		errors.Is(err, domain.ErrBidLimitReached), errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAuctionExists):
		status = fiber.StatusConflict
	}
	if status == fiber.StatusInternalServerError {
		log.Error("Auction request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(errorResponse{Error: "internal error"})
	}
	return c.Status(status).JSON(errorResponse{Error: err.Error()})
}
