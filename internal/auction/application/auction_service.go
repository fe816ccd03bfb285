package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/cristianortiz/auctionBatch/internal/shared/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlaceBidDTO is the input of PlaceBid, the data needed to make a bid
type PlaceBidDTO struct {
	AuctionID uuid.UUID
	UserID    uuid.UUID
	Amount    float64
}

type CreateAuctionDTO struct {
	Name string
}

type RegisterUserDTO struct {
	Name  string
	Email string
}

// AuctionService feeds the batches: it opens auctions, registers bidders and takes their bids
type AuctionService interface {
	CreateAuction(ctx context.Context, cmd CreateAuctionDTO) (*domain.Auction, error)
	RegisterUser(ctx context.Context, cmd RegisterUserDTO) (*domain.User, error)
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error)
}

type AuctionDeps struct {
	Auctions domain.AuctionCatalog
	Bids     domain.BidRepository
	Users    domain.UserRegistry
	Clock    clock.Clock
}

type auctionService struct {
	deps  AuctionDeps
	newID func() uuid.UUID
	now   func() time.Time
	// bid rules read the bids already placed, so placements never interleave
	bidMu sync.Mutex
}

func NewAuctionService(deps AuctionDeps) AuctionService {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	return &auctionService{deps: deps, newID: uuid.New, now: time.Now}
}

// CreateAuction opens a new auction dated today
func (s *auctionService) CreateAuction(ctx context.Context, cmd CreateAuctionDTO) (*domain.Auction, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	auction := domain.NewAuction(s.newID(), name, s.deps.Clock.Today())
	if err := s.deps.Auctions.Create(ctx, auction); err != nil {
		log.Error("AuctionService: Failed to create auction",
			zap.String("auctionID", auction.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("auction service: failed to create auction: %w", err)
	}
	log.Info("AuctionService: Auction created",
		zap.String("auctionID", auction.ID.String()),
		zap.String("name", auction.Name),
	)
	return auction, nil
}

func (s *auctionService) RegisterUser(ctx context.Context, cmd RegisterUserDTO) (*domain.User, error) {
	name := strings.TrimSpace(cmd.Name)
	email := strings.TrimSpace(cmd.Email)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	user := &domain.User{ID: s.newID(), Name: name, Email: email}
	if err := s.deps.Users.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrEmailTaken) {
			log.Error("AuctionService: Failed to register user", zap.Error(err))
		}
		return nil, fmt.Errorf("auction service: failed to register user: %w", err)
	}
	return user, nil
}

// PlaceBid loads the auction, applies the bidding rules and stores the accepted bid.
func (s *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	log.Info("Executing PlaceBid",
		zap.String("auctionID", cmd.AuctionID.String()),
		zap.String("userID", cmd.UserID.String()),
		zap.Float64("amount", cmd.Amount),
	)
	// input validation only, the auction rules live in the domain
	if cmd.Amount <= 0 {
		log.Warn("PlaceBid: Invalid bid amount",
			zap.String("auctionID", cmd.AuctionID.String()),
			zap.Float64("amount", cmd.Amount),
		)
		return nil, domain.ErrInvalidAmount
	}

	if _, err := s.deps.Users.GetByID(ctx, cmd.UserID); err != nil {
		return nil, fmt.Errorf("place bid: failed to get user %s: %w", cmd.UserID, err)
	}

	s.bidMu.Lock()
	defer s.bidMu.Unlock()

	auction, err := s.deps.Auctions.GetByID(ctx, cmd.AuctionID)
	if err != nil {
		if !errors.Is(err, domain.ErrAuctionNotFound) {
			log.Error("PlaceBid: Failed to get auction",
				zap.String("auctionID", cmd.AuctionID.String()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("place bid: failed to get auction %s: %w", cmd.AuctionID, err)
	}

	bid := domain.NewBid(s.newID(), cmd.UserID, cmd.Amount, s.now())
	if err := auction.PlaceBid(bid); err != nil {
		return nil, fmt.Errorf("place bid: bid rejected for auction %s: %w", cmd.AuctionID, err)
	}

	if err := s.deps.Bids.Save(ctx, bid); err != nil {
		log.Error("PlaceBid: Failed to save bid",
			zap.String("auctionID", cmd.AuctionID.String()),
			zap.String("bidID", bid.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("place bid: failed to save bid for auction %s: %w", cmd.AuctionID, err)
	}
	return bid, nil
}
