package application

import (
	"context"
	"testing"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/cristianortiz/auctionBatch/internal/shared/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type auctionServiceFixture struct {
	auctions *catalogMock
	bids     *bidRepoMock
	users    *userRegistryMock
	svc      AuctionService
}

func newAuctionServiceFixture() *auctionServiceFixture {
	f := &auctionServiceFixture{auctions: &catalogMock{}, bids: &bidRepoMock{}, users: &userRegistryMock{}}
	f.svc = NewAuctionService(AuctionDeps{
		Auctions: f.auctions,
		Bids:     f.bids,
		Users:    f.users,
		Clock:    clock.NewFixedClock(today),
	})
	return f
}

func TestAuctionService_PlaceBidSavesAcceptedBid(t *testing.T) {
	//Arrange
	f := newAuctionServiceFixture()
	a := domain.NewAuction(uuid.New(), "TV", today)
	user := &domain.User{ID: uuid.New(), Name: "Maria", Email: "maria@example.com"}
	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.auctions.On("GetByID", mock.Anything, a.ID).Return(a, nil)
	f.bids.On("Save", mock.Anything, mock.AnythingOfType("*domain.Bid")).Return(nil).Once()

	//Act
	bid, err := f.svc.PlaceBid(context.Background(), PlaceBidDTO{AuctionID: a.ID, UserID: user.ID, Amount: 250})

	//Assert
	require.NoError(t, err)
	assert.Equal(t, a.ID, bid.AuctionID)
	assert.Equal(t, user.ID, bid.UserID)
	assert.Equal(t, 250.0, bid.Amount)
	assert.NotEqual(t, uuid.Nil, bid.ID)
	f.bids.AssertExpectations(t)
}

func TestAuctionService_PlaceBidRejected(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Name: "Maria", Email: "maria@example.com"}
	closed := domain.NewAuction(uuid.New(), "TV", today)
	closed.Close()
	lastByUser := domain.NewAuction(uuid.New(), "Geladeira", today)
	require.NoError(t, lastByUser.PlaceBid(domain.NewBid(uuid.New(), user.ID, 100, today)))

	tests := []struct {
		name    string
		auction *domain.Auction
		wantErr error
	}{
		{"closed auction", closed, domain.ErrAuctionClosed},
		{"consecutive bid", lastByUser, domain.ErrConsecutiveBid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuctionServiceFixture()
			f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
			f.auctions.On("GetByID", mock.Anything, tt.auction.ID).Return(tt.auction, nil)

			_, err := f.svc.PlaceBid(context.Background(), PlaceBidDTO{AuctionID: tt.auction.ID, UserID: user.ID, Amount: 300})

			assert.ErrorIs(t, err, tt.wantErr)
			f.bids.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestAuctionService_PlaceBidInvalidAmountSkipsLookups(t *testing.T) {
	f := newAuctionServiceFixture()

	_, err := f.svc.PlaceBid(context.Background(), PlaceBidDTO{AuctionID: uuid.New(), UserID: uuid.New(), Amount: -10})

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.auctions.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAuctionService_PlaceBidUnknownUser(t *testing.T) {
	f := newAuctionServiceFixture()
	userID := uuid.New()
	f.users.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrUserNotFound)

	_, err := f.svc.PlaceBid(context.Background(), PlaceBidDTO{AuctionID: uuid.New(), UserID: userID, Amount: 10})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	f.auctions.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAuctionService_PlaceBidSaveFailure(t *testing.T) {
	f := newAuctionServiceFixture()
	a := domain.NewAuction(uuid.New(), "TV", today)
	user := &domain.User{ID: uuid.New()}
	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.auctions.On("GetByID", mock.Anything, a.ID).Return(a, nil)
	f.bids.On("Save", mock.Anything, mock.Anything).Return(errStorage)

	bid, err := f.svc.PlaceBid(context.Background(), PlaceBidDTO{AuctionID: a.ID, UserID: user.ID, Amount: 10})

	assert.ErrorIs(t, err, errStorage)
	assert.Nil(t, bid)
}

func TestAuctionService_CreateAuctionDatedToday(t *testing.T) {
	f := newAuctionServiceFixture()
	f.auctions.On("Create", mock.Anything, mock.AnythingOfType("*domain.Auction")).Return(nil)

	a, err := f.svc.CreateAuction(context.Background(), CreateAuctionDTO{Name: " TV "})

	require.NoError(t, err)
	assert.Equal(t, "TV", a.Name)
	assert.Equal(t, today, a.CreatedAt)
	assert.False(t, a.IsClosed())

	_, err = f.svc.CreateAuction(context.Background(), CreateAuctionDTO{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	f.auctions.AssertNumberOfCalls(t, "Create", 1)
}

func TestAuctionService_RegisterUser(t *testing.T) {
	f := newAuctionServiceFixture()
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "maria@example.com"
	})).Return(nil)
	f.users.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailTaken)

	u, err := f.svc.RegisterUser(context.Background(), RegisterUserDTO{Name: "Maria", Email: "maria@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)

	_, err = f.svc.RegisterUser(context.Background(), RegisterUserDTO{Name: "Jose", Email: "taken@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = f.svc.RegisterUser(context.Background(), RegisterUserDTO{Name: "Jose", Email: "no-at-sign"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}
