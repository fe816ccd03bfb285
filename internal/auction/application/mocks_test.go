package application

import (
	"context"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// callLog records collaborator calls across mocks so tests can check their order
type callLog struct {
	entries []string
}

func (l *callLog) add(op string, a *domain.Auction) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, op+":"+a.Name)
}

type auctionRepoMock struct {
	mock.Mock
	log *callLog
}

func (m *auctionRepoMock) Open(ctx context.Context) ([]*domain.Auction, error) {
	args := m.Called(ctx)
	auctions, _ := args.Get(0).([]*domain.Auction)
	return auctions, args.Error(1)
}

func (m *auctionRepoMock) Closed(ctx context.Context) ([]*domain.Auction, error) {
	args := m.Called(ctx)
	auctions, _ := args.Get(0).([]*domain.Auction)
	return auctions, args.Error(1)
}

func (m *auctionRepoMock) Update(ctx context.Context, auction *domain.Auction) error {
	m.log.add("update", auction)
	args := m.Called(ctx, auction)
	return args.Error(0)
}

type senderMock struct {
	mock.Mock
	log *callLog
}

func (m *senderMock) Send(ctx context.Context, auction *domain.Auction) error {
	m.log.add("send", auction)
	args := m.Called(ctx, auction)
	return args.Error(0)
}

type paymentRepoMock struct {
	mock.Mock
}

func (m *paymentRepoMock) Save(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type evaluatorMock struct {
	mock.Mock
}

func (m *evaluatorMock) Evaluate(auction *domain.Auction) (domain.Evaluation, error) {
	args := m.Called(auction)
	return args.Get(0).(domain.Evaluation), args.Error(1)
}

type catalogMock struct {
	mock.Mock
}

func (m *catalogMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	args := m.Called(ctx, id)
	auction, _ := args.Get(0).(*domain.Auction)
	return auction, args.Error(1)
}

func (m *catalogMock) Create(ctx context.Context, auction *domain.Auction) error {
	args := m.Called(ctx, auction)
	return args.Error(0)
}

type bidRepoMock struct {
	mock.Mock
}

func (m *bidRepoMock) Save(ctx context.Context, bid *domain.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

type userRegistryMock struct {
	mock.Mock
}

func (m *userRegistryMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *userRegistryMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
