package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"github.com/cristianortiz/auctionBatch/internal/auction/infra/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingSender) Send(_ context.Context, _ *domain.Auction) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestFanout_SendsToAllInOrder(t *testing.T) {
	var calls []string
	f := NewFanout(recordingSender{name: "a", calls: &calls}, recordingSender{name: "b", calls: &calls})

	err := f.Send(context.Background(), domain.NewAuction(uuid.New(), "TV", time.Now()))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestFanout_StopsAtFirstError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	f := NewFanout(recordingSender{name: "a", calls: &calls, err: boom}, recordingSender{name: "b", calls: &calls})

	err := f.Send(context.Background(), domain.NewAuction(uuid.New(), "TV", time.Now()))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, calls)
}

func TestLogSender_NeverFails(t *testing.T) {
	a := domain.NewAuction(uuid.New(), "TV", time.Now())
	assert.NoError(t, LogSender{}.Send(context.Background(), a))
}

func TestSMTPSender_MailsWinner(t *testing.T) {
	winner := &domain.User{ID: uuid.New(), Name: "Maria", Email: "maria@example.com"}
	loser := &domain.User{ID: uuid.New(), Name: "Joao", Email: "joao@example.com"}
	users := memory.NewUserRepository(winner, loser)
	a := domain.NewAuction(uuid.New(), "TV", time.Now())
	require.NoError(t, a.PlaceBid(domain.NewBid(uuid.New(), loser.ID, 100, time.Now())))
	require.NoError(t, a.PlaceBid(domain.NewBid(uuid.New(), winner.ID, 250, time.Now())))

	s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 2525, From: "leiloes@example.com"}, users)
	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}

	err := s.Send(context.Background(), a)

	require.NoError(t, err)
	assert.Equal(t, "mail.local:2525", gotAddr)
	assert.Equal(t, []string{"maria@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Auction \"TV\" closed")
	assert.Contains(t, string(gotMsg), "250.00")
}

func TestSMTPSender_NoBidsIsNoop(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 25}, memory.NewUserRepository())
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("should not send")
		return nil
	}

	assert.NoError(t, s.Send(context.Background(), domain.NewAuction(uuid.New(), "TV", time.Now())))
}

func TestSMTPSender_Failures(t *testing.T) {
	winner := &domain.User{ID: uuid.New(), Name: "Maria", Email: "maria@example.com"}
	a := domain.NewAuction(uuid.New(), "TV", time.Now())
	require.NoError(t, a.PlaceBid(domain.NewBid(uuid.New(), winner.ID, 250, time.Now())))

	t.Run("unknown winner", func(t *testing.T) {
		s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 25}, memory.NewUserRepository())

		assert.ErrorIs(t, s.Send(context.Background(), a), domain.ErrUserNotFound)
	})

	t.Run("transport error", func(t *testing.T) {
		dial := errors.New("connection refused")
		s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 25}, memory.NewUserRepository(winner))
		s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return dial }

		assert.ErrorIs(t, s.Send(context.Background(), a), dial)
	})
}
