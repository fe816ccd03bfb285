package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/cristianortiz/auctionBatch/internal/auction/domain"
	"go.uber.org/zap"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender mails the winner of a closed auction.
type SMTPSender struct {
	cfg      SMTPConfig
	users    domain.UserRepository
	sendMail sendMailFunc
}

func NewSMTPSender(cfg SMTPConfig, users domain.UserRepository) *SMTPSender {
	return &SMTPSender{cfg: cfg, users: users, sendMail: smtp.SendMail}
}

// Send looks up the winning bidder and mails them. Auctions without bids have nobody to notify.
func (s *SMTPSender) Send(ctx context.Context, auction *domain.Auction) error {
	winner, err := auction.HighestBid()
	if errors.Is(err, domain.ErrNoBids) {
		log.Info("SMTPSender: auction closed without bids, nobody to notify",
			zap.String("auctionID", auction.ID.String()))
		return nil
	}

	user, err := s.users.GetByID(ctx, winner.UserID)
	if err != nil {
		return fmt.Errorf("smtp sender: failed to get winner %s: %w", winner.UserID, err)
	}

	msg := buildMessage(s.cfg.From, user, auction, winner)
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	if err := s.sendMail(addr, auth, s.cfg.From, []string{user.Email}, msg); err != nil {
		return fmt.Errorf("smtp sender: failed to mail %s: %w", user.Email, err)
	}
	log.Info("SMTPSender: winner notified",
		zap.String("auctionID", auction.ID.String()),
		zap.String("userID", user.ID.String()),
	)
	return nil
}

func buildMessage(from string, to *domain.User, auction *domain.Auction, winner *domain.Bid) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to.Email)
	fmt.Fprintf(&b, "Subject: Auction %q closed\r\n", auction.Name)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", to.Name)
	fmt.Fprintf(&b, "You won the auction %q with a bid of %.2f.\r\n", auction.Name, winner.Amount)
	b.WriteString("A payment will be generated for the next business day.\r\n")
	return b.Bytes()
}
