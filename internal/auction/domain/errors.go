package domain

import "errors"

var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAuctionClosed   = errors.New("auction is closed")
	ErrInvalidAmount   = errors.New("bid amount cannot be zero o less than zero")
	ErrConsecutiveBid  = errors.New("user cannot bid twice in a row")
	ErrBidLimitReached = errors.New("user reached the bid limit for this auction")
	ErrNoBids          = errors.New("auction has no bids")
	ErrInvalidName     = errors.New("name cannot be empty")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrEmailTaken      = errors.New("email already registered")
	ErrAuctionExists   = errors.New("auction already exists")
)
