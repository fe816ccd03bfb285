package domain

import "github.com/google/uuid"

// User is a bidder as known by the notification side.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}
