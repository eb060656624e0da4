package service

import "github.com/google/uuid"

// Actor identifies who performs a mutation and where the request came from. It is
// passed explicitly into every mutating operation; the core never assumes an
// ambient identity.
type Actor struct {
	UserID    uuid.UUID
	IPAddress string
	UserAgent string
}
