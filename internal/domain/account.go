package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountID is a value object for account identity.
type AccountID struct{ uuid.UUID }

// NewAccountID creates a new AccountID from uuid.
func NewAccountID(id uuid.UUID) AccountID { return AccountID{UUID: id} }

// ParseAccountID parses the canonical string form. ok is false for anything that is not a uuid.
func ParseAccountID(s string) (id AccountID, ok bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return AccountID{}, false
	}
	return NewAccountID(u), true
}

// String returns the canonical string form.
func (a AccountID) String() string { return a.UUID.String() }

// Account is a registered identity. Email is the natural key.
type Account struct {
	ID           AccountID
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
