package ports

import (
	"context"

	"github.com/amirhosseinghanipour/verigate/internal/domain"
)

// AccountRepository defines persistence for accounts. Lookups return (nil, nil) when no row
// matches. Create assigns the account ID and returns domerrors.ErrAccountExists when the
// email is already taken.
type AccountRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error)
	// SetVerified marks the account verified. It never clears the flag.
	SetVerified(ctx context.Context, id domain.AccountID) error
}
