package auth

import (
	"context"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
	"github.com/amirhosseinghanipour/verigate/internal/domain"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

// VerifyEmailInput is the account id from the verification link.
type VerifyEmailInput struct {
	ID string
}

// VerifyEmailResult reports whether the account had been verified before this call.
type VerifyEmailResult struct {
	Account         *domain.Account
	AlreadyVerified bool
}

// VerifyEmail marks an account's email as verified. Repeating it is a no-op.
type VerifyEmail struct {
	accounts ports.AccountRepository
}

// NewVerifyEmail builds the use case.
func NewVerifyEmail(accounts ports.AccountRepository) *VerifyEmail {
	return &VerifyEmail{accounts: accounts}
}

func (uc *VerifyEmail) Execute(ctx context.Context, input VerifyEmailInput) (*VerifyEmailResult, error) {
	id, ok := domain.ParseAccountID(input.ID)
	if !ok {
		return nil, domerrors.ErrAccountNotFound
	}
	account, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if account == nil {
		return nil, domerrors.ErrAccountNotFound
	}
	if account.Verified {
		return &VerifyEmailResult{Account: account, AlreadyVerified: true}, nil
	}
	if err := uc.accounts.SetVerified(ctx, account.ID); err != nil {
		return nil, domerrors.Internal(err)
	}
	account.Verified = true
	return &VerifyEmailResult{Account: account}, nil
}
