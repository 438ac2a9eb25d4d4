package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
	"github.com/amirhosseinghanipour/verigate/internal/domain"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

var errNoSession = errors.New("no session id")

type LoginInput struct {
	SessionID string
	Email     string `validate:"required"`
	Password  string `validate:"required"`
}

// LoginResult carries the session ID now bound to the account. It is always fresh;
// the caller's previous ID is left unauthenticated and must be replaced on the client.
type LoginResult struct {
	Account   *domain.Account
	SessionID string
}

// Login checks credentials and binds the account email to the caller's session.
// Verification status does not gate login.
type Login struct {
	accounts ports.AccountRepository
	hasher   ports.PasswordHasher
	sessions ports.SessionStore
}

func NewLogin(accounts ports.AccountRepository, hasher ports.PasswordHasher, sessions ports.SessionStore) *Login {
	return &Login{
		accounts: accounts,
		hasher:   hasher,
		sessions: sessions,
	}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.SessionID == "" {
		return nil, domerrors.Internal(errNoSession)
	}
	// Whatever the outcome, the caller must not stay logged in as a previous identity.
	if err := uc.sessions.Clear(ctx, input.SessionID); err != nil {
		return nil, domerrors.Internal(err)
	}
	if err := checkInput(input); err != nil {
		return nil, err
	}
	account, err := uc.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if account == nil {
		return nil, domerrors.ErrAccountNotFound
	}
	if !uc.hasher.Verify(input.Password, account.PasswordHash) {
		return nil, domerrors.ErrWrongCredentials
	}
	// A pre-login ID may have been planted by someone else; never authenticate it.
	sid := uuid.NewString()
	if err := uc.sessions.Set(ctx, sid, account.Email); err != nil {
		return nil, domerrors.Internal(err)
	}
	return &LoginResult{Account: account, SessionID: sid}, nil
}
