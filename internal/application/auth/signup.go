package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
	"github.com/amirhosseinghanipour/verigate/internal/domain"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

type SignupInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// SignupResult carries the new account and the verification link handed to the notifier.
type SignupResult struct {
	Account   *domain.Account
	VerifyURL string
}

// Signup registers an unverified account and sends its verification link.
type Signup struct {
	accounts ports.AccountRepository
	hasher   ports.PasswordHasher
	notifier ports.Notifier
	baseURL  string
	log      zerolog.Logger
}

func NewSignup(accounts ports.AccountRepository, hasher ports.PasswordHasher, notifier ports.Notifier, verifyBaseURL string, log zerolog.Logger) *Signup {
	return &Signup{
		accounts: accounts,
		hasher:   hasher,
		notifier: notifier,
		baseURL:  verifyBaseURL,
		log:      log,
	}
}

func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	if !domain.ValidEmail(input.Email) {
		return nil, domerrors.ErrMalformedInput
	}
	existing, err := uc.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if existing != nil {
		return nil, domerrors.ErrAccountExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	// A concurrent signup for the same email surfaces here as ErrAccountExists.
	account, err := uc.accounts.Create(ctx, input.Email, hash)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	verifyURL := VerificationURL(uc.baseURL, account.ID)
	// The account exists either way; a lost mail is not a failed signup.
	if err := uc.notifier.EnqueueSendEmailVerification(ctx, account.Email, verifyURL); err != nil {
		uc.log.Error().Err(err).
			Str("account_id", account.ID.String()).
			Msg("send email verification failed")
	}
	return &SignupResult{Account: account, VerifyURL: verifyURL}, nil
}

// VerificationURL builds the link that verifies id when followed.
func VerificationURL(baseURL string, id domain.AccountID) string {
	return fmt.Sprintf("%s?id=%s", baseURL, id.String())
}
