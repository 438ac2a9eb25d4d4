package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
	"github.com/amirhosseinghanipour/verigate/internal/domain"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/persistence/db"
)

// AccountRepository implements ports.AccountRepository on PostgreSQL. Uniqueness of email is
// enforced by the accounts_email_key constraint.
type AccountRepository struct {
	q *db.Queries
}

func NewAccountRepository(q *db.Queries) *AccountRepository {
	return &AccountRepository{q: q}
}

func (r *AccountRepository) Create(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	a, err := r.q.CreateAccount(ctx, db.CreateAccountParams{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domerrors.Wrap(domerrors.Conflict, err)
		}
		return nil, oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			Wrap(err)
	}
	return dbAccountToDomain(a), nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, oops.Code("ACCOUNT_QUERY_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}
	return dbAccountToDomain(a), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	a, err := r.q.GetAccountByID(ctx, id.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, oops.Code("ACCOUNT_QUERY_FAILED").
			With("operation", "get account by id").
			With("account_id", id.String()).
			Wrap(err)
	}
	return dbAccountToDomain(a), nil
}

func (r *AccountRepository) SetVerified(ctx context.Context, id domain.AccountID) error {
	n, err := r.q.SetAccountVerified(ctx, id.UUID)
	if err != nil {
		return oops.Code("ACCOUNT_VERIFY_FAILED").
			With("operation", "set verified").
			With("account_id", id.String()).
			Wrap(err)
	}
	if n == 0 {
		return domerrors.ErrAccountNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func dbAccountToDomain(a db.Account) *domain.Account {
	return &domain.Account{
		ID:           domain.NewAccountID(a.ID),
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Verified:     a.Verified,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// Ensure AccountRepository implements ports.AccountRepository.
var _ ports.AccountRepository = (*AccountRepository)(nil)
