package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
	"github.com/amirhosseinghanipour/verigate/internal/domain"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

// AccountRepository is an in-memory AccountRepository for development and tests. The email
// index is checked and written under one lock, so concurrent Creates for the same email
// cannot both succeed.
type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.Account
	byEmail map[string]uuid.UUID
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[uuid.UUID]domain.Account),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *AccountRepository) Create(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return nil, domerrors.ErrAccountExists
	}
	now := time.Now().UTC()
	a := domain.Account{
		ID:           domain.NewAccountID(uuid.New()),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[a.ID.UUID] = a
	r.byEmail[email] = a.ID.UUID
	return &a, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	a := r.byID[id]
	return &a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id.UUID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AccountRepository) SetVerified(ctx context.Context, id domain.AccountID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id.UUID]
	if !ok {
		return domerrors.ErrAccountNotFound
	}
	if !a.Verified {
		a.Verified = true
		a.UpdatedAt = time.Now().UTC()
		r.byID[id.UUID] = a
	}
	return nil
}

// Ping always succeeds; it lets the memory store stand in for a database in health checks.
func (r *AccountRepository) Ping(ctx context.Context) error { return nil }

var _ ports.AccountRepository = (*AccountRepository)(nil)
