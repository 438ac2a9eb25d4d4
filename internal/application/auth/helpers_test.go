package auth_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/amirhosseinghanipour/verigate/internal/domain"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/security"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/session"
)

var emailSeq atomic.Int64

// newTestEmail returns an address no other test in the run has used.
func newTestEmail() string {
	return fmt.Sprintf("user%d.%d@test.com", time.Now().UnixNano(), emailSeq.Add(1))
}

func newTestHasher() *security.Argon2Hasher {
	return security.NewArgon2Hasher(security.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1})
}

type fixture struct {
	accounts *memory.AccountRepository
	sessions *session.MemoryStore
	notifier *recordingNotifier
	hasher   *security.Argon2Hasher
}

func newFixture() *fixture {
	return &fixture{
		accounts: memory.NewAccountRepository(),
		sessions: session.NewMemoryStore(time.Hour),
		notifier: &recordingNotifier{},
		hasher:   newTestHasher(),
	}
}

type sentLink struct {
	email, url string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentLink
	err  error
}

func (n *recordingNotifier) EnqueueSendEmailVerification(ctx context.Context, email, verifyURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentLink{email: email, url: verifyURL})
	return n.err
}

var errStoreDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// brokenRepo fails every call, as an unreachable database would.
type brokenRepo struct{}

func (brokenRepo) Create(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	return nil, errStoreDown
}

func (brokenRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return nil, errStoreDown
}

func (brokenRepo) GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	return nil, errStoreDown
}

func (brokenRepo) SetVerified(ctx context.Context, id domain.AccountID) error {
	return errStoreDown
}

// brokenSessions fails every call.
type brokenSessions struct{}

func (brokenSessions) Get(ctx context.Context, sessionID string) (string, error) {
	return "", errStoreDown
}

func (brokenSessions) Set(ctx context.Context, sessionID, email string) error { return errStoreDown }

func (brokenSessions) Clear(ctx context.Context, sessionID string) error { return errStoreDown }
