package auth_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/verigate/internal/application/auth"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

const verifyBase = "http://localhost:8080/verify"

func TestSignup_CreatesUnverifiedAccount(t *testing.T) {
	f := newFixture()
	uc := auth.NewSignup(f.accounts, f.hasher, f.notifier, verifyBase, zerolog.Nop())
	email := newTestEmail()

	res, err := uc.Execute(context.Background(), auth.SignupInput{Email: email, Password: "pw1234"})
	require.NoError(t, err)

	stored, err := f.accounts.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Verified)
	assert.Equal(t, res.Account.ID, stored.ID)
	assert.NotEqual(t, "pw1234", stored.PasswordHash)
	assert.True(t, f.hasher.Verify("pw1234", stored.PasswordHash))

	assert.Equal(t, verifyBase+"?id="+stored.ID.String(), res.VerifyURL)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, email, f.notifier.sent[0].email)
	assert.Equal(t, res.VerifyURL, f.notifier.sent[0].url)
}

func TestSignup_DuplicateEmailConflicts(t *testing.T) {
	f := newFixture()
	uc := auth.NewSignup(f.accounts, f.hasher, f.notifier, verifyBase, zerolog.Nop())
	email := newTestEmail()

	_, err := uc.Execute(context.Background(), auth.SignupInput{Email: email, Password: "pw1234"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), auth.SignupInput{Email: email, Password: "other-pw"})
	assert.ErrorIs(t, err, domerrors.ErrAccountExists)
	assert.Len(t, f.notifier.sent, 1, "no second verification link")
}

func TestSignup_MalformedInput(t *testing.T) {
	f := newFixture()
	uc := auth.NewSignup(f.accounts, f.hasher, f.notifier, verifyBase, zerolog.Nop())

	for name, in := range map[string]auth.SignupInput{
		"both empty":     {},
		"missing pw":     {Email: newTestEmail()},
		"missing email":  {Password: "email-is-missing-in-action"},
		"invalid email":  {Email: "not-an-email", Password: "pw1234"},
		"no tld":         {Email: "a@test", Password: "pw1234"},
		"embedded space": {Email: "a b@test.com", Password: "pw1234"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), in)
			assert.Equal(t, domerrors.MalformedInput, domerrors.KindOf(err))
		})
	}
	assert.Empty(t, f.notifier.sent)
}

func TestSignup_StoreFailureIsInternal(t *testing.T) {
	f := newFixture()
	uc := auth.NewSignup(brokenRepo{}, f.hasher, f.notifier, verifyBase, zerolog.Nop())

	_, err := uc.Execute(context.Background(), auth.SignupInput{Email: newTestEmail(), Password: "pw1234"})
	require.Error(t, err)
	assert.Equal(t, domerrors.InternalFailure, domerrors.KindOf(err))
	assert.ErrorIs(t, err, errStoreDown)
}

func TestSignup_NotifierFailureDoesNotFailSignup(t *testing.T) {
	f := newFixture()
	f.notifier.err = errStoreDown
	var logs bytes.Buffer
	uc := auth.NewSignup(f.accounts, f.hasher, f.notifier, verifyBase, zerolog.New(&logs))

	res, err := uc.Execute(context.Background(), auth.SignupInput{Email: newTestEmail(), Password: "pw1234"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.VerifyURL, verifyBase+"?id="))
	assert.Contains(t, logs.String(), "send email verification failed")
	assert.Contains(t, logs.String(), errStoreDown.Error())
	assert.Contains(t, logs.String(), res.Account.ID.String())
}

// The store's unique constraint is the last line of defence when two signups race
// past the pre-insert lookup.
func TestSignup_ConcurrentSameEmailOnlyOneWins(t *testing.T) {
	f := newFixture()
	uc := auth.NewSignup(f.accounts, f.hasher, f.notifier, verifyBase, zerolog.Nop())
	email := newTestEmail()

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := uc.Execute(context.Background(), auth.SignupInput{Email: email, Password: "pw1234"})
			errs <- err
		}()
	}
	var ok int
	for i := 0; i < n; i++ {
		err := <-errs
		if err == nil {
			ok++
			continue
		}
		assert.Equal(t, domerrors.Conflict, domerrors.KindOf(err))
	}
	assert.Equal(t, 1, ok)
}
