package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/verigate/internal/application/auth"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

func signedUp(t *testing.T, f *fixture, password string) string {
	t.Helper()
	email := newTestEmail()
	_, err := auth.NewSignup(f.accounts, f.hasher, f.notifier, verifyBase, zerolog.Nop()).
		Execute(context.Background(), auth.SignupInput{Email: email, Password: password})
	require.NoError(t, err)
	return email
}

func TestLogin_BindsSession(t *testing.T) {
	f := newFixture()
	email := signedUp(t, f, "pw1234")
	uc := auth.NewLogin(f.accounts, f.hasher, f.sessions)

	res, err := uc.Execute(context.Background(), auth.LoginInput{SessionID: "sid", Email: email, Password: "pw1234"})
	require.NoError(t, err)
	assert.Equal(t, email, res.Account.Email)
	assert.False(t, res.Account.Verified, "login is not gated on verification")

	got, err := f.sessions.Get(context.Background(), res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, email, got)
}

func TestLogin_RotatesSessionID(t *testing.T) {
	f := newFixture()
	email := signedUp(t, f, "pw1234")
	uc := auth.NewLogin(f.accounts, f.hasher, f.sessions)
	ctx := context.Background()

	res, err := uc.Execute(ctx, auth.LoginInput{SessionID: "planted", Email: email, Password: "pw1234"})
	require.NoError(t, err)
	assert.NotEqual(t, "planted", res.SessionID)
	assert.NotEmpty(t, res.SessionID)

	got, err := f.sessions.Get(ctx, "planted")
	require.NoError(t, err)
	assert.Empty(t, got, "the pre-login ID stays anonymous")

	again, err := uc.Execute(ctx, auth.LoginInput{SessionID: res.SessionID, Email: email, Password: "pw1234"})
	require.NoError(t, err)
	assert.NotEqual(t, res.SessionID, again.SessionID)
	got, err = f.sessions.Get(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Empty(t, got, "logging in again retires the previous ID")
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture()
	email := signedUp(t, f, "pw1234")
	uc := auth.NewLogin(f.accounts, f.hasher, f.sessions)

	tests := []struct {
		name  string
		input auth.LoginInput
		want  domerrors.Kind
	}{
		{"wrong password", auth.LoginInput{Email: email, Password: "wrong"}, domerrors.WrongCredentials},
		{"unknown email", auth.LoginInput{Email: "missing@test.com", Password: "pw1234"}, domerrors.NotFound},
		{"missing password", auth.LoginInput{Email: email}, domerrors.MalformedInput},
		{"missing email", auth.LoginInput{Password: "pw1234"}, domerrors.MalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.SessionID = "sid"
			_, err := uc.Execute(context.Background(), tt.input)
			assert.Equal(t, tt.want, domerrors.KindOf(err))
		})
	}
}

func TestLogin_FailedAttemptClearsPriorSession(t *testing.T) {
	f := newFixture()
	first := signedUp(t, f, "pw1234")
	second := signedUp(t, f, "other-pw")
	uc := auth.NewLogin(f.accounts, f.hasher, f.sessions)
	ctx := context.Background()

	res, err := uc.Execute(ctx, auth.LoginInput{SessionID: "sid", Email: first, Password: "pw1234"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, auth.LoginInput{SessionID: res.SessionID, Email: second, Password: "wrong"})
	assert.ErrorIs(t, err, domerrors.ErrWrongCredentials)
	got, err := f.sessions.Get(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Empty(t, got)

	res, err = uc.Execute(ctx, auth.LoginInput{SessionID: res.SessionID, Email: first, Password: "pw1234"})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, auth.LoginInput{SessionID: res.SessionID, Email: "missing@test.com", Password: "pw1234"})
	assert.ErrorIs(t, err, domerrors.ErrAccountNotFound)
	got, err = f.sessions.Get(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLogin_InfrastructureFailures(t *testing.T) {
	f := newFixture()

	_, err := auth.NewLogin(brokenRepo{}, f.hasher, f.sessions).
		Execute(context.Background(), auth.LoginInput{SessionID: "sid", Email: "a@test.com", Password: "pw1234"})
	assert.Equal(t, domerrors.InternalFailure, domerrors.KindOf(err))

	_, err = auth.NewLogin(f.accounts, f.hasher, brokenSessions{}).
		Execute(context.Background(), auth.LoginInput{SessionID: "sid", Email: "a@test.com", Password: "pw1234"})
	assert.Equal(t, domerrors.InternalFailure, domerrors.KindOf(err))

	_, err = auth.NewLogin(f.accounts, f.hasher, f.sessions).
		Execute(context.Background(), auth.LoginInput{Email: "a@test.com", Password: "pw1234"})
	assert.Equal(t, domerrors.InternalFailure, domerrors.KindOf(err))
}
