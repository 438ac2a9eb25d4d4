package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/verigate/internal/application/auth"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

func TestSessionGuard_LoginLogoutCycle(t *testing.T) {
	f := newFixture()
	email := signedUp(t, f, "pw1234")
	ctx := context.Background()
	guard := auth.NewSessionGuard(f.sessions)

	_, err := guard.Authenticate(ctx, "sid")
	assert.ErrorIs(t, err, domerrors.ErrUnauthenticated)

	res, err := auth.NewLogin(f.accounts, f.hasher, f.sessions).
		Execute(ctx, auth.LoginInput{SessionID: "sid", Email: email, Password: "pw1234"})
	require.NoError(t, err)
	sid := res.SessionID

	_, err = guard.Authenticate(ctx, "sid")
	assert.ErrorIs(t, err, domerrors.ErrUnauthenticated, "pre-login ID is not authenticated")

	got, err := guard.Authenticate(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, email, got)

	_, err = guard.Authenticate(ctx, "other-sid")
	assert.ErrorIs(t, err, domerrors.ErrUnauthenticated)

	require.NoError(t, auth.NewLogout(f.sessions).Execute(ctx, auth.LogoutInput{SessionID: sid}))
	_, err = guard.Authenticate(ctx, sid)
	assert.ErrorIs(t, err, domerrors.ErrUnauthenticated)
}

func TestSessionGuard_EmptySessionID(t *testing.T) {
	_, err := auth.NewSessionGuard(newFixture().sessions).Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domerrors.ErrUnauthenticated)
}

func TestSessionGuard_StoreFailureIsUnauthenticated(t *testing.T) {
	_, err := auth.NewSessionGuard(brokenSessions{}).Authenticate(context.Background(), "sid")
	assert.Equal(t, domerrors.Unauthenticated, domerrors.KindOf(err))
	assert.ErrorIs(t, err, errStoreDown)
}

func TestLogout_IsIdempotent(t *testing.T) {
	uc := auth.NewLogout(newFixture().sessions)
	assert.NoError(t, uc.Execute(context.Background(), auth.LogoutInput{SessionID: "never-logged-in"}))
	assert.NoError(t, uc.Execute(context.Background(), auth.LogoutInput{}))
}
