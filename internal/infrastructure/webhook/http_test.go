package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
)

type delivery struct {
	header http.Header
	body   []byte
}

func newReceiver(t *testing.T, status int) (*httptest.Server, chan delivery) {
	t.Helper()
	got := make(chan delivery, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		got <- delivery{header: r.Header.Clone(), body: body}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestHTTPEmitter_PostsSignedEvent(t *testing.T) {
	srv, got := newReceiver(t, http.StatusNoContent)
	e := NewHTTPEmitter(srv.URL, WithSigningSecret("whsec"), WithHeader("X-Tenant", "ops"))
	e.now = func() time.Time { return time.Unix(1767225600, 0) }

	err := e.Emit(context.Background(), ports.AuditEvent{Event: "account.signup", Email: "a@test.com", Success: true})
	require.NoError(t, err)

	d := <-got
	assert.Equal(t, "application/json", d.header.Get("Content-Type"))
	assert.Equal(t, "account.signup", d.header.Get(HeaderEvent))
	assert.Equal(t, "1767225600", d.header.Get(HeaderTimestamp))
	assert.NotEmpty(t, d.header.Get(HeaderDelivery))
	assert.Equal(t, "ops", d.header.Get("X-Tenant"))
	assert.Equal(t, Sign([]byte("whsec"), "1767225600", d.body), d.header.Get(HeaderSignature))

	var ev ports.AuditEvent
	require.NoError(t, json.Unmarshal(d.body, &ev))
	assert.Equal(t, "a@test.com", ev.Email)
	assert.True(t, ev.Success)
}

func TestHTTPEmitter_UnsignedWithoutSecret(t *testing.T) {
	srv, got := newReceiver(t, http.StatusOK)

	require.NoError(t, NewHTTPEmitter(srv.URL).Emit(context.Background(), ports.AuditEvent{Event: "account.logout"}))
	d := <-got
	assert.Empty(t, d.header.Get(HeaderSignature))
	assert.Equal(t, "account.logout", d.header.Get(HeaderEvent))
}

func TestSign_DependsOnSecretTimestampAndBody(t *testing.T) {
	base := Sign([]byte("k"), "1", []byte(`{}`))
	assert.Regexp(t, `^sha256=[0-9a-f]{64}$`, base)
	assert.NotEqual(t, base, Sign([]byte("k2"), "1", []byte(`{}`)))
	assert.NotEqual(t, base, Sign([]byte("k"), "2", []byte(`{}`)))
	assert.NotEqual(t, base, Sign([]byte("k"), "1", []byte(`{"a":1}`)))
}

func TestHTTPEmitter_Non2xx(t *testing.T) {
	srv, _ := newReceiver(t, http.StatusBadGateway)

	err := NewHTTPEmitter(srv.URL).Emit(context.Background(), ports.AuditEvent{Event: "account.login"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "account.login")
}

func TestNoopEmitter(t *testing.T) {
	assert.NoError(t, NewNoopEmitter().Emit(context.Background(), ports.AuditEvent{}))
}
