package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL), server
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantIs   error
		wantCode string
	}{
		{
			name:   "401 becomes not logged in",
			status: http.StatusUnauthorized,
			wantIs: ErrNotLoggedIn,
		},
		{
			name:   "403 becomes not authorized",
			status: http.StatusForbidden,
			wantIs: ErrNotAuthorized,
		},
		{
			name:     "400 insufficient funds",
			status:   http.StatusBadRequest,
			body:     `{"errorCode": "INSUFFICIENT_FUNDS"}`,
			wantIs:   ErrNotEnoughFunds,
			wantCode: "INSUFFICIENT_FUNDS",
		},
		{
			name:     "400 message verification",
			status:   http.StatusBadRequest,
			body:     `{"errorCode": "MESSAGE_VERIFICATION_ERROR"}`,
			wantIs:   ErrSignatureVerification,
			wantCode: "MESSAGE_VERIFICATION_ERROR",
		},
		{
			name:     "400 account not found",
			status:   http.StatusBadRequest,
			body:     `{"errorCode": "ACCOUNT_NOT_FOUND"}`,
			wantIs:   ErrAccountNotVerified,
			wantCode: "ACCOUNT_NOT_FOUND",
		},
		{
			name:     "400 unknown code stays opaque",
			status:   http.StatusBadRequest,
			body:     `{"errorCode": "SOMETHING_NEW"}`,
			wantCode: "SOMETHING_NEW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			c.Session().SetToken("token-1")

			err := c.do(context.Background(), call{method: http.MethodGet, endpoint: "/portfolio/", authed: true})
			require.Error(t, err)

			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantCode != "" {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
			}
		})
	}
}

func TestUnmappedStatusIsTransportError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))

	err := c.do(context.Background(), call{method: http.MethodGet, endpoint: "/stocks/"})
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusInternalServerError, transportErr.Status)
	assert.Equal(t, "boom", transportErr.Body)

	// None of the domain sentinels may leak out of a plain server failure.
	for _, sentinel := range []error{ErrNotLoggedIn, ErrNotAuthorized, ErrNotEnoughFunds, ErrAccountNotVerified} {
		assert.False(t, errors.Is(err, sentinel), "unexpected match for %v", sentinel)
	}
}

func TestAuthedCallWithoutTokenShortCircuits(t *testing.T) {
	var hits int
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))

	err := c.do(context.Background(), call{method: http.MethodGet, endpoint: "/portfolio/", authed: true})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, hits, "must not hit the backend without a token")
}

func TestAuthedCallSendsTokenHeader(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	c.Session().SetToken("secret-token")

	err := c.do(context.Background(), call{method: http.MethodGet, endpoint: "/portfolio/", authed: true})
	require.NoError(t, err)
	assert.Equal(t, "Token secret-token", gotAuth)
}

func Test401ClearsSession(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	c.Session().SetToken("stale-token")

	err := c.do(context.Background(), call{method: http.MethodGet, endpoint: "/portfolio/", authed: true})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.False(t, c.Session().LoggedIn(), "401 must clear the session")
}

func TestNoContentResponseIsSuccess(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	c.Session().SetToken("token-1")

	var out struct{ Unused string }
	err := c.do(context.Background(), call{method: http.MethodDelete, endpoint: "/open-orders/1/", authed: true, out: &out})
	assert.NoError(t, err)
}

func TestMalformedResponseBodyIsTransportError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))

	var out struct{ Nonce string }
	err := c.do(context.Background(), call{method: http.MethodGet, endpoint: "/users/nonce/", out: &out})
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestSessionSwap(t *testing.T) {
	c := NewClient("http://localhost")
	first := c.Session()
	first.SetToken("a")

	second := NewSession()
	second.SetToken("b")
	c.SetSession(second)

	assert.Equal(t, "b", c.Session().Token())
	assert.Equal(t, "a", first.Token(), "previous session must stay intact")

	c.SetSession(nil)
	assert.False(t, c.Session().LoggedIn())
}
