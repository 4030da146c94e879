package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pangate/internal/plugin/models"
)

type echoResponse struct {
	PAN string `json:"pan"`
	OK  bool   `json:"ok"`
}

func basicPlugin() *models.Plugin {
	return &models.Plugin{UID: "uid-basic", Name: "basic", Provider: models.ProviderNSDL, Service: models.ServicePANValidation, Username: "user", Password: "pass"}
}

func apiKeyPlugin() *models.Plugin {
	return &models.Plugin{UID: "uid-key", Name: "key", Provider: models.ProviderNSDL, Service: models.ServicePANValidation, APIKey: "key-123"}
}

func newTestTransport(srv *httptest.Server, opts ...TransportOption) *HTTPTransport {
	opts = append([]TransportOption{WithHTTPClient(srv.Client()), WithInitialBackoff(time.Millisecond)}, opts...)
	return NewHTTPTransport(models.ProviderNSDL, srv.URL+"/", time.Second, opts...)
}

func TestHTTPTransportAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if user, pass, ok := r.BasicAuth(); ok {
			assert.Equal(t, "user", user)
			assert.Equal(t, "pass", pass)
			assert.Empty(t, r.Header.Get(APIKeyHeader))
		} else {
			assert.Equal(t, "key-123", r.Header.Get(APIKeyHeader))
		}
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(echoResponse{PAN: in["pan"], OK: true})
	}))
	defer srv.Close()

	tr := newTestTransport(srv)
	for _, p := range []*models.Plugin{basicPlugin(), apiKeyPlugin()} {
		var out echoResponse
		err := tr.PostJSON(context.Background(), p, "/v1/echo", map[string]string{"pan": "ABCDE1234F"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "ABCDE1234F", out.PAN)
		assert.True(t, out.OK)
	}
}

func TestHTTPTransportNoCredentials(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	var out echoResponse
	err := newTestTransport(srv).PostJSON(context.Background(), &models.Plugin{}, "/v1/echo", nil, &out)
	assert.Equal(t, ErrorAuthentication, GetCategory(err))
	assert.Zero(t, calls.Load())
}

func TestHTTPTransportRetries(t *testing.T) {
	t.Run("retries outages then succeeds", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_ = json.NewEncoder(w).Encode(echoResponse{OK: true})
		}))
		defer srv.Close()

		var out echoResponse
		err := newTestTransport(srv, WithMaxRetries(2)).PostJSON(context.Background(), apiKeyPlugin(), "/x", nil, &out)
		require.NoError(t, err)
		assert.True(t, out.OK)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		var out echoResponse
		err := newTestTransport(srv, WithMaxRetries(1)).PostJSON(context.Background(), apiKeyPlugin(), "/x", nil, &out)
		assert.Equal(t, ErrorRateLimited, GetCategory(err))
		assert.True(t, IsRetryable(err))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not retry authentication failures", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		var out echoResponse
		err := newTestTransport(srv, WithMaxRetries(3)).PostJSON(context.Background(), basicPlugin(), "/x", nil, &out)
		assert.Equal(t, ErrorAuthentication, GetCategory(err))
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestHTTPTransportTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out echoResponse
	err := newTestTransport(srv, WithMaxRetries(0)).PostJSON(ctx, apiKeyPlugin(), "/x", nil, &out)
	assert.Equal(t, ErrorTimeout, GetCategory(err))
}

func TestDecodeResponse(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   ErrorCategory
	}{
		{http.StatusUnauthorized, "", ErrorAuthentication},
		{http.StatusForbidden, "", ErrorAuthentication},
		{http.StatusNotFound, "", ErrorNotFound},
		{http.StatusTooManyRequests, "", ErrorRateLimited},
		{http.StatusBadRequest, "", ErrorBadData},
		{http.StatusBadGateway, "", ErrorProviderOutage},
		{http.StatusTeapot, "", ErrorInternal},
		{http.StatusOK, "{not json", ErrorBadData},
	}
	for _, tc := range cases {
		var out echoResponse
		err := DecodeResponse("nsdl", tc.status, []byte(tc.body), &out)
		require.Error(t, err, "status %d", tc.status)
		assert.Equal(t, tc.want, GetCategory(err), "status %d", tc.status)
	}

	var out echoResponse
	require.NoError(t, DecodeResponse("nsdl", http.StatusOK, []byte(`{"ok":true}`), &out))
	assert.True(t, out.OK)
}
