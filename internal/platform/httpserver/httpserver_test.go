package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all dependencies healthy", func(t *testing.T) {
		w := httptest.NewRecorder()
		HealthHandler(map[string]Check{"redis": ok, "postgres": ok})(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("one dependency down", func(t *testing.T) {
		w := httptest.NewRecorder()
		HealthHandler(map[string]Check{"redis": down, "postgres": ok})(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body struct {
			Status       string            `json:"status"`
			Dependencies map[string]string `json:"dependencies"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "unhealthy", body.Dependencies["redis"])
		assert.Equal(t, "ok", body.Dependencies["postgres"])
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("no checks", func(t *testing.T) {
		w := httptest.NewRecorder()
		HealthHandler(nil)(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestNewSetsTimeouts(t *testing.T) {
	srv := New(":0", http.NotFoundHandler())
	assert.NotZero(t, srv.ReadHeaderTimeout)
	assert.NotZero(t, srv.WriteTimeout)
}
