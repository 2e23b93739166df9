package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/flavors/internal/storage"
)

// schemaStore stubs the lifecycle calls Health depends on.
type schemaStore struct {
	storage.FlavorStore
	schemaErr error
	pingErr   error
}

func (s *schemaStore) EnsureSchema(context.Context) error { return s.schemaErr }
func (s *schemaStore) Ping(context.Context) error         { return s.pingErr }

func serveHealth(h *Health) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	return rec
}

func TestHealthNotReadyAfterFailedSchema(t *testing.T) {
	h := NewHealth(&schemaStore{schemaErr: errors.New("permission denied for schema public")})

	err := h.InitSchema(context.Background())
	require.Error(t, err)
	assert.False(t, h.Ready())

	rec := serveHealth(h)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"schema_failed"}`, rec.Body.String())
}

func TestHealthInitializingBeforeSchema(t *testing.T) {
	h := NewHealth(&schemaStore{})

	rec := serveHealth(h)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"initializing"}`, rec.Body.String())
}

func TestHealthRecoversAfterRetriedSchema(t *testing.T) {
	store := &schemaStore{schemaErr: errors.New("database is starting up")}
	h := NewHealth(store)

	require.Error(t, h.InitSchema(context.Background()))
	assert.JSONEq(t, `{"status":"schema_failed"}`, serveHealth(h).Body.String())

	store.schemaErr = nil
	require.NoError(t, h.InitSchema(context.Background()))
	assert.True(t, h.Ready())
	assert.Equal(t, http.StatusOK, serveHealth(h).Code)
}

func TestHealthReadyAfterSchema(t *testing.T) {
	h := NewHealth(&schemaStore{})

	require.NoError(t, h.InitSchema(context.Background()))
	assert.True(t, h.Ready())

	rec := serveHealth(h)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthUnavailableWhenPingFails(t *testing.T) {
	h := NewHealth(&schemaStore{pingErr: errors.New("connection reset")})
	h.MarkReady()

	rec := serveHealth(h)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}
