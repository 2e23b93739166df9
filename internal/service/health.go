package service

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mmynk/flavors/internal/storage"
)

const pingTimeout = 2 * time.Second

// Schema states reported by /healthz.
const (
	schemaPending int32 = iota
	schemaReady
	schemaFailed
)

// Health reports whether the schema has been initialized and the store
// answers. The server accepts traffic before it is ready; /healthz lets
// orchestrators tell the difference.
type Health struct {
	store  storage.FlavorStore
	schema atomic.Int32
}

// NewHealth returns a Health that reports not ready until MarkReady.
func NewHealth(store storage.FlavorStore) *Health {
	return &Health{store: store}
}

// MarkReady records that the flavors table exists.
func (h *Health) MarkReady() {
	h.schema.Store(schemaReady)
}

// Ready reports whether MarkReady has been called.
func (h *Health) Ready() bool {
	return h.schema.Load() == schemaReady
}

// InitSchema runs EnsureSchema and marks the service ready on success.
// A failure is recorded as schema_failed until a later call succeeds; the
// error is returned so the caller decides whether it is fatal.
func (h *Health) InitSchema(ctx context.Context) error {
	if err := h.store.EnsureSchema(ctx); err != nil {
		h.schema.Store(schemaFailed)
		return err
	}
	h.MarkReady()
	slog.Info("Flavors table ready")
	return nil
}

// Register attaches GET /healthz to mux.
func (h *Health) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.ServeHealth)
}

// ServeHealth answers 200 when ready and reachable, 503 otherwise.
func (h *Health) ServeHealth(w http.ResponseWriter, r *http.Request) {
	switch h.schema.Load() {
	case schemaPending:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "initializing"})
		return
	case schemaFailed:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "schema_failed"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		slog.Warn("Health check ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
