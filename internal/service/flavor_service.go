package service

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mmynk/flavors/internal/middleware"
	"github.com/mmynk/flavors/internal/models"
	"github.com/mmynk/flavors/internal/storage"
)

// maxBodyBytes caps request bodies; a flavor is a name and a flag.
const maxBodyBytes = 1 << 20

// FlavorService serves the /api/flavors routes.
type FlavorService struct {
	store storage.FlavorStore
}

// NewFlavorService creates a new FlavorService with the given storage backend.
func NewFlavorService(store storage.FlavorStore) *FlavorService {
	return &FlavorService{store: store}
}

// Register attaches the flavor routes to mux.
func (s *FlavorService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/flavors", s.ListFlavors)
	mux.HandleFunc("GET /api/flavors/{id}", s.GetFlavor)
	mux.HandleFunc("POST /api/flavors", s.CreateFlavor)
	mux.HandleFunc("PUT /api/flavors/{id}", s.UpdateFlavor)
	mux.HandleFunc("DELETE /api/flavors/{id}", s.DeleteFlavor)
}

// ListFlavors returns every flavor, newest first.
func (s *FlavorService) ListFlavors(w http.ResponseWriter, r *http.Request) {
	flavors, err := s.store.ListFlavors(r.Context())
	if err != nil {
		writeError(w, r, "ListFlavors", err)
		return
	}

	slog.Debug("ListFlavors successful", "request_id", middleware.GetRequestID(r.Context()), "count", len(flavors))
	writeJSON(w, http.StatusOK, flavors)
}

// GetFlavor returns one flavor by id.
func (s *FlavorService) GetFlavor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, "GetFlavor", err)
		return
	}

	flavor, err := s.store.GetFlavor(r.Context(), id)
	if err != nil {
		writeError(w, r, "GetFlavor", err)
		return
	}

	writeJSON(w, http.StatusOK, flavor)
}

// CreateFlavor inserts a flavor from {name, is_favorite?}.
func (s *FlavorService) CreateFlavor(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		writeError(w, r, "CreateFlavor", err)
		return
	}

	flavor, err := s.store.CreateFlavor(r.Context(), in)
	if err != nil {
		writeError(w, r, "CreateFlavor", err)
		return
	}

	slog.Info("Flavor created",
		"request_id", middleware.GetRequestID(r.Context()),
		"flavor_id", flavor.ID,
		"name", flavor.Name,
	)
	writeJSON(w, http.StatusCreated, flavor)
}

// UpdateFlavor overwrites name and is_favorite of an existing flavor.
func (s *FlavorService) UpdateFlavor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, "UpdateFlavor", err)
		return
	}

	in, err := decodeInput(w, r)
	if err != nil {
		writeError(w, r, "UpdateFlavor", err)
		return
	}

	flavor, err := s.store.UpdateFlavor(r.Context(), id, in)
	if err != nil {
		writeError(w, r, "UpdateFlavor", err)
		return
	}

	slog.Info("Flavor updated", "request_id", middleware.GetRequestID(r.Context()), "flavor_id", flavor.ID)
	writeJSON(w, http.StatusOK, flavor)
}

// DeleteFlavor removes a flavor. The response is 204 whether or not the
// row existed.
func (s *FlavorService) DeleteFlavor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, "DeleteFlavor", err)
		return
	}

	if err := s.store.DeleteFlavor(r.Context(), id); err != nil {
		writeError(w, r, "DeleteFlavor", err)
		return
	}

	slog.Info("Flavor deleted", "request_id", middleware.GetRequestID(r.Context()), "flavor_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// parseID reads the {id} path segment as a base-10 int64.
func parseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &InputError{Message: msgInvalidID, Err: err}
	}
	return id, nil
}

// decodeInput decodes a FlavorInput. An empty body decodes to the zero
// input so a missing name reaches the store's NOT NULL constraint. The body
// must hold a single JSON value.
func decodeInput(w http.ResponseWriter, r *http.Request) (models.FlavorInput, error) {
	var in models.FlavorInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	err := dec.Decode(&in)
	if errors.Is(err, io.EOF) {
		return models.FlavorInput{}, nil
	}
	if err != nil {
		return models.FlavorInput{}, &InputError{Message: msgInvalidBody, Err: err}
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return models.FlavorInput{}, &InputError{Message: msgInvalidBody, Err: err}
	}
	return in, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
