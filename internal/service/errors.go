package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/flavors/internal/middleware"
	"github.com/mmynk/flavors/internal/storage"
)

// Response bodies for failures. Internal error detail is only logged.
const (
	msgInvalidID   = "Invalid id"
	msgInvalidBody = "Invalid request body"
	msgNotFound    = "Flavor not found"
	msgInternal    = "Something went wrong!"
)

// InputError reports a request the client must fix: a malformed path id or
// an undecodable body.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() error { return e.Err }

// statusFor maps an error to its HTTP status and public message:
// InputError -> 400, storage.ErrNotFound -> 404, anything else -> 500.
func statusFor(err error) (int, string) {
	var inputErr *InputError
	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, inputErr.Message
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// writeError logs err and writes the mapped plain-text response.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := statusFor(err)
	requestID := middleware.GetRequestID(r.Context())

	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "request_id", requestID, "error", err)
	} else {
		slog.Info(op+" rejected", "request_id", requestID, "status", status, "error", err)
	}

	http.Error(w, msg, status)
}
