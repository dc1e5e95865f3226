package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/orbitalhq/console-api/internal/errors"
	"github.com/orbitalhq/console-api/internal/ports"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Client disconnects are not recoverable here.
		return
	}
}

// WriteError writes the unified error body shape.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, map[string]string{"error": message})
}

// WriteAppError maps an application error to its HTTP rendering. Upstream
// errors carry their backend status through verbatim; everything unexpected
// collapses to a generic 502 so backend internals never leak to the browser.
func WriteAppError(w http.ResponseWriter, err error) {
	if errors.Is(err, ports.ErrUnauthenticated) {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		WriteError(w, http.StatusBadGateway, "Upstream request failed")
		return
	}

	switch appErr.Code {
	case apperrors.ErrCodeNotFound:
		WriteError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrCodeValidation:
		WriteError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrCodeUpstream:
		status := appErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		WriteError(w, status, appErr.Message)
	case apperrors.ErrCodeTimeout:
		WriteError(w, http.StatusServiceUnavailable, appErr.Message)
	default:
		WriteError(w, http.StatusBadGateway, appErr.Message)
	}
}

// DecodeJSON decodes the request body into dst. On failure it writes a 400
// and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
