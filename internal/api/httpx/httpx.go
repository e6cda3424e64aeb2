package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/moviefav-backend/internal/services"
)

// request bodies larger than this are rejected
const maxBodyBytes = 1 << 20

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteServiceError maps service errors to status codes. Unknown errors are
// logged and answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *services.ValidationError
		cerr *services.ConflictError
		aerr *services.AuthenticationError
		nerr *services.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		WriteError(w, http.StatusBadRequest, "validation_error", "validation failed", verr.Fields)
	case errors.As(err, &cerr):
		WriteError(w, http.StatusBadRequest, "conflict", cerr.Message, map[string]string{"field": cerr.Field})
	case errors.As(err, &aerr):
		WriteError(w, http.StatusUnauthorized, "unauthorized", aerr.Message, nil)
	case errors.As(err, &nerr):
		WriteError(w, http.StatusNotFound, "not_found", nerr.Message, nil)
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

// DecodeJSON reads a single JSON object into dst. Unknown fields are
// ignored; trailing data and oversized bodies are not.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		case errors.As(err, &mbe):
			return fmt.Errorf("request body exceeds %d bytes", mbe.Limit)
		default:
			return fmt.Errorf("malformed JSON: %w", err)
		}
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// BadRequest answers a body that could not be decoded.
func BadRequest(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
}
