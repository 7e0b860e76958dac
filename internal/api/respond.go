// internal/api/respond.go
//
// JSON encoding helpers and the error-to-status mapping.
//
// Context
// -------
// Every handler ends in writeJSON or writeError.  Errors are classified
// once, by domain.Kind, and each kind maps to one status code:
//
//	not_found        404
//	conflict         409
//	validation       422
//	unauthenticated  401
//	external         502
//	storage          500
//
// The body is always {"status":false,"error":{"kind":…,"message":…}}.
// Storage and external failures carry a fixed message; their causes go to
// the log only.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/logger"
)

// maxBody caps request bodies.  Content payloads with deep repeaters stay
// well under this.
const maxBody = 4 << 20

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Status bool      `json:"status"`
	Error  errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func statusOf(kind string) int {
	switch kind {
	case "not_found":
		return http.StatusNotFound
	case "conflict":
		return http.StatusConflict
	case "validation":
		return http.StatusUnprocessableEntity
	case "unauthenticated":
		return http.StatusUnauthorized
	case "external":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.Kind(err)
	code := statusOf(kind)
	msg := err.Error()

	switch kind {
	case "storage":
		logger.FromContext(r.Context()).Errorw("request failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	case "external":
		logger.FromContext(r.Context()).Warnw("upstream failed", "path", r.URL.Path, "err", err)
		msg = "upstream service unavailable"
	case "unauthenticated":
		msg = "authentication required"
	}
	writeJSON(w, code, errorResponse{Error: errorBody{Kind: kind, Message: msg}})
}

// decode reads one JSON document from the body into v.  Malformed input is
// a validation error.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid("request body is empty")
		}
		return domain.Invalid("malformed request body: %v", err)
	}
	return nil
}
