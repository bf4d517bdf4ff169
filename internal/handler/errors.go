package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/clickventure/backend/internal/domain"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping pairs a domain sentinel with its HTTP status and error code.
// ErrRegionConflict is listed before ErrConflict so it keeps its own code.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrValidation, http.StatusBadRequest, "validation_error"},
	{domain.ErrOutOfRange, http.StatusBadRequest, "out_of_range"},
	{domain.ErrRegionConflict, http.StatusConflict, "region_conflict"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status and error body. Anything that is not a
// known domain error, including domain.ErrUnavailable, becomes a logged 500
// whose message does not leak internals.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.sentinel) {
			writeJSON(w, m.status, errorResponse{Code: m.code, Message: unwrapMessage(err, m.sentinel)})
			return
		}
	}
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal_error", Message: "internal server error"})
}

// badRequest answers 400 for input rejected before reaching a service, such
// as a malformed body or path parameter.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Code: "validation_error", Message: message})
}

// unwrapMessage extracts the human-readable detail that follows the sentinel
// in a wrapped error chain.
// e.g. "service.TripService.Create: validation error: totalDays must be at least 1"
// → "totalDays must be at least 1". Without a detail the sentinel text is used.
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
