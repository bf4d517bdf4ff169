package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/clickventure/backend/internal/domain"
	"github.com/clickventure/backend/internal/middleware"
)

// decodeBody decodes the JSON request body into dst. On failure it writes the
// error response itself and returns false. Oversized bodies, cut off by the
// body size middleware, are answered with 413.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Code: "request_too_large", Message: "request body too large"})
	case errors.Is(err, io.EOF):
		badRequest(w, "request body is required")
	default:
		badRequest(w, "malformed request body")
	}
	return false
}

// pathID binds the UUID path parameter name.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		badRequest(w, fmt.Sprintf("invalid %s: must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// queryString binds an optional string query parameter. Absent parameters
// yield "".
func queryString(r *http.Request, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// pagination binds the optional page and limit query parameters.
func pagination(w http.ResponseWriter, r *http.Request) (domain.PaginationParams, bool) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		badRequest(w, "invalid page: must be an integer")
		return domain.PaginationParams{}, false
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		badRequest(w, "invalid limit: must be an integer")
		return domain.PaginationParams{}, false
	}
	return domain.NewPaginationParams(page, limit), true
}

// currentUser returns the authenticated user's id. Routes without the auth
// middleware never call it; a missing id is still answered with 401.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "unauthorized", Message: "authentication required"})
		return uuid.Nil, false
	}
	return id, true
}

// pageResponse is the envelope of every paged listing.
type pageResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func newPageResponse[T any](page domain.Page[T], p domain.PaginationParams) pageResponse[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return pageResponse[T]{Items: items, Total: page.Total, Page: p.Page, Limit: p.Limit}
}
