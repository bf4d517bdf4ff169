package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/clickventure/backend/internal/domain"
	"github.com/clickventure/backend/internal/handler"
	"github.com/clickventure/backend/internal/middleware"
)

// Hand-written test doubles. Set only the method fields your test needs.

type mockTripServicer struct {
	create             func(ctx context.Context, userID uuid.UUID, input domain.Trip) (domain.Trip, error)
	get                func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	list               func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update             func(ctx context.Context, userID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete             func(ctx context.Context, userID, id uuid.UUID) error
	addPlaceToDay      func(ctx context.Context, userID, tripID, placeID uuid.UUID, dayIndex int) (domain.Trip, error)
	removePlaceFromDay func(ctx context.Context, userID, tripID, placeID uuid.UUID, dayIndex int) (domain.Trip, error)
	addLikedPlace      func(ctx context.Context, userID, tripID, placeID uuid.UUID) (domain.Trip, error)
	removeLikedPlace   func(ctx context.Context, userID, tripID, placeID uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, userID uuid.UUID, input domain.Trip) (domain.Trip, error) {
	return m.create(ctx, userID, input)
}
func (m *mockTripServicer) Get(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.get(ctx, userID, id)
}
func (m *mockTripServicer) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.list(ctx, userID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, userID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, userID, id, patch)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}
func (m *mockTripServicer) AddPlaceToDay(ctx context.Context, userID, tripID, placeID uuid.UUID, dayIndex int) (domain.Trip, error) {
	return m.addPlaceToDay(ctx, userID, tripID, placeID, dayIndex)
}
func (m *mockTripServicer) RemovePlaceFromDay(ctx context.Context, userID, tripID, placeID uuid.UUID, dayIndex int) (domain.Trip, error) {
	return m.removePlaceFromDay(ctx, userID, tripID, placeID, dayIndex)
}
func (m *mockTripServicer) AddLikedPlace(ctx context.Context, userID, tripID, placeID uuid.UUID) (domain.Trip, error) {
	return m.addLikedPlace(ctx, userID, tripID, placeID)
}
func (m *mockTripServicer) RemoveLikedPlace(ctx context.Context, userID, tripID, placeID uuid.UUID) (domain.Trip, error) {
	return m.removeLikedPlace(ctx, userID, tripID, placeID)
}

type mockPlaceServicer struct {
	create       func(ctx context.Context, place domain.Place) (domain.Place, error)
	get          func(ctx context.Context, id uuid.UUID) (domain.PlaceView, error)
	list         func(ctx context.Context, f domain.PlaceFilter, p domain.PaginationParams) (domain.Page[domain.PlaceSummary], error)
	addComment   func(ctx context.Context, userID, placeID uuid.UUID, in domain.CommentInput) (domain.Comment, error)
	addPhoto     func(ctx context.Context, userID, placeID uuid.UUID, image string, takenAt time.Time) (domain.Photo, error)
	scoreComment func(ctx context.Context, commentID uuid.UUID, delta int) (int, error)
}

func (m *mockPlaceServicer) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	return m.create(ctx, place)
}
func (m *mockPlaceServicer) Get(ctx context.Context, id uuid.UUID) (domain.PlaceView, error) {
	return m.get(ctx, id)
}
func (m *mockPlaceServicer) List(ctx context.Context, f domain.PlaceFilter, p domain.PaginationParams) (domain.Page[domain.PlaceSummary], error) {
	return m.list(ctx, f, p)
}
func (m *mockPlaceServicer) AddComment(ctx context.Context, userID, placeID uuid.UUID, in domain.CommentInput) (domain.Comment, error) {
	return m.addComment(ctx, userID, placeID, in)
}
func (m *mockPlaceServicer) AddPhoto(ctx context.Context, userID, placeID uuid.UUID, image string, takenAt time.Time) (domain.Photo, error) {
	return m.addPhoto(ctx, userID, placeID, image, takenAt)
}
func (m *mockPlaceServicer) ScoreComment(ctx context.Context, commentID uuid.UUID, delta int) (int, error) {
	return m.scoreComment(ctx, commentID, delta)
}

type mockAccountServicer struct {
	signUp         func(ctx context.Context, in domain.SignUpInput) (domain.User, error)
	login          func(ctx context.Context, email, password string) (string, error)
	profile        func(ctx context.Context, userID uuid.UUID) (domain.User, error)
	setRunningTrip func(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) error
}

func (m *mockAccountServicer) SignUp(ctx context.Context, in domain.SignUpInput) (domain.User, error) {
	return m.signUp(ctx, in)
}
func (m *mockAccountServicer) Login(ctx context.Context, email, password string) (string, error) {
	return m.login(ctx, email, password)
}
func (m *mockAccountServicer) Profile(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return m.profile(ctx, userID)
}
func (m *mockAccountServicer) SetRunningTrip(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) error {
	return m.setRunningTrip(ctx, userID, tripID)
}

type mockExportServicer struct {
	itinerary func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryRow, error)
}

func (m *mockExportServicer) Itinerary(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryRow, error) {
	return m.itinerary(ctx, userID, tripID)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer    = (*mockTripServicer)(nil)
	_ handler.PlaceServicer   = (*mockPlaceServicer)(nil)
	_ handler.AccountServicer = (*mockAccountServicer)(nil)
	_ handler.ExportServicer  = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// testUserID is the user every authenticated test request acts as.
var testUserID = uuid.MustParse("6f1c2b8e-4d7a-4c1e-9a51-3b2f0d9e7c10")

// asTestUser stands in for middleware.Authenticate.
func asTestUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), testUserID)))
	})
}

// newHTTPHandler mounts srv on a chi router the way main.go does, with
// authentication replaced by asTestUser.
func newHTTPHandler(srv *handler.Server) http.Handler {
	r := chi.NewRouter()
	srv.Routes(r, asTestUser)
	return r
}

// serve sends one request through h and returns the recorder.
func serve(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeMap decodes a JSON object response. Responses holding interface-typed
// payloads (place details, comment scores) cannot be decoded into domain types.
func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&m))
	return m
}

// requireError checks the status and error code of a failed response.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) map[string]any {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decodeMap(t, rec)
	require.Equal(t, code, body["code"])
	return body
}
