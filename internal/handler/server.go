// Package handler implements the HTTP surface of the travel-review API.
// All handlers are methods on Server; they decode requests, call a service,
// and map results and domain errors onto JSON responses. Routes registers them
// on a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clickventure/backend/internal/domain"
)

// TripServicer defines the trip and itinerary operations the handlers depend on.
// Every call is scoped to the authenticated user.
type TripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.Trip) (domain.Trip, error)
	Get(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Update(ctx context.Context, userID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AddPlaceToDay(ctx context.Context, userID, tripID, placeID uuid.UUID, dayIndex int) (domain.Trip, error)
	RemovePlaceFromDay(ctx context.Context, userID, tripID, placeID uuid.UUID, dayIndex int) (domain.Trip, error)
	AddLikedPlace(ctx context.Context, userID, tripID, placeID uuid.UUID) (domain.Trip, error)
	RemoveLikedPlace(ctx context.Context, userID, tripID, placeID uuid.UUID) (domain.Trip, error)
}

// PlaceServicer defines the place catalogue operations.
type PlaceServicer interface {
	Create(ctx context.Context, place domain.Place) (domain.Place, error)
	Get(ctx context.Context, id uuid.UUID) (domain.PlaceView, error)
	List(ctx context.Context, f domain.PlaceFilter, p domain.PaginationParams) (domain.Page[domain.PlaceSummary], error)
	AddComment(ctx context.Context, userID, placeID uuid.UUID, in domain.CommentInput) (domain.Comment, error)
	AddPhoto(ctx context.Context, userID, placeID uuid.UUID, image string, takenAt time.Time) (domain.Photo, error)
	ScoreComment(ctx context.Context, commentID uuid.UUID, delta int) (int, error)
}

// AccountServicer defines registration, login and profile operations.
type AccountServicer interface {
	SignUp(ctx context.Context, in domain.SignUpInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID uuid.UUID) (domain.User, error)
	SetRunningTrip(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) error
}

// ExportServicer produces the flat itinerary of a trip.
type ExportServicer interface {
	Itinerary(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryRow, error)
}

// Server holds the services behind every endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips    TripServicer
	places   PlaceServicer
	accounts AccountServicer
	export   ExportServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default.
func NewServer(trips TripServicer, places PlaceServicer, accounts AccountServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, places: places, accounts: accounts, export: export, log: log}
}

// Routes registers every endpoint on r. Endpoints that act on behalf of a user
// are wrapped in requireAuth, which must place the user id in the request
// context (see middleware.Authenticate).
func (s *Server) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Post("/signUp", s.signUp)
	r.Post("/login", s.login)

	r.Get("/places", s.listPlaces)
	r.Get("/places/{id}", s.getPlace)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/users/me", s.getProfile)
		r.Put("/users/me/runningTrip", s.setRunningTrip)

		r.Post("/places", s.createPlace)
		r.Post("/places/{id}/comments", s.addComment)
		r.Post("/places/{id}/photos", s.addPhoto)
		r.Post("/comments/{id}/score", s.scoreComment)

		r.Post("/trips", s.createTrip)
		r.Get("/trips", s.listTrips)
		r.Get("/trips/{id}", s.getTrip)
		r.Delete("/trips/{id}", s.deleteTrip)
		r.Get("/trips/{id}/export", s.exportTrip)
		r.Post("/update/trips/{id}", s.updateTrip)

		r.Post("/trip/addPlaceToDay", s.addPlaceToDay)
		r.Post("/trip/places/delete", s.removePlaceFromDay)
		r.Post("/trip/places/addLiked", s.addLikedPlace)
		r.Post("/trip/places/removeLiked", s.removeLikedPlace)
	})
}
