// Package service contains the business logic for the travel-review API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clickventure/backend/internal/domain"
	"github.com/clickventure/backend/internal/repo"
)

// PlaceLookup is what trip operations need to know about places.
// *PlaceService satisfies it.
type PlaceLookup interface {
	// Snapshot returns the denormalized copy of a place stored in a trip day.
	Snapshot(ctx context.Context, placeID uuid.UUID) (domain.PlaceSnapshot, error)
	// Region returns the region a place belongs to.
	Region(ctx context.Context, placeID uuid.UUID) (string, error)
}

// TripService implements business logic for Trip operations.
// Every method is scoped to the calling user: a trip owned by someone else is
// reported as domain.ErrNotFound.
type TripService struct {
	trips   repo.TripRepo
	places  PlaceLookup
	timeout time.Duration
}

// NewTripService constructs a TripService. timeout bounds the store work of
// each call; zero disables the bound.
func NewTripService(trips repo.TripRepo, places PlaceLookup, timeout time.Duration) *TripService {
	return &TripService{trips: trips, places: places, timeout: timeout}
}

// Create fills defaults, validates, and persists a new trip for userID.
// Returns domain.ErrValidation for a negative day count.
func (s *TripService) Create(ctx context.Context, userID uuid.UUID, input domain.Trip) (domain.Trip, error) {
	trip, err := domain.NewTrip(userID, input)
	if err != nil {
		return domain.Trip{}, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// Get returns a single trip owned by userID.
func (s *TripService) Get(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.trips.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return result, nil
}

// List returns one page of the user's trips, newest first.
// Items is never nil so callers can safely range over it.
func (s *TripService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	trips, total, err := s.trips.ListByUser(ctx, userID, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return domain.Page[domain.Trip]{Items: trips, Total: total}, nil
}

// Update applies a partial patch. A TotalDays change resizes the days in the
// same write. The whole patch is validated before anything changes.
func (s *TripService) Update(ctx context.Context, userID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return s.mutate(ctx, "Update", userID, id, func(t *domain.Trip) error {
		return t.Apply(patch)
	})
}

// Delete removes a trip owned by userID.
func (s *TripService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.trips.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// mutate runs fn against the locked trip and names the failing operation.
func (s *TripService) mutate(ctx context.Context, op string, userID, id uuid.UUID, fn func(*domain.Trip) error) (domain.Trip, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.trips.Mutate(ctx, userID, id, fn)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	return result, nil
}

// withTimeout derives a context bounded by d, or a plain cancelable one when d is zero.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
