package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clickventure/backend/internal/domain"
)

// AddPlaceToDay appends a snapshot of the place to day dayIndex (0-based).
// Returns domain.ErrNotFound if the trip or place does not exist and
// domain.ErrOutOfRange if the day does not exist.
func (s *TripService) AddPlaceToDay(ctx context.Context, userID, tripID, placeID uuid.UUID, dayIndex int) (domain.Trip, error) {
	snap, err := s.places.Snapshot(ctx, placeID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddPlaceToDay: %w", err)
	}
	return s.mutate(ctx, "AddPlaceToDay", userID, tripID, func(t *domain.Trip) error {
		return t.AddPlaceToDay(snap, dayIndex)
	})
}

// RemovePlaceFromDay removes the first occurrence of the place from day
// dayIndex. Removing a place the day does not hold leaves the trip unchanged.
func (s *TripService) RemovePlaceFromDay(ctx context.Context, userID, tripID, placeID uuid.UUID, dayIndex int) (domain.Trip, error) {
	return s.mutate(ctx, "RemovePlaceFromDay", userID, tripID, func(t *domain.Trip) error {
		_, err := t.RemovePlaceFromDay(placeID, dayIndex)
		return err
	})
}

// AddLikedPlace adds the place to the trip's liked set.
// Returns domain.ErrRegionConflict when the place lies outside the trip's
// regions and domain.ErrConflict when it is already liked.
func (s *TripService) AddLikedPlace(ctx context.Context, userID, tripID, placeID uuid.UUID) (domain.Trip, error) {
	region, err := s.places.Region(ctx, placeID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddLikedPlace: %w", err)
	}
	return s.mutate(ctx, "AddLikedPlace", userID, tripID, func(t *domain.Trip) error {
		return t.AddLikedPlace(placeID, region)
	})
}

// RemoveLikedPlace removes the place from the trip's liked set.
// Returns domain.ErrNotFound when the place is not liked.
func (s *TripService) RemoveLikedPlace(ctx context.Context, userID, tripID, placeID uuid.UUID) (domain.Trip, error) {
	return s.mutate(ctx, "RemoveLikedPlace", userID, tripID, func(t *domain.Trip) error {
		return t.RemoveLikedPlace(placeID)
	})
}
