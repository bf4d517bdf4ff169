package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clickventure/backend/internal/domain"
	"github.com/clickventure/backend/internal/repo"
)

// ExportService flattens a trip's itinerary into export rows.
type ExportService struct {
	trips   repo.TripRepo
	timeout time.Duration
}

// NewExportService constructs an ExportService backed by the provided TripRepo.
func NewExportService(trips repo.TripRepo, timeout time.Duration) *ExportService {
	return &ExportService{trips: trips, timeout: timeout}
}

// Itinerary returns one ItineraryRow per scheduled place of the trip, in day
// then position order. Days with no places contribute one row with empty
// place fields.
func (s *ExportService) Itinerary(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryRow, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Itinerary: %w", err)
	}
	rows := domain.ItineraryRows(trip)
	if rows == nil {
		rows = []domain.ItineraryRow{}
	}
	return rows, nil
}
