package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/clickventure/backend/internal/domain"
)

// itineraryRequest is the body shared by the /trip/... mutation endpoints.
// DayIndex is zero-based and only read by the day operations.
type itineraryRequest struct {
	TripID   uuid.UUID `json:"tripId"`
	PlaceID  uuid.UUID `json:"placeId"`
	DayIndex *int      `json:"dayIndex"`
}

// decodeItinerary decodes and checks an itineraryRequest. withDay requires
// dayIndex to be present.
func decodeItinerary(w http.ResponseWriter, r *http.Request, withDay bool) (itineraryRequest, bool) {
	var req itineraryRequest
	if !decodeBody(w, r, &req) {
		return req, false
	}
	if req.TripID == uuid.Nil || req.PlaceID == uuid.Nil {
		badRequest(w, "tripId and placeId are required")
		return req, false
	}
	if withDay && req.DayIndex == nil {
		badRequest(w, "dayIndex is required")
		return req, false
	}
	return req, true
}

// addPlaceToDay handles POST /trip/addPlaceToDay.
func (s *Server) addPlaceToDay(w http.ResponseWriter, r *http.Request) {
	s.mutateDay(w, r, s.trips.AddPlaceToDay)
}

// removePlaceFromDay handles POST /trip/places/delete.
func (s *Server) removePlaceFromDay(w http.ResponseWriter, r *http.Request) {
	s.mutateDay(w, r, s.trips.RemovePlaceFromDay)
}

// addLikedPlace handles POST /trip/places/addLiked.
func (s *Server) addLikedPlace(w http.ResponseWriter, r *http.Request) {
	s.mutateLiked(w, r, s.trips.AddLikedPlace)
}

// removeLikedPlace handles POST /trip/places/removeLiked.
func (s *Server) removeLikedPlace(w http.ResponseWriter, r *http.Request) {
	s.mutateLiked(w, r, s.trips.RemoveLikedPlace)
}

type dayOp func(ctx context.Context, userID, tripID, placeID uuid.UUID, dayIndex int) (domain.Trip, error)

type likedOp func(ctx context.Context, userID, tripID, placeID uuid.UUID) (domain.Trip, error)

func (s *Server) mutateDay(w http.ResponseWriter, r *http.Request, op dayOp) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	req, ok := decodeItinerary(w, r, true)
	if !ok {
		return
	}

	trip, err := op(r.Context(), userID, req.TripID, req.PlaceID, *req.DayIndex)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (s *Server) mutateLiked(w http.ResponseWriter, r *http.Request, op likedOp) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	req, ok := decodeItinerary(w, r, false)
	if !ok {
		return
	}

	trip, err := op(r.Context(), userID, req.TripID, req.PlaceID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}
