package handler

import (
	"net/http"

	"github.com/clickventure/backend/internal/domain"
)

// createTripRequest is the body of POST /trips. Omitted fields take the trip
// defaults (see domain.NewTrip).
type createTripRequest struct {
	Name        string   `json:"tripName"`
	Regions     []string `json:"region"`
	TotalDays   int      `json:"totalDays"`
	Description string   `json:"description"`
	Image       string   `json:"imageTrip"`
}

func (req createTripRequest) toTrip() domain.Trip {
	return domain.Trip{
		Name:        req.Name,
		Regions:     req.Regions,
		TotalDays:   req.TotalDays,
		Description: req.Description,
		Image:       req.Image,
	}
}

// createTrip handles POST /trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req createTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := s.trips.Create(r.Context(), userID, req.toTrip())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// listTrips handles GET /trips?page=&limit=.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	p, ok := pagination(w, r)
	if !ok {
		return
	}

	page, err := s.trips.List(r.Context(), userID, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(page, p))
}

// getTrip handles GET /trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	trip, err := s.trips.Get(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// updateTrip handles POST /update/trips/{id}. The body is a partial update;
// omitted fields keep their value and totalDays resizes the day list.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var patch domain.TripPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	trip, err := s.trips.Update(r.Context(), userID, id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// deleteTrip handles DELETE /trips/{id}.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), userID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
