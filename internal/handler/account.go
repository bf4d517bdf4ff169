package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/clickventure/backend/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// runningTripRequest sets or, with a null tripId, clears the active trip.
type runningTripRequest struct {
	TripID *uuid.UUID `json:"tripId"`
}

// signUp handles POST /signUp.
func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var in domain.SignUpInput
	if !decodeBody(w, r, &in) {
		return
	}

	user, err := s.accounts.SignUp(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// login handles POST /login and answers with a bearer token.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// getProfile handles GET /users/me.
func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := s.accounts.Profile(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// setRunningTrip handles PUT /users/me/runningTrip.
func (s *Server) setRunningTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req runningTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.accounts.SetRunningTrip(r.Context(), userID, req.TripID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
