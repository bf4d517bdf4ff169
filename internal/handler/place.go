package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clickventure/backend/internal/domain"
)

// createPlaceRequest is the body of POST /places. Details is decoded against
// the category once the category is known.
type createPlaceRequest struct {
	Name        string             `json:"name"`
	Region      string             `json:"region"`
	Category    string             `json:"category"`
	SubTags     []string           `json:"subTags"`
	Location    string             `json:"location"`
	Geo         domain.GeoLocation `json:"googleLocation"`
	Description string             `json:"description"`
	Images      []string           `json:"imagePlace"`
	Type        string             `json:"type"`
	PriceRange  string             `json:"priceRange"`
	Email       string             `json:"email"`
	PhoneNumber string             `json:"phoneNumber"`
	Website     string             `json:"website"`
	Details     json.RawMessage    `json:"details"`
}

func (req createPlaceRequest) toPlace() (domain.Place, error) {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return domain.Place{}, err
	}
	details, err := domain.DecodeDetails(category, req.Details)
	if err != nil {
		return domain.Place{}, err
	}
	return domain.Place{
		Name:        req.Name,
		Region:      req.Region,
		Category:    category,
		SubTags:     req.SubTags,
		Location:    req.Location,
		Geo:         req.Geo,
		Description: req.Description,
		Images:      req.Images,
		Type:        req.Type,
		PriceRange:  req.PriceRange,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Website:     req.Website,
		Details:     details,
	}, nil
}

// listPlaces handles GET /places?region=&category=&subTag=&q=&page=&limit=.
func (s *Server) listPlaces(w http.ResponseWriter, r *http.Request) {
	var f domain.PlaceFilter
	for _, param := range []struct {
		name string
		dst  *string
	}{
		{"region", &f.Region},
		{"subTag", &f.SubTag},
		{"q", &f.Query},
	} {
		v, err := queryString(r, param.name)
		if err != nil {
			badRequest(w, "invalid "+param.name)
			return
		}
		*param.dst = v
	}
	category, err := queryString(r, "category")
	if err != nil {
		badRequest(w, "invalid category")
		return
	}
	f.Category = domain.Category(category)

	p, ok := pagination(w, r)
	if !ok {
		return
	}

	page, err := s.places.List(r.Context(), f, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(page, p))
}

// createPlace handles POST /places.
func (s *Server) createPlace(w http.ResponseWriter, r *http.Request) {
	var req createPlaceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	place, err := req.toPlace()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.places.Create(r.Context(), place)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getPlace handles GET /places/{id}: the place with its aggregated rating,
// comments and photos.
func (s *Server) getPlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := s.places.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// addComment handles POST /places/{id}/comments.
func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	placeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.CommentInput
	if !decodeBody(w, r, &in) {
		return
	}

	comment, err := s.places.AddComment(r.Context(), userID, placeID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

type addPhotoRequest struct {
	Image   string     `json:"image"`
	TakenAt *time.Time `json:"dateOfTaken"`
}

// addPhoto handles POST /places/{id}/photos. dateOfTaken defaults to now.
func (s *Server) addPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	placeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req addPhotoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var takenAt time.Time
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}

	photo, err := s.places.AddPhoto(r.Context(), userID, placeID, req.Image, takenAt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

type scoreRequest struct {
	Delta int `json:"delta"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

// scoreComment handles POST /comments/{id}/score with {"delta": 1|-1}.
func (s *Server) scoreComment(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req scoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	score, err := s.places.ScoreComment(r.Context(), id, req.Delta)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{Score: score})
}
