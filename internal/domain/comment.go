package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Comment is a user-authored review of a Place.
// Scores holds the sub-ratings of the place's category; it may be nil for
// comments written without sub-ratings.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PlaceID   uuid.UUID  `json:"placeId"`
	UserID    uuid.UUID  `json:"userId"`
	UserName  string     `json:"userName"`
	Category  Category   `json:"category"`
	Rate      float64    `json:"rate"`
	Title     string     `json:"title"`
	Body      string     `json:"commentBody"`
	WrittenAt time.Time  `json:"writtenDate"`
	VisitedAt *time.Time `json:"visitDate,omitempty"`
	Scores    SubScores  `json:"scores,omitempty"`
	Score     int        `json:"score"`
}

// SubScores is the category-specific rating payload of a comment.
type SubScores interface {
	Category() Category
	// Values returns every dimension of the category keyed by name.
	Values() map[string]float64
}

// ThingsToDoScores are the sub-ratings of an attraction.
type ThingsToDoScores struct {
	LocationRate float64 `json:"locationRate"`
	Safety       float64 `json:"safety"`
	Facilities   float64 `json:"facilities"`
	Convenience  float64 `json:"convenience"`
	Staff        float64 `json:"staff"`
}

// ThingsToEatScores are the sub-ratings of a restaurant.
type ThingsToEatScores struct {
	FoodQuality   float64 `json:"foodQuality"`
	ValueForMoney float64 `json:"valueForMoney"`
	Service       float64 `json:"service"`
	MenuVariety   float64 `json:"menuVariety"`
	Ambiance      float64 `json:"ambiance"`
}

// PlacesToStayScores are the sub-ratings of lodging.
type PlacesToStayScores struct {
	Location    float64 `json:"location"`
	Service     float64 `json:"service"`
	Facilities  float64 `json:"facilities"`
	RoomQuality float64 `json:"roomQuality"`
	Cleanliness float64 `json:"cleanliness"`
}

func (ThingsToDoScores) Category() Category   { return CategoryThingsToDo }
func (ThingsToEatScores) Category() Category  { return CategoryThingsToEat }
func (PlacesToStayScores) Category() Category { return CategoryPlacesToStay }

func (s ThingsToDoScores) Values() map[string]float64 {
	return map[string]float64{
		"locationRate": s.LocationRate,
		"safety":       s.Safety,
		"facilities":   s.Facilities,
		"convenience":  s.Convenience,
		"staff":        s.Staff,
	}
}

func (s ThingsToEatScores) Values() map[string]float64 {
	return map[string]float64{
		"foodQuality":   s.FoodQuality,
		"valueForMoney": s.ValueForMoney,
		"service":       s.Service,
		"menuVariety":   s.MenuVariety,
		"ambiance":      s.Ambiance,
	}
}

func (s PlacesToStayScores) Values() map[string]float64 {
	return map[string]float64{
		"location":    s.Location,
		"service":     s.Service,
		"facilities":  s.Facilities,
		"roomQuality": s.RoomQuality,
		"cleanliness": s.Cleanliness,
	}
}

// MinRate and MaxRate bound every rating value a user can submit.
const (
	MinRate = 1
	MaxRate = 5
)

// NewSubScores builds the sub-scores of category c from named values.
// Keys outside the category's dimensions and values outside 0..MaxRate are
// rejected with ErrValidation. Missing dimensions default to 0.
// A nil or empty map yields nil scores.
func NewSubScores(c Category, values map[string]float64) (SubScores, error) {
	if len(values) == 0 {
		return nil, nil
	}
	dims := c.Dimensions()
	for k, v := range values {
		if !slices.Contains(dims, k) {
			return nil, fmt.Errorf("%w: %q is not a %s rating", ErrValidation, k, c)
		}
		if v < 0 || v > MaxRate {
			return nil, fmt.Errorf("%w: %s must be between 0 and %d", ErrValidation, k, MaxRate)
		}
	}
	switch c {
	case CategoryThingsToDo:
		return ThingsToDoScores{
			LocationRate: values["locationRate"],
			Safety:       values["safety"],
			Facilities:   values["facilities"],
			Convenience:  values["convenience"],
			Staff:        values["staff"],
		}, nil
	case CategoryThingsToEat:
		return ThingsToEatScores{
			FoodQuality:   values["foodQuality"],
			ValueForMoney: values["valueForMoney"],
			Service:       values["service"],
			MenuVariety:   values["menuVariety"],
			Ambiance:      values["ambiance"],
		}, nil
	default:
		return PlacesToStayScores{
			Location:    values["location"],
			Service:     values["service"],
			Facilities:  values["facilities"],
			RoomQuality: values["roomQuality"],
			Cleanliness: values["cleanliness"],
		}, nil
	}
}

// CommentInput is what a user submits when reviewing a place.
type CommentInput struct {
	Rate      float64            `json:"rate"`
	Title     string             `json:"title"`
	Body      string             `json:"commentBody"`
	VisitedAt *time.Time         `json:"visitDate,omitempty"`
	Scores    map[string]float64 `json:"scores,omitempty"`
}

// Photo is a user-submitted image of a Place. Image is a URL or storage path.
type Photo struct {
	ID       uuid.UUID `json:"id"`
	PlaceID  uuid.UUID `json:"placeId"`
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
	Image    string    `json:"image"`
	TakenAt  time.Time `json:"dateOfTaken"`
	Score    int       `json:"score"`
}
