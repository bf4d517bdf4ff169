package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category tags a place and selects which payload and rating dimensions apply.
type Category string

const (
	CategoryThingsToDo   Category = "thingsToDo"
	CategoryThingsToEat  Category = "thingsToEat"
	CategoryPlacesToStay Category = "placesToStay"
)

// ParseCategory accepts the three category tags case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range []Category{CategoryThingsToDo, CategoryThingsToEat, CategoryPlacesToStay} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
}

// Dimensions returns the five sub-rating names for the category.
// Any category other than thingsToDo and thingsToEat is rated as lodging.
func (c Category) Dimensions() []string {
	switch c {
	case CategoryThingsToDo:
		return []string{"locationRate", "safety", "facilities", "convenience", "staff"}
	case CategoryThingsToEat:
		return []string{"foodQuality", "valueForMoney", "service", "menuVariety", "ambiance"}
	default:
		return []string{"location", "service", "facilities", "roomQuality", "cleanliness"}
	}
}

// GeoLocation is the map position of a place.
type GeoLocation struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	PlaceID string  `json:"placeId,omitempty"`
}

// Place is a reviewable point of interest. Ratings are never stored on it;
// see AggregateRatings.
type Place struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Region      string          `json:"region"`
	Category    Category        `json:"category"`
	SubTags     []string        `json:"subTags"`
	Location    string          `json:"location,omitempty"`
	Geo         GeoLocation     `json:"googleLocation"`
	Description string          `json:"description,omitempty"`
	Images      []string        `json:"imagePlace"`
	Type        string          `json:"type,omitempty"`
	PriceRange  string          `json:"priceRange,omitempty"`
	Email       string          `json:"email,omitempty"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
	Website     string          `json:"website,omitempty"`
	Details     CategoryDetails `json:"details,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CategoryDetails is the category-specific payload of a Place. The concrete type
// always matches the place's Category.
type CategoryDetails interface {
	Category() Category
}

// ThingsToDoDetails describes an attraction or activity.
type ThingsToDoDetails struct {
	Duration      string   `json:"duration,omitempty"`
	ActivityTypes []string `json:"activityType,omitempty"`
	Accessibility []string `json:"accessibility,omitempty"`
	WhatToExpect  []string `json:"whatToExpect,omitempty"`
}

// ThingsToEatDetails describes a restaurant or cafe.
type ThingsToEatDetails struct {
	Cuisines     []string `json:"cuisines,omitempty"`
	SpecialDiets []string `json:"specialDiets,omitempty"`
	Meals        []string `json:"meals,omitempty"`
	Features     []string `json:"featuresList,omitempty"`
}

// PlacesToStayDetails describes lodging.
type PlacesToStayDetails struct {
	AccommodationTypes []string `json:"accommodationType,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
	RoomTypes          []string `json:"roomType,omitempty"`
	LocationType       string   `json:"locationType,omitempty"`
	AdditionalServices []string `json:"additionalServices,omitempty"`
	LanguagesSpoken    []string `json:"languagesSpoken,omitempty"`
	HotelClass         int      `json:"hotelClass,omitempty"`
}

func (ThingsToDoDetails) Category() Category   { return CategoryThingsToDo }
func (ThingsToEatDetails) Category() Category  { return CategoryThingsToEat }
func (PlacesToStayDetails) Category() Category { return CategoryPlacesToStay }

// DecodeDetails unmarshals a JSON payload into the details type selected by c.
// Empty input yields the zero payload of that category.
func DecodeDetails(c Category, raw []byte) (CategoryDetails, error) {
	var d CategoryDetails
	switch c {
	case CategoryThingsToDo:
		var v ThingsToDoDetails
		if err := unmarshalOptional(raw, &v); err != nil {
			return nil, err
		}
		d = v
	case CategoryThingsToEat:
		var v ThingsToEatDetails
		if err := unmarshalOptional(raw, &v); err != nil {
			return nil, err
		}
		d = v
	case CategoryPlacesToStay:
		var v PlacesToStayDetails
		if err := unmarshalOptional(raw, &v); err != nil {
			return nil, err
		}
		d = v
	default:
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, c)
	}
	return d, nil
}

func unmarshalOptional(raw []byte, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: malformed details: %v", ErrValidation, err)
	}
	return nil
}

// PlaceFilter narrows a place listing. Empty fields do not filter.
type PlaceFilter struct {
	Region   string
	Category Category
	SubTag   string
	Query    string
}

// PlaceSummary is a listed place with its read-time rating.
type PlaceSummary struct {
	Place
	Rating RatingView `json:"rating"`
}

// PlaceView is the full read model served for a single place.
type PlaceView struct {
	Place
	Rating   RatingView `json:"rating"`
	Comments []Comment  `json:"comments"`
	Photos   []Photo    `json:"photos"`
}

// Snapshot copies the fields a trip day keeps about a place at add-time.
func (p Place) Snapshot(rate float64) PlaceSnapshot {
	s := PlaceSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Region:   p.Region,
		Category: p.Category,
		Location: p.Location,
		Rate:     rate,
	}
	if len(p.Images) > 0 {
		s.Image = p.Images[0]
	}
	return s
}
