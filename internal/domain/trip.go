// Package domain contains the core data types and pure business rules of the
// travel-review backend. It has no dependencies on the storage or HTTP layers
// and is imported by every other internal package (repo, service, handler).
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults applied to new trips when the caller leaves a field empty.
const (
	DefaultTripName        = "New Trip"
	DefaultTripDescription = "No description provided."
	DefaultTripImage       = "default-image.jpg"
	DefaultTotalDays       = 1
)

// MaxTotalDays bounds how many day-buckets a trip may hold.
const MaxTotalDays = 365

// PlaceSnapshot is a copy of a place taken when it was added to a trip day.
// It is never refreshed from the live Place.
type PlaceSnapshot struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Region   string    `json:"region"`
	Category Category  `json:"category"`
	Location string    `json:"location,omitempty"`
	Image    string    `json:"image,omitempty"`
	Rate     float64   `json:"rate"`
}

// Day is one day-bucket of a trip: the places planned for that day, in order.
type Day []PlaceSnapshot

// Trip is a user-owned multi-day itinerary.
//
// len(Days) always equals TotalDays. LikedPlaces is a set of place ids kept in
// insertion order; it is independent of the places scheduled in Days.
type Trip struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"userId"`
	Name        string      `json:"tripName"`
	Regions     []string    `json:"region"`
	TotalDays   int         `json:"totalDays"`
	Description string      `json:"description"`
	Image       string      `json:"imageTrip"`
	LikedPlaces []uuid.UUID `json:"likedPlaces"`
	Days        []Day       `json:"days"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TripPatch is a partial update. Nil fields are left unchanged.
type TripPatch struct {
	Name        *string `json:"tripName,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"imageTrip,omitempty"`
	TotalDays   *int    `json:"totalDays,omitempty"`
}

// NewTrip builds a trip owned by userID with defaults filled in and TotalDays
// empty day-buckets. A zero TotalDays means the default of one day.
func NewTrip(userID uuid.UUID, t Trip) (Trip, error) {
	if t.TotalDays == 0 {
		t.TotalDays = DefaultTotalDays
	}
	if err := checkTotalDays(t.TotalDays); err != nil {
		return Trip{}, err
	}
	if strings.TrimSpace(t.Name) == "" {
		t.Name = DefaultTripName
	}
	if t.Description == "" {
		t.Description = DefaultTripDescription
	}
	if t.Image == "" {
		t.Image = DefaultTripImage
	}
	regions := make([]string, 0, len(t.Regions))
	for _, r := range t.Regions {
		if r = strings.TrimSpace(r); r != "" && !slices.Contains(regions, r) {
			regions = append(regions, r)
		}
	}

	t.ID = uuid.Nil
	t.UserID = userID
	t.Regions = regions
	t.LikedPlaces = []uuid.UUID{}
	t.Days = make([]Day, t.TotalDays)
	for i := range t.Days {
		t.Days[i] = Day{}
	}
	return t, nil
}

// Resize sets the number of days to n. Trailing days, and the places in them,
// are dropped when shrinking; empty days are appended when growing. Liked
// places are not touched. n outside 1..MaxTotalDays fails with ErrValidation
// and leaves the trip unchanged.
func (t *Trip) Resize(n int) error {
	if err := checkTotalDays(n); err != nil {
		return err
	}
	if n < len(t.Days) {
		t.Days = t.Days[:n:n]
	}
	for len(t.Days) < n {
		t.Days = append(t.Days, Day{})
	}
	t.TotalDays = n
	return nil
}

// AddPlaceToDay appends p to day dayIndex.
func (t *Trip) AddPlaceToDay(p PlaceSnapshot, dayIndex int) error {
	if err := t.checkDay(dayIndex); err != nil {
		return err
	}
	t.Days[dayIndex] = append(t.Days[dayIndex], p)
	return nil
}

// RemovePlaceFromDay removes the first snapshot of placeID from day dayIndex.
// It reports whether a snapshot was removed; a missing place is not an error.
func (t *Trip) RemovePlaceFromDay(placeID uuid.UUID, dayIndex int) (bool, error) {
	if err := t.checkDay(dayIndex); err != nil {
		return false, err
	}
	day := t.Days[dayIndex]
	i := slices.IndexFunc(day, func(s PlaceSnapshot) bool { return s.ID == placeID })
	if i < 0 {
		return false, nil
	}
	t.Days[dayIndex] = slices.Delete(slices.Clone(day), i, i+1)
	return true, nil
}

// AddLikedPlace adds placeID to the liked set. The place's region must be one of
// the trip's regions (ErrRegionConflict) and it must not be liked already
// (ErrConflict).
func (t *Trip) AddLikedPlace(placeID uuid.UUID, region string) error {
	if !slices.Contains(t.Regions, region) {
		return fmt.Errorf("%w: region %q is not part of this trip", ErrRegionConflict, region)
	}
	if slices.Contains(t.LikedPlaces, placeID) {
		return fmt.Errorf("%w: place already liked", ErrConflict)
	}
	t.LikedPlaces = append(t.LikedPlaces, placeID)
	return nil
}

// RemoveLikedPlace drops placeID from the liked set, or fails with ErrNotFound.
func (t *Trip) RemoveLikedPlace(placeID uuid.UUID) error {
	i := slices.Index(t.LikedPlaces, placeID)
	if i < 0 {
		return fmt.Errorf("%w: place is not liked", ErrNotFound)
	}
	t.LikedPlaces = slices.Delete(slices.Clone(t.LikedPlaces), i, i+1)
	return nil
}

// Apply validates the whole patch first and only then mutates the trip, so a
// rejected patch leaves it untouched.
func (t *Trip) Apply(p TripPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: tripName must not be empty", ErrValidation)
	}
	if p.TotalDays != nil {
		if err := checkTotalDays(*p.TotalDays); err != nil {
			return err
		}
	}

	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
	if p.TotalDays != nil {
		return t.Resize(*p.TotalDays)
	}
	return nil
}

func checkTotalDays(n int) error {
	if n < 1 || n > MaxTotalDays {
		return fmt.Errorf("%w: totalDays must be between 1 and %d", ErrValidation, MaxTotalDays)
	}
	return nil
}

func (t *Trip) checkDay(dayIndex int) error {
	if dayIndex < 0 || dayIndex >= len(t.Days) {
		return fmt.Errorf("%w: day %d does not exist (trip has %d days)", ErrOutOfRange, dayIndex, len(t.Days))
	}
	return nil
}
