package domain

import "github.com/google/uuid"

// ItineraryRow is a single row in a trip itinerary export.
// It is a flat, denormalized view: one row per scheduled place, with trip fields
// repeated on every row. Days with no places yield one row with zero values for
// all place fields so that empty days stay visible.
type ItineraryRow struct {
	// Trip fields, repeated for every row.
	TripID   uuid.UUID
	TripName string

	// Day is 1-based, matching how itineraries are presented to travellers.
	Day int

	// Place fields. Zero values when the day has no places.
	// Position is 1-based within the day.
	Position      int
	PlaceID       uuid.UUID
	PlaceName     string
	PlaceRegion   string
	PlaceCategory Category

	// Liked reports whether the place is currently in the trip's liked set.
	Liked bool
}

// ItineraryRows flattens t.Days into export rows.
func ItineraryRows(t Trip) []ItineraryRow {
	liked := make(map[uuid.UUID]bool, len(t.LikedPlaces))
	for _, id := range t.LikedPlaces {
		liked[id] = true
	}

	var rows []ItineraryRow
	for d, day := range t.Days {
		if len(day) == 0 {
			rows = append(rows, ItineraryRow{TripID: t.ID, TripName: t.Name, Day: d + 1})
			continue
		}
		for i, p := range day {
			rows = append(rows, ItineraryRow{
				TripID:        t.ID,
				TripName:      t.Name,
				Day:           d + 1,
				Position:      i + 1,
				PlaceID:       p.ID,
				PlaceName:     p.Name,
				PlaceRegion:   p.Region,
				PlaceCategory: p.Category,
				Liked:         liked[p.ID],
			})
		}
	}
	return rows
}
