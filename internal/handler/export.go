package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/clickventure/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "day", "position",
	"place_id", "place_name", "place_region", "place_category", "liked",
}

// exportRow is the JSON shape of one itinerary row. Place fields are omitted
// on rows of empty days.
type exportRow struct {
	TripID        uuid.UUID  `json:"tripId"`
	TripName      string     `json:"tripName"`
	Day           int        `json:"day"`
	Position      int        `json:"position,omitempty"`
	PlaceID       *uuid.UUID `json:"placeId,omitempty"`
	PlaceName     string     `json:"placeName,omitempty"`
	PlaceRegion   string     `json:"placeRegion,omitempty"`
	PlaceCategory string     `json:"placeCategory,omitempty"`
	Liked         bool       `json:"liked"`
}

// exportTrip handles GET /trips/{id}/export.
// It returns one row per scheduled place, and one per empty day.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) exportTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	format, err := queryString(r, "format")
	if err != nil || (format != "" && format != "json" && format != "csv") {
		badRequest(w, "format must be json or csv")
		return
	}

	rows, err := s.export.Itinerary(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.csv"`, id))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buildCSV(rows))
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

func buildJSONRows(rows []domain.ItineraryRow) []exportRow {
	out := make([]exportRow, 0, len(rows))
	for _, r := range rows {
		row := exportRow{
			TripID:        r.TripID,
			TripName:      r.TripName,
			Day:           r.Day,
			Position:      r.Position,
			PlaceName:     r.PlaceName,
			PlaceRegion:   r.PlaceRegion,
			PlaceCategory: string(r.PlaceCategory),
			Liked:         r.Liked,
		}
		if r.PlaceID != uuid.Nil {
			placeID := r.PlaceID
			row.PlaceID = &placeID
		}
		out = append(out, row)
	}
	return out
}

// buildCSV encodes rows as CSV with a header line. Place columns of empty
// days are left blank.
func buildCSV(rows []domain.ItineraryRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail.
	_ = w.Write(csvHeaders)
	for _, r := range rows {
		_ = w.Write(csvRecord(r))
	}
	w.Flush()
	return buf.Bytes()
}

func csvRecord(r domain.ItineraryRow) []string {
	record := []string{r.TripID.String(), r.TripName, strconv.Itoa(r.Day), "", "", "", "", "", ""}
	if r.PlaceID == uuid.Nil {
		return record
	}
	record[3] = strconv.Itoa(r.Position)
	record[4] = r.PlaceID.String()
	record[5] = r.PlaceName
	record[6] = r.PlaceRegion
	record[7] = string(r.PlaceCategory)
	record[8] = strconv.FormatBool(r.Liked)
	return record
}
