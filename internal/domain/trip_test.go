package domain_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickventure/backend/internal/domain"
)

// newTrip returns a trip in Manama with the given number of empty days.
func newTrip(t *testing.T, days int) domain.Trip {
	t.Helper()
	trip, err := domain.NewTrip(uuid.New(), domain.Trip{Regions: []string{"Manama"}, TotalDays: days})
	require.NoError(t, err)
	return trip
}

func snapshot(name string) domain.PlaceSnapshot {
	return domain.PlaceSnapshot{ID: uuid.New(), Name: name, Region: "Manama", Category: domain.CategoryThingsToDo}
}

// ---- NewTrip ---------------------------------------------------------------

func TestNewTrip_Defaults(t *testing.T) {
	owner := uuid.New()

	got, err := domain.NewTrip(owner, domain.Trip{})

	require.NoError(t, err)
	assert.Equal(t, owner, got.UserID)
	assert.Equal(t, domain.DefaultTripName, got.Name)
	assert.Equal(t, domain.DefaultTripDescription, got.Description)
	assert.Equal(t, domain.DefaultTripImage, got.Image)
	assert.Equal(t, 1, got.TotalDays)
	assert.Len(t, got.Days, 1)
	assert.NotNil(t, got.Days[0], "empty days must encode as [] not null")
	assert.NotNil(t, got.LikedPlaces)
}

func TestNewTrip_DaysMatchTotal(t *testing.T) {
	got := newTrip(t, 3)

	assert.Len(t, got.Days, 3)
	assert.Equal(t, 3, got.TotalDays)
}

func TestNewTrip_NegativeDays(t *testing.T) {
	_, err := domain.NewTrip(uuid.New(), domain.Trip{TotalDays: -2})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewTrip_TotalDaysBounds(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		wantErr bool
	}{
		{"one", 1, false},
		{"max", domain.MaxTotalDays, false},
		{"one over max", domain.MaxTotalDays + 1, true},
		{"max int", math.MaxInt, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NewTrip(uuid.New(), domain.Trip{TotalDays: tt.days})

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got.Days, tt.days)
		})
	}
}

func TestNewTrip_RegionsTrimmedAndDeduplicated(t *testing.T) {
	got, err := domain.NewTrip(uuid.New(), domain.Trip{Regions: []string{" Manama", "Riffa", "Manama", ""}})

	require.NoError(t, err)
	assert.Equal(t, []string{"Manama", "Riffa"}, got.Regions)
}

// ---- Resize ----------------------------------------------------------------

func TestTrip_Resize_AnyPriorState(t *testing.T) {
	for _, start := range []int{1, 2, 5} {
		for _, k := range []int{1, 2, 3, 7} {
			trip := newTrip(t, start)
			require.NoError(t, trip.AddPlaceToDay(snapshot("x"), 0))

			require.NoError(t, trip.Resize(k))

			assert.Len(t, trip.Days, k, "start=%d k=%d", start, k)
			assert.Equal(t, k, trip.TotalDays)
		}
	}
}

func TestTrip_Resize_ShrinkDropsTrailingDaysKeepsLiked(t *testing.T) {
	trip := newTrip(t, 3)
	p := snapshot("Fort")
	require.NoError(t, trip.AddPlaceToDay(p, 2))
	require.NoError(t, trip.AddLikedPlace(p.ID, "Manama"))

	require.NoError(t, trip.Resize(2))

	assert.Len(t, trip.Days, 2)
	assert.Equal(t, []uuid.UUID{p.ID}, trip.LikedPlaces, "liked places are decoupled from days")
}

func TestTrip_Resize_GrowAppendsEmptyDays(t *testing.T) {
	trip := newTrip(t, 1)
	p := snapshot("Souq")
	require.NoError(t, trip.AddPlaceToDay(p, 0))

	require.NoError(t, trip.Resize(3))

	assert.Equal(t, domain.Day{p}, trip.Days[0])
	assert.Empty(t, trip.Days[1])
	assert.NotNil(t, trip.Days[2])
}

func TestTrip_Resize_BelowOneLeavesStateUnchanged(t *testing.T) {
	for _, k := range []int{0, -1} {
		trip := newTrip(t, 2)
		before := len(trip.Days)

		err := trip.Resize(k)

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Len(t, trip.Days, before)
		assert.Equal(t, 2, trip.TotalDays)
	}
}

func TestTrip_Resize_UpperBound(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"max", domain.MaxTotalDays, false},
		{"one over max", domain.MaxTotalDays + 1, true},
		{"billion", 1_000_000_000, true},
		{"max int", math.MaxInt, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := newTrip(t, 2)

			err := trip.Resize(tt.n)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Len(t, trip.Days, 2)
				assert.Equal(t, 2, trip.TotalDays)
				return
			}
			require.NoError(t, err)
			assert.Len(t, trip.Days, tt.n)
		})
	}
}

// ---- AddPlaceToDay / RemovePlaceFromDay ------------------------------------

func TestTrip_AddPlaceToDay_OutOfRange(t *testing.T) {
	for _, idx := range []int{2, 3, -1} {
		trip := newTrip(t, 2)

		err := trip.AddPlaceToDay(snapshot("x"), idx)

		assert.ErrorIs(t, err, domain.ErrOutOfRange, "index %d", idx)
		assert.Empty(t, trip.Days[0])
		assert.Empty(t, trip.Days[1])
	}
}

func TestTrip_AddPlaceToDay_AppendsInOrder(t *testing.T) {
	trip := newTrip(t, 1)
	a, b := snapshot("a"), snapshot("b")

	require.NoError(t, trip.AddPlaceToDay(a, 0))
	require.NoError(t, trip.AddPlaceToDay(b, 0))

	assert.Equal(t, domain.Day{a, b}, trip.Days[0])
	assert.Empty(t, trip.LikedPlaces, "adding to a day does not like the place")
}

func TestTrip_RemovePlaceFromDay(t *testing.T) {
	trip := newTrip(t, 2)
	a, b := snapshot("a"), snapshot("b")
	require.NoError(t, trip.AddPlaceToDay(a, 1))
	require.NoError(t, trip.AddPlaceToDay(b, 1))
	require.NoError(t, trip.AddPlaceToDay(a, 1))

	removed, err := trip.RemovePlaceFromDay(a.ID, 1)

	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, domain.Day{b, a}, trip.Days[1], "only the first match is removed")
}

func TestTrip_RemovePlaceFromDay_MissingIsNoop(t *testing.T) {
	trip := newTrip(t, 1)
	a := snapshot("a")
	require.NoError(t, trip.AddPlaceToDay(a, 0))

	removed, err := trip.RemovePlaceFromDay(uuid.New(), 0)

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, domain.Day{a}, trip.Days[0])
}

func TestTrip_RemovePlaceFromDay_OutOfRange(t *testing.T) {
	trip := newTrip(t, 1)

	_, err := trip.RemovePlaceFromDay(uuid.New(), 1)

	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

// ---- liked places ----------------------------------------------------------

func TestTrip_AddLikedPlace_DuplicateIsConflict(t *testing.T) {
	trip := newTrip(t, 1)
	id := uuid.New()
	require.NoError(t, trip.AddLikedPlace(id, "Manama"))

	err := trip.AddLikedPlace(id, "Manama")

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, trip.LikedPlaces, 1)
}

func TestTrip_AddLikedPlace_RegionConflict(t *testing.T) {
	trip := newTrip(t, 1)

	err := trip.AddLikedPlace(uuid.New(), "Riffa")

	assert.ErrorIs(t, err, domain.ErrRegionConflict)
	assert.Empty(t, trip.LikedPlaces)
}

func TestTrip_RemoveLikedPlace(t *testing.T) {
	trip := newTrip(t, 1)
	a, b := uuid.New(), uuid.New()
	require.NoError(t, trip.AddLikedPlace(a, "Manama"))
	require.NoError(t, trip.AddLikedPlace(b, "Manama"))

	require.NoError(t, trip.RemoveLikedPlace(a))

	assert.Equal(t, []uuid.UUID{b}, trip.LikedPlaces)
	assert.ErrorIs(t, trip.RemoveLikedPlace(a), domain.ErrNotFound)
}

// ---- Apply -----------------------------------------------------------------

func TestTrip_Apply_PartialUpdate(t *testing.T) {
	trip := newTrip(t, 3)
	name := "Bahrain Weekend"

	require.NoError(t, trip.Apply(domain.TripPatch{Name: &name}))

	assert.Equal(t, name, trip.Name)
	assert.Equal(t, domain.DefaultTripDescription, trip.Description, "unspecified fields are unchanged")
	assert.Equal(t, 3, trip.TotalDays)
}

func TestTrip_Apply_TotalDaysResizes(t *testing.T) {
	trip := newTrip(t, 3)
	days := 5

	require.NoError(t, trip.Apply(domain.TripPatch{TotalDays: &days}))

	assert.Len(t, trip.Days, 5)
	assert.Equal(t, 5, trip.TotalDays)
}

func TestTrip_Apply_InvalidPatchAppliesNothing(t *testing.T) {
	trip := newTrip(t, 3)
	desc := "changed"
	zero := 0

	err := trip.Apply(domain.TripPatch{Description: &desc, TotalDays: &zero})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.DefaultTripDescription, trip.Description)
	assert.Len(t, trip.Days, 3)
}

func TestTrip_Apply_TotalDaysOverMaxAppliesNothing(t *testing.T) {
	trip := newTrip(t, 3)
	name := "Long haul"
	days := domain.MaxTotalDays + 1

	err := trip.Apply(domain.TripPatch{Name: &name, TotalDays: &days})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.DefaultTripName, trip.Name)
	assert.Len(t, trip.Days, 3)
}

// ---- end-to-end scenario ---------------------------------------------------

func TestTrip_ManamaScenario(t *testing.T) {
	trip := newTrip(t, 3)
	placeX := snapshot("Bahrain National Museum")
	placeY := uuid.New()

	require.NoError(t, trip.Resize(2))
	assert.Len(t, trip.Days, 2)

	require.NoError(t, trip.AddPlaceToDay(placeX, 0))
	assert.Equal(t, domain.Day{placeX}, trip.Days[0])

	require.NoError(t, trip.AddLikedPlace(placeX.ID, "Manama"))
	assert.Equal(t, []uuid.UUID{placeX.ID}, trip.LikedPlaces)

	assert.ErrorIs(t, trip.AddLikedPlace(placeX.ID, "Manama"), domain.ErrConflict)
	assert.Len(t, trip.LikedPlaces, 1)

	assert.ErrorIs(t, trip.AddLikedPlace(placeY, "Riffa"), domain.ErrRegionConflict)
}

func TestItineraryRows(t *testing.T) {
	trip := newTrip(t, 2)
	a := snapshot("a")
	require.NoError(t, trip.AddPlaceToDay(a, 1))
	require.NoError(t, trip.AddLikedPlace(a.ID, "Manama"))

	rows := domain.ItineraryRows(trip)

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Day)
	assert.Equal(t, uuid.Nil, rows[0].PlaceID, "empty day yields a placeholder row")
	assert.Equal(t, 2, rows[1].Day)
	assert.Equal(t, 1, rows[1].Position)
	assert.Equal(t, "a", rows[1].PlaceName)
	assert.True(t, rows[1].Liked)
}
