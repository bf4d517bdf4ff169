package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/clickventure/backend/internal/domain"
	"github.com/clickventure/backend/internal/repo"
	"github.com/clickventure/backend/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs.

type mockTripRepo struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	listByUser func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	mutate     func(ctx context.Context, userID, id uuid.UUID, fn func(*domain.Trip) error) (domain.Trip, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByUser(ctx, userID, p)
}
func (m *mockTripRepo) Mutate(ctx context.Context, userID, id uuid.UUID, fn func(*domain.Trip) error) (domain.Trip, error) {
	return m.mutate(ctx, userID, id, fn)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

// storedTripRepo returns a TripRepo whose Mutate applies fn to a copy of
// *trip and stores the result only when fn succeeds, as the real repo does.
// Any trip other than trip.ID, or a different owner, is not found.
func storedTripRepo(trip *domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, userID, id uuid.UUID) (domain.Trip, error) {
			if id != trip.ID || userID != trip.UserID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return *trip, nil
		},
		mutate: func(_ context.Context, userID, id uuid.UUID, fn func(*domain.Trip) error) (domain.Trip, error) {
			if id != trip.ID || userID != trip.UserID {
				return domain.Trip{}, domain.ErrNotFound
			}
			working := cloneTrip(*trip)
			if err := fn(&working); err != nil {
				return domain.Trip{}, err
			}
			*trip = working
			return working, nil
		},
	}
}

func cloneTrip(t domain.Trip) domain.Trip {
	days := make([]domain.Day, len(t.Days))
	for i, d := range t.Days {
		days[i] = append(domain.Day{}, d...)
	}
	t.Days = days
	t.LikedPlaces = append([]uuid.UUID{}, t.LikedPlaces...)
	t.Regions = append([]string{}, t.Regions...)
	return t
}

type mockPlaceLookup struct {
	snapshot func(ctx context.Context, id uuid.UUID) (domain.PlaceSnapshot, error)
	region   func(ctx context.Context, id uuid.UUID) (string, error)
}

func (m *mockPlaceLookup) Snapshot(ctx context.Context, id uuid.UUID) (domain.PlaceSnapshot, error) {
	return m.snapshot(ctx, id)
}
func (m *mockPlaceLookup) Region(ctx context.Context, id uuid.UUID) (string, error) {
	return m.region(ctx, id)
}

type mockPlaceRepo struct {
	create  func(ctx context.Context, p domain.Place) (domain.Place, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Place, error)
	region  func(ctx context.Context, id uuid.UUID) (string, error)
	list    func(ctx context.Context, f domain.PlaceFilter, p domain.PaginationParams) ([]domain.Place, int64, error)
}

func (m *mockPlaceRepo) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.create(ctx, p)
}
func (m *mockPlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlaceRepo) Region(ctx context.Context, id uuid.UUID) (string, error) {
	return m.region(ctx, id)
}
func (m *mockPlaceRepo) List(ctx context.Context, f domain.PlaceFilter, p domain.PaginationParams) ([]domain.Place, int64, error) {
	return m.list(ctx, f, p)
}

type mockCommentRepo struct {
	create       func(ctx context.Context, c domain.Comment, reward int) (domain.Comment, error)
	listByPlace  func(ctx context.Context, placeID uuid.UUID) ([]domain.Comment, error)
	listByPlaces func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Comment, error)
	adjustScore  func(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, c domain.Comment, reward int) (domain.Comment, error) {
	return m.create(ctx, c, reward)
}
func (m *mockCommentRepo) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Comment, error) {
	return m.listByPlace(ctx, placeID)
}
func (m *mockCommentRepo) ListByPlaces(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Comment, error) {
	return m.listByPlaces(ctx, ids)
}
func (m *mockCommentRepo) AdjustScore(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	return m.adjustScore(ctx, id, delta)
}

type mockPhotoRepo struct {
	create      func(ctx context.Context, p domain.Photo, reward int) (domain.Photo, error)
	listByPlace func(ctx context.Context, placeID uuid.UUID) ([]domain.Photo, error)
}

func (m *mockPhotoRepo) Create(ctx context.Context, p domain.Photo, reward int) (domain.Photo, error) {
	return m.create(ctx, p, reward)
}
func (m *mockPhotoRepo) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Photo, error) {
	return m.listByPlace(ctx, placeID)
}

type mockUserRepo struct {
	create         func(ctx context.Context, u domain.User) (domain.User, error)
	getByEmail     func(ctx context.Context, email string) (domain.User, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.User, error)
	setRunningTrip func(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) SetRunningTrip(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) error {
	return m.setRunningTrip(ctx, userID, tripID)
}

type mockCredentials struct {
	hash   func(password string) (string, error)
	verify func(hash, password string) bool
	issue  func(userID uuid.UUID, email string) (string, error)
}

func (m *mockCredentials) Hash(password string) (string, error) { return m.hash(password) }
func (m *mockCredentials) Verify(hash, password string) bool    { return m.verify(hash, password) }
func (m *mockCredentials) IssueToken(userID uuid.UUID, email string) (string, error) {
	return m.issue(userID, email)
}

// compile-time checks: mocks must satisfy the interfaces they stand in for.
var (
	_ repo.TripRepo       = (*mockTripRepo)(nil)
	_ repo.PlaceRepo      = (*mockPlaceRepo)(nil)
	_ repo.CommentRepo    = (*mockCommentRepo)(nil)
	_ repo.PhotoRepo      = (*mockPhotoRepo)(nil)
	_ repo.UserRepo       = (*mockUserRepo)(nil)
	_ service.PlaceLookup = (*mockPlaceLookup)(nil)
	_ service.Credentials = (*mockCredentials)(nil)
	_ service.PlaceLookup = (*service.PlaceService)(nil)
)
