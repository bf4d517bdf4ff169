package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clickventure/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// Every operation on an existing trip is scoped by the owner's user id; a trip
// owned by someone else behaves exactly like a missing one (domain.ErrNotFound).
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated). The owner reference is the
	// user_id foreign key, so an unknown owner yields domain.ErrNotFound and no row.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by userID.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns one page of the user's trips, newest first, and the
	// total number of trips the user owns.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Mutate applies fn to the trip inside a transaction holding the row lock
	// (SELECT ... FOR UPDATE), then persists the result. Concurrent mutations of
	// the same trip are serialized; none of them can lose another's update.
	// An error from fn rolls back and is returned unchanged.
	Mutate(ctx context.Context, userID, id uuid.UUID, fn func(*domain.Trip) error) (domain.Trip, error)

	// Delete removes a trip owned by userID.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, trip_name, region, total_days, description, image_trip, liked_places, days, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, trip_name, region, total_days, description, image_trip, liked_places, days)
		VALUES (@user_id, @trip_name, @region, @total_days, @description, @image_trip, @liked_places, @days)
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	args["user_id"] = trip.UserID

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, wrap("repo.TripRepo.Create", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to its owner.
func (r *pgTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id AND user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, wrap("repo.TripRepo.GetByID", err)
	}
	return result, nil
}

// ListByUser returns a page of the user's trips ordered by created_at descending.
// The window count avoids a second round trip for the total.
func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `, count(*) OVER () AS total
		FROM trips
		WHERE user_id = @user_id
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, wrap("repo.TripRepo.ListByUser", err)
	}
	defer rows.Close()

	var (
		trips []domain.Trip
		total int64
	)
	for rows.Next() {
		t, err := scanTrip(rows, &total)
		if err != nil {
			return nil, 0, wrap("repo.TripRepo.ListByUser: scan", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrap("repo.TripRepo.ListByUser: rows", err)
	}
	return trips, total, nil
}

// Mutate runs fn under the trip's row lock and writes the result back.
func (r *pgTripRepo) Mutate(ctx context.Context, userID, id uuid.UUID, fn func(*domain.Trip) error) (domain.Trip, error) {
	const sel = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id AND user_id = @user_id FOR UPDATE`
	const upd = `
		UPDATE trips
		SET trip_name    = @trip_name,
		    region       = @region,
		    total_days   = @total_days,
		    description  = @description,
		    image_trip   = @image_trip,
		    liked_places = @liked_places,
		    days         = @days,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, wrap("repo.TripRepo.Mutate: begin", err)
	}
	// Rollback is a no-op once Commit has succeeded.
	defer func() { _ = tx.Rollback(ctx) }()

	trip, err := scanTrip(tx.QueryRow(ctx, sel, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, wrap("repo.TripRepo.Mutate: lock", err)
	}

	if err := fn(&trip); err != nil {
		return domain.Trip{}, err
	}

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Mutate: %w", err)
	}
	args["id"] = trip.ID

	result, err := scanTrip(tx.QueryRow(ctx, upd, args))
	if err != nil {
		return domain.Trip{}, wrap("repo.TripRepo.Mutate: update", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, wrap("repo.TripRepo.Mutate: commit", err)
	}
	return result, nil
}

// Delete removes a trip by primary key, scoped to its owner. A user whose
// running trip is deleted has it cleared by the ON DELETE SET NULL reference.
func (r *pgTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return wrap("repo.TripRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// tripArgs maps the mutable trip fields to named query arguments.
// days is sent as pre-encoded JSON so the jsonb column receives it verbatim.
func tripArgs(t domain.Trip) (pgx.NamedArgs, error) {
	days, err := json.Marshal(t.Days)
	if err != nil {
		return nil, fmt.Errorf("encode days: %w", err)
	}
	liked := t.LikedPlaces
	if liked == nil {
		liked = []uuid.UUID{}
	}
	regions := t.Regions
	if regions == nil {
		regions = []string{}
	}
	return pgx.NamedArgs{
		"trip_name":    t.Name,
		"region":       regions,
		"total_days":   t.TotalDays,
		"description":  t.Description,
		"image_trip":   t.Image,
		"liked_places": liked,
		"days":         days,
	}, nil
}

// scanTrip maps a single database row into a domain.Trip. Any extra
// destinations (e.g. a window count) are scanned after the trip columns.
func scanTrip(s scanner, extra ...any) (domain.Trip, error) {
	var (
		t    domain.Trip
		days []byte
	)
	dest := append([]any{
		&t.ID, &t.UserID, &t.Name, &t.Regions, &t.TotalDays, &t.Description,
		&t.Image, &t.LikedPlaces, &days, &t.CreatedAt, &t.UpdatedAt,
	}, extra...)

	if err := s.Scan(dest...); err != nil {
		return domain.Trip{}, err
	}
	if err := json.Unmarshal(days, &t.Days); err != nil {
		return domain.Trip{}, fmt.Errorf("decode days: %w", err)
	}
	if t.Regions == nil {
		t.Regions = []string{}
	}
	if t.LikedPlaces == nil {
		t.LikedPlaces = []uuid.UUID{}
	}
	for i := range t.Days {
		if t.Days[i] == nil {
			t.Days[i] = domain.Day{}
		}
	}
	return t, nil
}
