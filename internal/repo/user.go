package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clickventure/backend/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a new user. A taken email yields domain.ErrConflict.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// GetByEmail looks a user up by login email, including the password hash.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByID returns the full profile, including the id sets of the user's
	// comments, photos, and trips.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// SetRunningTrip marks one of the user's own trips as active, or clears it
	// when tripID is nil. A trip the user does not own yields domain.ErrNotFound.
	SetRunningTrip(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) error
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, name, user_name, email, password_hash, join_date, rank, points, description,
	contribution, comments, photos, places_visited, badges, running_trip_id`

// userColumnsU is userColumns qualified for queries that alias users as u.
const userColumnsU = `u.id, u.name, u.user_name, u.email, u.password_hash, u.join_date, u.rank, u.points,
	u.description, u.contribution, u.comments, u.photos, u.places_visited, u.badges, u.running_trip_id`

func (r *pgUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (name, user_name, email, password_hash, rank, description)
		VALUES (@name, @user_name, @email, @password_hash, @rank, @description)
		RETURNING ` + userColumns

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"name":          u.Name,
		"user_name":     u.UserName,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"rank":          u.Rank,
		"description":   u.Description,
	}))
	if err != nil {
		return domain.User{}, wrap("repo.UserRepo.Create", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, wrap("repo.UserRepo.GetByEmail", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `
		SELECT ` + userColumnsU + `,
		       ARRAY(SELECT c.id FROM comments c WHERE c.user_id = u.id ORDER BY c.written_at),
		       ARRAY(SELECT p.id FROM photos p WHERE p.user_id = u.id ORDER BY p.taken_at),
		       ARRAY(SELECT t.id FROM trips t WHERE t.user_id = u.id ORDER BY t.created_at)
		FROM users u
		WHERE u.id = @id`

	var u domain.User
	dest := append(userDest(&u), &u.ReviewComments, &u.PhotosReview, &u.Trips)
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(dest...); err != nil {
		return domain.User{}, wrap("repo.UserRepo.GetByID", err)
	}
	return normalizeUser(u), nil
}

func (r *pgUserRepo) SetRunningTrip(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) error {
	const q = `
		UPDATE users
		SET running_trip_id = @trip_id
		WHERE id = @user_id
		  AND (@trip_id::uuid IS NULL OR EXISTS (
		        SELECT 1 FROM trips WHERE id = @trip_id AND user_id = @user_id))`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "trip_id": tripID})
	if err != nil {
		return wrap("repo.UserRepo.SetRunningTrip", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.SetRunningTrip: %w", domain.ErrNotFound)
	}
	return nil
}

func userDest(u *domain.User) []any {
	return []any{
		&u.ID, &u.Name, &u.UserName, &u.Email, &u.PasswordHash, &u.JoinDate, &u.Rank, &u.Points,
		&u.Description, &u.Contribution, &u.Comments, &u.Photos, &u.PlacesVisited, &u.Badges, &u.RunningTrip,
	}
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	if err := s.Scan(userDest(&u)...); err != nil {
		return domain.User{}, err
	}
	return normalizeUser(u), nil
}

// normalizeUser replaces nil sets with empty ones so they encode as [].
func normalizeUser(u domain.User) domain.User {
	if u.Badges == nil {
		u.Badges = []string{}
	}
	if u.ReviewComments == nil {
		u.ReviewComments = []uuid.UUID{}
	}
	if u.PhotosReview == nil {
		u.PhotosReview = []uuid.UUID{}
	}
	if u.Trips == nil {
		u.Trips = []uuid.UUID{}
	}
	return u
}
