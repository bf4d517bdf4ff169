package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clickventure/backend/internal/domain"
)

// PhotoRepo defines the persistence operations for Photos.
type PhotoRepo interface {
	// Create inserts the photo and credits its author in the same transaction.
	Create(ctx context.Context, p domain.Photo, reward int) (domain.Photo, error)

	// ListByPlace returns every photo of a place, most recently taken first.
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Photo, error)
}

type pgPhotoRepo struct {
	db db
}

// NewPhotoRepo constructs a PhotoRepo backed by the provided db connection.
func NewPhotoRepo(db db) PhotoRepo {
	return &pgPhotoRepo{db: db}
}

const creditPhoto = `
	UPDATE users
	SET photos       = photos + 1,
	    contribution = comments + photos + 1,
	    points       = points + @reward
	WHERE id = @user_id
	RETURNING user_name`

func (r *pgPhotoRepo) Create(ctx context.Context, p domain.Photo, reward int) (domain.Photo, error) {
	const q = `
		INSERT INTO photos (place_id, user_id, image, taken_at)
		VALUES (@place_id, @user_id, @image, @taken_at)
		RETURNING id, score`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Photo{}, wrap("repo.PhotoRepo.Create: begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, q, pgx.NamedArgs{
		"place_id": p.PlaceID,
		"user_id":  p.UserID,
		"image":    p.Image,
		"taken_at": p.TakenAt,
	}).Scan(&p.ID, &p.Score)
	if err != nil {
		return domain.Photo{}, wrap("repo.PhotoRepo.Create: insert", err)
	}

	if err := tx.QueryRow(ctx, creditPhoto, pgx.NamedArgs{"user_id": p.UserID, "reward": reward}).Scan(&p.UserName); err != nil {
		return domain.Photo{}, wrap("repo.PhotoRepo.Create: credit", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Photo{}, wrap("repo.PhotoRepo.Create: commit", err)
	}
	return p, nil
}

func (r *pgPhotoRepo) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Photo, error) {
	const q = `
		SELECT p.id, p.place_id, p.user_id, u.user_name, p.image, p.taken_at, p.score
		FROM photos p
		JOIN users u ON u.id = p.user_id
		WHERE p.place_id = @place_id
		ORDER BY p.taken_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"place_id": placeID})
	if err != nil {
		return nil, wrap("repo.PhotoRepo.ListByPlace", err)
	}
	defer rows.Close()

	photos := []domain.Photo{}
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.PlaceID, &p.UserID, &p.UserName, &p.Image, &p.TakenAt, &p.Score); err != nil {
			return nil, wrap("repo.PhotoRepo.ListByPlace: scan", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("repo.PhotoRepo.ListByPlace: rows", err)
	}
	return photos, nil
}
