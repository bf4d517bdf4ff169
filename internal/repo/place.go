package repo

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clickventure/backend/internal/domain"
)

// PlaceRepo defines the persistence operations for Places.
type PlaceRepo interface {
	// Create inserts a place and returns it with id and created_at populated.
	Create(ctx context.Context, place domain.Place) (domain.Place, error)

	// GetByID retrieves a place. Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error)

	// Region returns only the region of a place.
	Region(ctx context.Context, id uuid.UUID) (string, error)

	// List returns one page of places matching f, ordered by name, and the total
	// number of matches.
	List(ctx context.Context, f domain.PlaceFilter, p domain.PaginationParams) ([]domain.Place, int64, error)
}

// pgPlaceRepo is the Postgres implementation of PlaceRepo.
type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

// psql builds Postgres-flavoured ($n) statements for the dynamic listing query.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var placeColumns = []string{
	"id", "name", "region", "category", "sub_tags", "location", "lat", "lng", "google_place_id",
	"description", "image_place", "type", "price_range", "email", "phone_number", "website",
	"details", "created_at",
}

func (r *pgPlaceRepo) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	details, err := json.Marshal(p.Details)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Create: encode details: %w", err)
	}

	q, args, err := psql.Insert("places").
		Columns(placeColumns[1:17]...).
		Values(
			p.Name, p.Region, string(p.Category), nonNil(p.SubTags), p.Location, p.Geo.Lat, p.Geo.Lng, p.Geo.PlaceID,
			p.Description, nonNil(p.Images), p.Type, p.PriceRange, p.Email, p.PhoneNumber, p.Website, details,
		).
		Suffix("RETURNING " + joinColumns(placeColumns)).
		ToSql()
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Create: build: %w", err)
	}

	result, err := scanPlace(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		return domain.Place{}, wrap("repo.PlaceRepo.Create", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	q := `SELECT ` + joinColumns(placeColumns) + ` FROM places WHERE id = @id`

	result, err := scanPlace(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Place{}, wrap("repo.PlaceRepo.GetByID", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) Region(ctx context.Context, id uuid.UUID) (string, error) {
	const q = `SELECT region FROM places WHERE id = @id`

	var region string
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&region); err != nil {
		return "", wrap("repo.PlaceRepo.Region", err)
	}
	return region, nil
}

// List builds the WHERE clause from whichever filter fields are set.
func (r *pgPlaceRepo) List(ctx context.Context, f domain.PlaceFilter, p domain.PaginationParams) ([]domain.Place, int64, error) {
	b := psql.Select(append(placeColumns, "count(*) OVER () AS total")...).
		From("places").
		OrderBy("name", "id").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))

	if f.Region != "" {
		b = b.Where(sq.Eq{"region": f.Region})
	}
	if f.Category != "" {
		b = b.Where(sq.Eq{"category": string(f.Category)})
	}
	if f.SubTag != "" {
		b = b.Where(sq.Expr("? = ANY(sub_tags)", f.SubTag))
	}
	if f.Query != "" {
		b = b.Where(sq.ILike{"name": "%" + f.Query + "%"})
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.List: build: %w", err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, wrap("repo.PlaceRepo.List", err)
	}
	defer rows.Close()

	var (
		places []domain.Place
		total  int64
	)
	for rows.Next() {
		pl, err := scanPlace(rows, &total)
		if err != nil {
			return nil, 0, wrap("repo.PlaceRepo.List: scan", err)
		}
		places = append(places, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrap("repo.PlaceRepo.List: rows", err)
	}
	return places, total, nil
}

// scanPlace maps a row into a domain.Place, decoding the details payload by
// the row's category.
func scanPlace(s scanner, extra ...any) (domain.Place, error) {
	var (
		p        domain.Place
		category string
		details  []byte
	)
	dest := append([]any{
		&p.ID, &p.Name, &p.Region, &category, &p.SubTags, &p.Location, &p.Geo.Lat, &p.Geo.Lng, &p.Geo.PlaceID,
		&p.Description, &p.Images, &p.Type, &p.PriceRange, &p.Email, &p.PhoneNumber, &p.Website,
		&details, &p.CreatedAt,
	}, extra...)

	if err := s.Scan(dest...); err != nil {
		return domain.Place{}, err
	}

	p.Category = domain.Category(category)
	d, err := domain.DecodeDetails(p.Category, details)
	if err != nil {
		return domain.Place{}, fmt.Errorf("decode details: %w", err)
	}
	p.Details = d
	return p, nil
}

func joinColumns(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
