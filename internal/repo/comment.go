package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clickventure/backend/internal/domain"
)

// CommentRepo defines the persistence operations for Comments.
type CommentRepo interface {
	// Create inserts the comment and credits its author in one transaction:
	// the author's comment counter, contribution, and points are updated
	// together with the insert, so a failed write changes neither.
	Create(ctx context.Context, c domain.Comment, reward int) (domain.Comment, error)

	// ListByPlace returns every comment of a place, newest first.
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Comment, error)

	// ListByPlaces returns the comments of several places keyed by place id.
	// Places without comments are absent from the map.
	ListByPlaces(ctx context.Context, placeIDs []uuid.UUID) (map[uuid.UUID][]domain.Comment, error)

	// AdjustScore adds delta to a comment's community score and returns the new value.
	AdjustScore(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

type pgCommentRepo struct {
	db db
}

// NewCommentRepo constructs a CommentRepo backed by the provided db connection.
func NewCommentRepo(db db) CommentRepo {
	return &pgCommentRepo{db: db}
}

const commentSelect = `
	SELECT c.id, c.place_id, c.user_id, u.user_name, c.category, c.rate, c.title, c.body,
	       c.written_at, c.visited_at, c.scores, c.score
	FROM comments c
	JOIN users u ON u.id = c.user_id`

// creditComment bumps the author's counters. contribution is recomputed from
// the pre-update counters, which Postgres exposes on the right-hand side.
const creditComment = `
	UPDATE users
	SET comments     = comments + 1,
	    contribution = comments + 1 + photos,
	    points       = points + @reward
	WHERE id = @user_id
	RETURNING user_name`

func (r *pgCommentRepo) Create(ctx context.Context, c domain.Comment, reward int) (domain.Comment, error) {
	const q = `
		INSERT INTO comments (place_id, user_id, category, rate, title, body, visited_at, scores)
		VALUES (@place_id, @user_id, @category, @rate, @title, @body, @visited_at, @scores)
		RETURNING id, written_at, score`

	var scores []byte
	if c.Scores != nil {
		var err error
		if scores, err = json.Marshal(c.Scores); err != nil {
			return domain.Comment{}, fmt.Errorf("repo.CommentRepo.Create: encode scores: %w", err)
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Comment{}, wrap("repo.CommentRepo.Create: begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, q, pgx.NamedArgs{
		"place_id":   c.PlaceID,
		"user_id":    c.UserID,
		"category":   string(c.Category),
		"rate":       c.Rate,
		"title":      c.Title,
		"body":       c.Body,
		"visited_at": c.VisitedAt,
		"scores":     scores,
	}).Scan(&c.ID, &c.WrittenAt, &c.Score)
	if err != nil {
		return domain.Comment{}, wrap("repo.CommentRepo.Create: insert", err)
	}

	if err := tx.QueryRow(ctx, creditComment, pgx.NamedArgs{"user_id": c.UserID, "reward": reward}).Scan(&c.UserName); err != nil {
		return domain.Comment{}, wrap("repo.CommentRepo.Create: credit", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Comment{}, wrap("repo.CommentRepo.Create: commit", err)
	}
	return c, nil
}

func (r *pgCommentRepo) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Comment, error) {
	const q = commentSelect + ` WHERE c.place_id = @place_id ORDER BY c.written_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"place_id": placeID})
	if err != nil {
		return nil, wrap("repo.CommentRepo.ListByPlace", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, wrap("repo.CommentRepo.ListByPlace: scan", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("repo.CommentRepo.ListByPlace: rows", err)
	}
	return comments, nil
}

func (r *pgCommentRepo) ListByPlaces(ctx context.Context, placeIDs []uuid.UUID) (map[uuid.UUID][]domain.Comment, error) {
	const q = commentSelect + ` WHERE c.place_id = ANY(@place_ids) ORDER BY c.written_at DESC`

	out := make(map[uuid.UUID][]domain.Comment, len(placeIDs))
	if len(placeIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"place_ids": placeIDs})
	if err != nil {
		return nil, wrap("repo.CommentRepo.ListByPlaces", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, wrap("repo.CommentRepo.ListByPlaces: scan", err)
		}
		out[c.PlaceID] = append(out[c.PlaceID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("repo.CommentRepo.ListByPlaces: rows", err)
	}
	return out, nil
}

func (r *pgCommentRepo) AdjustScore(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	const q = `UPDATE comments SET score = score + @delta WHERE id = @id RETURNING score`

	var score int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "delta": delta}).Scan(&score); err != nil {
		return 0, wrap("repo.CommentRepo.AdjustScore", err)
	}
	return score, nil
}

// scanComment maps a row into a domain.Comment. The stored scores are
// re-validated against the comment's category on the way out.
func scanComment(s scanner) (domain.Comment, error) {
	var (
		c        domain.Comment
		category string
		scores   []byte
	)
	err := s.Scan(
		&c.ID, &c.PlaceID, &c.UserID, &c.UserName, &category, &c.Rate, &c.Title, &c.Body,
		&c.WrittenAt, &c.VisitedAt, &scores, &c.Score,
	)
	if err != nil {
		return domain.Comment{}, err
	}
	c.Category = domain.Category(category)

	if len(scores) > 0 && string(scores) != "null" {
		var values map[string]float64
		if err := json.Unmarshal(scores, &values); err != nil {
			return domain.Comment{}, fmt.Errorf("decode scores: %w", err)
		}
		if c.Scores, err = domain.NewSubScores(c.Category, values); err != nil {
			return domain.Comment{}, err
		}
	}
	return c, nil
}
