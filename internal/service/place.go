package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/clickventure/backend/internal/domain"
	"github.com/clickventure/backend/internal/repo"
)

// regionTTL is how long a place's region stays cached. Regions never change
// after a place is created, so the TTL only bounds memory.
const regionTTL = 10 * time.Minute

// PlaceService implements the place catalogue: listing, detail views with
// aggregated ratings, and user contributions (comments, photos, votes).
type PlaceService struct {
	places   repo.PlaceRepo
	comments repo.CommentRepo
	photos   repo.PhotoRepo
	rewards  domain.RewardTable
	regions  *cache.Cache
	timeout  time.Duration
}

// NewPlaceService constructs a PlaceService. A nil rewards table falls back to
// domain.DefaultRewards.
func NewPlaceService(places repo.PlaceRepo, comments repo.CommentRepo, photos repo.PhotoRepo, rewards domain.RewardTable, timeout time.Duration) *PlaceService {
	if rewards == nil {
		rewards = domain.DefaultRewards
	}
	return &PlaceService{
		places:   places,
		comments: comments,
		photos:   photos,
		rewards:  rewards,
		regions:  cache.New(regionTTL, 2*regionTTL),
		timeout:  timeout,
	}
}

// Create validates and persists a new place.
// Name and region are required, the category must be known, and a details
// payload, when present, must belong to that category.
func (s *PlaceService) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	place.Name = strings.TrimSpace(place.Name)
	place.Region = strings.TrimSpace(place.Region)
	if place.Name == "" {
		return domain.Place{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if place.Region == "" {
		return domain.Place{}, fmt.Errorf("%w: region is required", domain.ErrValidation)
	}
	c, err := domain.ParseCategory(string(place.Category))
	if err != nil {
		return domain.Place{}, err
	}
	place.Category = c
	if place.Details != nil && place.Details.Category() != c {
		return domain.Place{}, fmt.Errorf("%w: details do not match category %s", domain.ErrValidation, c)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.places.Create(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	s.regions.Set(result.ID.String(), result.Region, cache.DefaultExpiration)
	return result, nil
}

// Get returns the place with its aggregated rating, comments, and photos.
// The three reads run concurrently.
func (s *PlaceService) Get(ctx context.Context, id uuid.UUID) (domain.PlaceView, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var (
		place    domain.Place
		comments []domain.Comment
		photos   []domain.Photo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		place, err = s.places.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.ListByPlace(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		photos, err = s.photos.ListByPlace(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.PlaceView{}, fmt.Errorf("service.PlaceService.Get: %w", err)
	}

	if comments == nil {
		comments = []domain.Comment{}
	}
	if photos == nil {
		photos = []domain.Photo{}
	}
	return domain.PlaceView{
		Place:    place,
		Rating:   domain.AggregateRatings(place.Category, comments),
		Comments: comments,
		Photos:   photos,
	}, nil
}

// List returns one page of places matching f, each with its aggregated rating.
// Comments for the whole page are loaded in one query.
func (s *PlaceService) List(ctx context.Context, f domain.PlaceFilter, p domain.PaginationParams) (domain.Page[domain.PlaceSummary], error) {
	if f.Category != "" {
		c, err := domain.ParseCategory(string(f.Category))
		if err != nil {
			return domain.Page[domain.PlaceSummary]{}, err
		}
		f.Category = c
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	places, total, err := s.places.List(ctx, f, p)
	if err != nil {
		return domain.Page[domain.PlaceSummary]{}, fmt.Errorf("service.PlaceService.List: %w", err)
	}

	ids := make([]uuid.UUID, len(places))
	for i, pl := range places {
		ids[i] = pl.ID
	}
	byPlace, err := s.comments.ListByPlaces(ctx, ids)
	if err != nil {
		return domain.Page[domain.PlaceSummary]{}, fmt.Errorf("service.PlaceService.List: %w", err)
	}

	items := make([]domain.PlaceSummary, len(places))
	for i, pl := range places {
		items[i] = domain.PlaceSummary{Place: pl, Rating: domain.AggregateRatings(pl.Category, byPlace[pl.ID])}
	}
	return domain.Page[domain.PlaceSummary]{Items: items, Total: total}, nil
}

// AddComment records a review of the place by userID and credits the author.
// The rate must lie in 1..5; sub-scores must be dimensions of the place's
// category with values in 0..5.
func (s *PlaceService) AddComment(ctx context.Context, userID, placeID uuid.UUID, in domain.CommentInput) (domain.Comment, error) {
	if in.Rate < domain.MinRate || in.Rate > domain.MaxRate {
		return domain.Comment{}, fmt.Errorf("%w: rate must be between %d and %d", domain.ErrValidation, domain.MinRate, domain.MaxRate)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.PlaceService.AddComment: %w", err)
	}
	scores, err := domain.NewSubScores(place.Category, in.Scores)
	if err != nil {
		return domain.Comment{}, err
	}

	result, err := s.comments.Create(ctx, domain.Comment{
		PlaceID:   placeID,
		UserID:    userID,
		Category:  place.Category,
		Rate:      in.Rate,
		Title:     strings.TrimSpace(in.Title),
		Body:      strings.TrimSpace(in.Body),
		VisitedAt: in.VisitedAt,
		Scores:    scores,
	}, s.rewards.Points(domain.RewardComment))
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.PlaceService.AddComment: %w", err)
	}
	return result, nil
}

// AddPhoto records a photo of the place by userID and credits the author.
// A zero takenAt is replaced with the current time.
func (s *PlaceService) AddPhoto(ctx context.Context, userID, placeID uuid.UUID, image string, takenAt time.Time) (domain.Photo, error) {
	image = strings.TrimSpace(image)
	if image == "" {
		return domain.Photo{}, fmt.Errorf("%w: image is required", domain.ErrValidation)
	}
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.photos.Create(ctx, domain.Photo{
		PlaceID: placeID,
		UserID:  userID,
		Image:   image,
		TakenAt: takenAt,
	}, s.rewards.Points(domain.RewardPhoto))
	if err != nil {
		return domain.Photo{}, fmt.Errorf("service.PlaceService.AddPhoto: %w", err)
	}
	return result, nil
}

// ScoreComment applies a helpfulness vote of +1 or -1 and returns the new score.
func (s *PlaceService) ScoreComment(ctx context.Context, commentID uuid.UUID, delta int) (int, error) {
	if delta != 1 && delta != -1 {
		return 0, fmt.Errorf("%w: delta must be 1 or -1", domain.ErrValidation)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	score, err := s.comments.AdjustScore(ctx, commentID, delta)
	if err != nil {
		return 0, fmt.Errorf("service.PlaceService.ScoreComment: %w", err)
	}
	return score, nil
}

// Region returns the region of a place, served from cache when possible.
func (s *PlaceService) Region(ctx context.Context, placeID uuid.UUID) (string, error) {
	key := placeID.String()
	if v, ok := s.regions.Get(key); ok {
		return v.(string), nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	region, err := s.places.Region(ctx, placeID)
	if err != nil {
		return "", fmt.Errorf("service.PlaceService.Region: %w", err)
	}
	s.regions.Set(key, region, cache.DefaultExpiration)
	return region, nil
}

// Snapshot returns the place as it should be frozen into a trip day,
// including its current overall rate.
func (s *PlaceService) Snapshot(ctx context.Context, placeID uuid.UUID) (domain.PlaceSnapshot, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		return domain.PlaceSnapshot{}, fmt.Errorf("service.PlaceService.Snapshot: %w", err)
	}
	comments, err := s.comments.ListByPlace(ctx, placeID)
	if err != nil {
		return domain.PlaceSnapshot{}, fmt.Errorf("service.PlaceService.Snapshot: %w", err)
	}
	s.regions.Set(placeID.String(), place.Region, cache.DefaultExpiration)
	return place.Snapshot(domain.AggregateRatings(place.Category, comments).OverallRate), nil
}
