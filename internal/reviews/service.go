package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Review, error)
	AverageRating(ctx context.Context, storeID uuid.UUID) (float64, error)
}

type storeLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes review operations.
type Service interface {
	Create(ctx context.Context, userID, storeID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error)
	Reply(ctx context.Context, ownerID, reviewID uuid.UUID, content string) (*ReviewDTO, error)
	Delete(ctx context.Context, actorID, reviewID uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID) (*StoreReviewsDTO, error)
}

// StoreReviewsDTO bundles a store's reviews with the aggregate rating.
type StoreReviewsDTO struct {
	Reviews       []ReviewDTO `json:"reviews"`
	AverageRating float64     `json:"average_rating"`
}

// CreateReviewInput captures the fields accepted when posting a review.
type CreateReviewInput struct {
	Content string
	Rating  int
}

type service struct {
	repo   reviewRepository
	stores storeLookup
}

// NewService builds a review service with the provided dependencies.
func NewService(repo reviewRepository, stores storeLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store lookup required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) Create(ctx context.Context, userID, storeID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	rating := input.Rating
	review, err := s.repo.Create(ctx, &models.Review{
		StoreID: storeID,
		UserID:  userID,
		Content: content,
		Rating:  &rating,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return FromModel(review), nil
}

// Reply posts an owner response beneath an existing review.
func (s *service) Reply(ctx context.Context, ownerID, reviewID uuid.UUID, content string) (*ReviewDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}

	parent, err := s.loadReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if parent.ParentReviewID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot reply to a reply")
	}

	store, err := s.stores.FindByID(ctx, parent.StoreID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store ownership required")
	}

	reply, err := s.repo.Create(ctx, &models.Review{
		StoreID:        parent.StoreID,
		UserID:         ownerID,
		ParentReviewID: &parent.ID,
		Content:        content,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reply")
	}
	return FromModel(reply), nil
}

// Delete removes a review. Authors may delete their own; the store owner may
// delete replies they posted.
func (s *service) Delete(ctx context.Context, actorID, reviewID uuid.UUID) error {
	review, err := s.loadReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not the review author")
	}
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	return nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID) (*StoreReviewsDTO, error) {
	records, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	avg, err := s.repo.AverageRating(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "average rating")
	}

	items := make([]ReviewDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromModel(&records[i]))
	}
	return &StoreReviewsDTO{Reviews: items, AverageRating: avg}, nil
}

func (s *service) loadReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}
	return review, nil
}
