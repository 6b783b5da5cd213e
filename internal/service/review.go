package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/repository"
)

var (
	ErrReviewNotFound = repository.ErrReviewNotFound
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type ReviewRepository interface {
	Create(ctx context.Context, review domain.Review) (domain.Review, error)
	FindAll(ctx context.Context) ([]domain.Review, error)
	FindByID(ctx context.Context, id uint) (domain.Review, error)
	Delete(ctx context.Context, id uint) error
}

type ReviewService struct {
	repo ReviewRepository
	now  func() time.Time
}

func NewReviewService(repo ReviewRepository) *ReviewService {
	return &ReviewService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, author domain.User, review domain.Review) (domain.Review, error) {
	if review.Rating < domain.MinRating || review.Rating > domain.MaxRating {
		return domain.Review{}, ErrInvalidRating
	}

	review.UserID = author.ID
	review.DateCreated = s.now().UTC()

	created, err := s.repo.Create(ctx, review)
	if err != nil {
		return domain.Review{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	created.Username = author.Username

	return created, nil
}

func (s *ReviewService) GetReviews(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return reviews, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, requester domain.User, id uint) error {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if review.UserID != requester.ID && !requester.IsAdmin() {
		return ErrForbidden
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
