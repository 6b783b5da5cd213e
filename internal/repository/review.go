package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/repository/dao"
)

var ErrReviewNotFound = dao.ErrReviewNotFound

type ReviewDAO interface {
	Insert(ctx context.Context, review dao.Review) (dao.Review, error)
	FindAll(ctx context.Context) ([]dao.Review, error)
	FindByID(ctx context.Context, id uint) (dao.Review, error)
	Delete(ctx context.Context, id uint) error
}

type ReviewRepository struct {
	dao ReviewDAO
}

func NewReviewRepository(dao ReviewDAO) *ReviewRepository {
	return &ReviewRepository{
		dao: dao,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	created, err := r.dao.Insert(ctx, dao.Review{
		Subject:     review.Subject,
		Body:        review.Body,
		Rating:      review.Rating,
		DateCreated: review.DateCreated,
		UserID:      review.UserID,
	})
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return reviewDaoToDomain(created), nil
}

func (r *ReviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	reviews := make([]domain.Review, 0, len(found))
	for _, review := range found {
		reviews = append(reviews, reviewDaoToDomain(review))
	}

	return reviews, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (domain.Review, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return reviewDaoToDomain(found), nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func reviewDaoToDomain(r dao.Review) domain.Review {
	review := domain.Review{
		ID:          r.ReviewID,
		Subject:     r.Subject,
		Body:        r.Body,
		Rating:      r.Rating,
		DateCreated: r.DateCreated,
		UserID:      r.UserID,
	}
	if r.User != nil {
		review.Username = r.User.Username
	}

	return review
}
