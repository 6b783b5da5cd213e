package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewDAO struct {
	db *gorm.DB
}

func NewReviewDAO(db *gorm.DB) *ReviewDAO {
	return &ReviewDAO{
		db: db,
	}
}

func (d *ReviewDAO) Insert(ctx context.Context, review Review) (Review, error) {
	if err := d.db.WithContext(ctx).Omit("User").Create(&review).Error; err != nil {
		if isForeignKeyViolation(err) {
			return Review{}, ErrReferenceNotFound
		}

		return Review{}, err
	}

	return review, nil
}

func (d *ReviewDAO) FindAll(ctx context.Context) ([]Review, error) {
	var reviews []Review

	if err := d.db.WithContext(ctx).Preload("User").Order("date_created DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}

	return reviews, nil
}

func (d *ReviewDAO) FindByID(ctx context.Context, id uint) (Review, error) {
	var review Review

	result := d.db.WithContext(ctx).Preload("User").First(&review, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Review{}, ErrReviewNotFound
		}

		return Review{}, result.Error
	}

	return review, nil
}

func (d *ReviewDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}
