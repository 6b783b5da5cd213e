package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrResortNotFound = errors.New("resort not found")

type ResortDAO struct {
	db *gorm.DB
}

func NewResortDAO(db *gorm.DB) *ResortDAO {
	return &ResortDAO{
		db: db,
	}
}

func (d *ResortDAO) Insert(ctx context.Context, resort Resort) (Resort, error) {
	if err := d.db.WithContext(ctx).Create(&resort).Error; err != nil {
		return Resort{}, err
	}

	return resort, nil
}

func (d *ResortDAO) FindAll(ctx context.Context) ([]Resort, error) {
	var resorts []Resort

	if err := d.db.WithContext(ctx).Order("resort_id").Find(&resorts).Error; err != nil {
		return nil, err
	}

	return resorts, nil
}

func (d *ResortDAO) FindByID(ctx context.Context, id uint) (Resort, error) {
	var resort Resort

	result := d.db.WithContext(ctx).First(&resort, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Resort{}, ErrResortNotFound
		}

		return Resort{}, result.Error
	}

	return resort, nil
}

func (d *ResortDAO) Update(ctx context.Context, resort Resort) (Resort, error) {
	result := d.db.WithContext(ctx).Model(&Resort{ResortID: resort.ResortID}).Select("*").Updates(&resort)
	if result.Error != nil {
		return Resort{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Resort{}, ErrResortNotFound
	}

	return resort, nil
}

// Delete removes the resort and, through the cascade, its bookings.
func (d *ResortDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Resort{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResortNotFound
	}

	return nil
}
