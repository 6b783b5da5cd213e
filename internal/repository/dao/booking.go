package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingDAO struct {
	db *gorm.DB
}

func NewBookingDAO(db *gorm.DB) *BookingDAO {
	return &BookingDAO{
		db: db,
	}
}

func (d *BookingDAO) Insert(ctx context.Context, booking Booking) (Booking, error) {
	if err := d.db.WithContext(ctx).Omit("Resort", "User").Create(&booking).Error; err != nil {
		if isForeignKeyViolation(err) {
			return Booking{}, ErrReferenceNotFound
		}

		return Booking{}, err
	}

	return booking, nil
}

func (d *BookingDAO) FindAll(ctx context.Context) ([]Booking, error) {
	var bookings []Booking

	if err := d.db.WithContext(ctx).Preload("Resort").Order("booking_id").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (d *BookingDAO) FindByUserID(ctx context.Context, userID uint) ([]Booking, error) {
	var bookings []Booking

	result := d.db.WithContext(ctx).
		Preload("Resort").
		Where("user_id = ?", userID).
		Order("booking_id").
		Find(&bookings)
	if result.Error != nil {
		return nil, result.Error
	}

	return bookings, nil
}

func (d *BookingDAO) FindByID(ctx context.Context, id uint) (Booking, error) {
	var booking Booking

	result := d.db.WithContext(ctx).Preload("Resort").First(&booking, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Booking{}, ErrBookingNotFound
		}

		return Booking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Booking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}
