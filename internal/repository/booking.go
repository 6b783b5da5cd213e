package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/repository/dao"
)

var ErrBookingNotFound = dao.ErrBookingNotFound

type BookingDAO interface {
	Insert(ctx context.Context, booking dao.Booking) (dao.Booking, error)
	FindAll(ctx context.Context) ([]dao.Booking, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Booking, error)
	FindByID(ctx context.Context, id uint) (dao.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type BookingRepository struct {
	dao BookingDAO
}

func NewBookingRepository(dao BookingDAO) *BookingRepository {
	return &BookingRepository{
		dao: dao,
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	created, err := r.dao.Insert(ctx, dao.Booking{
		FromDate:    booking.FromDate,
		ToDate:      booking.ToDate,
		Address:     booking.Address,
		NoOfPersons: booking.NoOfPersons,
		TotalPrice:  booking.TotalPrice,
		ResortID:    booking.ResortID,
		UserID:      booking.UserID,
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return bookingDaoToDomain(created), nil
}

func (r *BookingRepository) FindAll(ctx context.Context) ([]domain.Booking, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return bookingsDaoToDomain(found), nil
}

func (r *BookingRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Booking, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return bookingsDaoToDomain(found), nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint) (domain.Booking, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return bookingDaoToDomain(found), nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func bookingDaoToDomain(b dao.Booking) domain.Booking {
	booking := domain.Booking{
		ID:          b.BookingID,
		FromDate:    b.FromDate,
		ToDate:      b.ToDate,
		Address:     b.Address,
		NoOfPersons: b.NoOfPersons,
		TotalPrice:  b.TotalPrice,
		ResortID:    b.ResortID,
		UserID:      b.UserID,
	}
	if b.Resort != nil {
		resort := resortDaoToDomain(*b.Resort)
		booking.Resort = &resort
	}

	return booking
}

func bookingsDaoToDomain(found []dao.Booking) []domain.Booking {
	bookings := make([]domain.Booking, 0, len(found))
	for _, b := range found {
		bookings = append(bookings, bookingDaoToDomain(b))
	}

	return bookings
}
