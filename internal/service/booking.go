package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/repository"
)

var (
	ErrBookingNotFound   = repository.ErrBookingNotFound
	ErrInvalidDateRange  = errors.New("fromDate must not be after toDate")
	ErrInvalidPersons    = errors.New("noOfPersons must be at least 1")
	ErrCapacityExceeded  = errors.New("noOfPersons exceeds the resort capacity")
	ErrResortUnavailable = errors.New("resort is not available")
)

type BookingRepository interface {
	Create(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	FindAll(ctx context.Context) ([]domain.Booking, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Booking, error)
	FindByID(ctx context.Context, id uint) (domain.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type BookingResortFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Resort, error)
}

// EventPublisher delivers booking lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

type BookingService struct {
	repo      BookingRepository
	resorts   BookingResortFinder
	publisher EventPublisher
	now       func() time.Time
}

func NewBookingService(repo BookingRepository, resorts BookingResortFinder, publisher EventPublisher) *BookingService {
	return &BookingService{
		repo:      repo,
		resorts:   resorts,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateBooking books booking.ResortID for userID and prices the stay.
func (s *BookingService) CreateBooking(ctx context.Context, userID uint, booking domain.Booking) (domain.Booking, error) {
	if booking.ToDate.Before(booking.FromDate) {
		return domain.Booking{}, ErrInvalidDateRange
	}
	if booking.NoOfPersons < 1 {
		return domain.Booking{}, ErrInvalidPersons
	}

	resort, err := s.resorts.FindByID(ctx, booking.ResortID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.resorts.FindByID -> %w", err)
	}
	if !resort.IsAvailable() {
		return domain.Booking{}, ErrResortUnavailable
	}
	if booking.NoOfPersons > resort.Capacity {
		return domain.Booking{}, ErrCapacityExceeded
	}

	booking.UserID = userID
	booking.TotalPrice = float64(resort.Price) * float64(booking.Nights())

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	created.Resort = &resort

	s.publish(ctx, domain.EventBookingCreated, created)

	return created, nil
}

// GetBookingsFor lists every booking for admins and only the caller's own otherwise.
func (s *BookingService) GetBookingsFor(ctx context.Context, requester domain.User) ([]domain.Booking, error) {
	if requester.IsAdmin() {
		bookings, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		return bookings, nil
	}

	bookings, err := s.repo.FindByUserID(ctx, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return bookings, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, requester domain.User, id uint) error {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if booking.UserID != requester.ID && !requester.IsAdmin() {
		return ErrForbidden
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.publish(ctx, domain.EventBookingCancelled, booking)

	return nil
}

// publish never fails the request; a lost event is only logged.
func (s *BookingService) publish(ctx context.Context, eventType string, booking domain.Booking) {
	if s.publisher == nil {
		return
	}

	event := domain.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		ResortID:   booking.ResortID,
		UserID:     booking.UserID,
		TotalPrice: booking.TotalPrice,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.Uint("bookingID", booking.ID),
			zap.Error(err),
		)
	}
}
