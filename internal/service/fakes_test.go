package service

import (
	"context"
	"errors"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.User{}, ErrUserEmailExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

type fakeResortRepo struct {
	resorts  map[uint]domain.Resort
	findAlls int
}

func (r *fakeResortRepo) Create(_ context.Context, resort domain.Resort) (domain.Resort, error) {
	resort.ID = uint(len(r.resorts) + 1)
	r.resorts[resort.ID] = resort

	return resort, nil
}

func (r *fakeResortRepo) FindAll(_ context.Context) ([]domain.Resort, error) {
	r.findAlls++
	out := make([]domain.Resort, 0, len(r.resorts))
	for i := uint(1); i <= uint(len(r.resorts)); i++ {
		if res, ok := r.resorts[i]; ok {
			out = append(out, res)
		}
	}

	return out, nil
}

func (r *fakeResortRepo) FindByID(_ context.Context, id uint) (domain.Resort, error) {
	res, ok := r.resorts[id]
	if !ok {
		return domain.Resort{}, ErrResortNotFound
	}

	return res, nil
}

func (r *fakeResortRepo) Update(_ context.Context, resort domain.Resort) (domain.Resort, error) {
	if _, ok := r.resorts[resort.ID]; !ok {
		return domain.Resort{}, ErrResortNotFound
	}
	r.resorts[resort.ID] = resort

	return resort, nil
}

func (r *fakeResortRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.resorts[id]; !ok {
		return ErrResortNotFound
	}
	delete(r.resorts, id)

	return nil
}

type fakeBookingRepo struct {
	bookings map[uint]domain.Booking
	nextID   uint
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uint]domain.Booking{}, nextID: 1}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking domain.Booking) (domain.Booking, error) {
	booking.ID = r.nextID
	r.nextID++
	r.bookings[booking.ID] = booking

	return booking, nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	for i := uint(1); i < r.nextID; i++ {
		if b, ok := r.bookings[i]; ok {
			out = append(out, b)
		}
	}

	return out, nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.Booking, error) {
	all, _ := r.FindAll(ctx)
	var out []domain.Booking
	for _, b := range all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}

	return out, nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uint) (domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return domain.Booking{}, ErrBookingNotFound
	}

	return b, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.bookings[id]; !ok {
		return ErrBookingNotFound
	}
	delete(r.bookings, id)

	return nil
}

type recordingPublisher struct {
	events []domain.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

var errBrokerDown = errors.New("broker down")

type fakeReviewRepo struct {
	reviews map[uint]domain.Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uint]domain.Review{}, nextID: 1}
}

func (r *fakeReviewRepo) Create(_ context.Context, review domain.Review) (domain.Review, error) {
	review.ID = r.nextID
	r.nextID++
	r.reviews[review.ID] = review

	return review, nil
}

func (r *fakeReviewRepo) FindAll(_ context.Context) ([]domain.Review, error) {
	var out []domain.Review
	for i := uint(1); i < r.nextID; i++ {
		if rv, ok := r.reviews[i]; ok {
			out = append(out, rv)
		}
	}

	return out, nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uint) (domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return domain.Review{}, ErrReviewNotFound
	}

	return rv, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uint) error {
	delete(r.reviews, id)

	return nil
}

type memoryResortCache struct {
	resorts     []domain.Resort
	hit         bool
	invalidated int
}

func (c *memoryResortCache) GetAll(context.Context) ([]domain.Resort, bool) {
	return c.resorts, c.hit
}

func (c *memoryResortCache) SetAll(_ context.Context, resorts []domain.Resort) {
	c.resorts = resorts
	c.hit = true
}

func (c *memoryResortCache) Invalidate(context.Context) {
	c.resorts = nil
	c.hit = false
	c.invalidated++
}
