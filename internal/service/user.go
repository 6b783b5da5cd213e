package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/repository"
)

var (
	ErrUserNotFound      = repository.ErrUserNotFound
	ErrReferenceNotFound = repository.ErrReferenceNotFound
	ErrForbidden         = errors.New("not allowed to access this resource")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// GetUserFor returns user id as seen by requester: users may read
// themselves, admins may read anyone.
func (s *UserService) GetUserFor(ctx context.Context, requester domain.User, id uint) (domain.User, error) {
	if requester.ID != id && !requester.IsAdmin() {
		return domain.User{}, ErrForbidden
	}

	return s.GetUser(ctx, id)
}

// DeleteUser removes the user together with their bookings and reviews.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
