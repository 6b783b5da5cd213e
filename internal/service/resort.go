package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/repository"
)

var ErrResortNotFound = repository.ErrResortNotFound

type ResortRepository interface {
	Create(ctx context.Context, resort domain.Resort) (domain.Resort, error)
	FindAll(ctx context.Context) ([]domain.Resort, error)
	FindByID(ctx context.Context, id uint) (domain.Resort, error)
	Update(ctx context.Context, resort domain.Resort) (domain.Resort, error)
	Delete(ctx context.Context, id uint) error
}

// ResortCache holds the resort listing. Implementations swallow their own
// errors; a miss falls back to the repository.
type ResortCache interface {
	GetAll(ctx context.Context) ([]domain.Resort, bool)
	SetAll(ctx context.Context, resorts []domain.Resort)
	Invalidate(ctx context.Context)
}

type ResortService struct {
	repo  ResortRepository
	cache ResortCache
}

func NewResortService(repo ResortRepository, cache ResortCache) *ResortService {
	if cache == nil {
		cache = noCache{}
	}

	return &ResortService{
		repo:  repo,
		cache: cache,
	}
}

func (s *ResortService) CreateResort(ctx context.Context, resort domain.Resort) (domain.Resort, error) {
	if resort.ResortAvailableStatus == "" {
		resort.ResortAvailableStatus = domain.ResortAvailable
	}

	created, err := s.repo.Create(ctx, resort)
	if err != nil {
		return domain.Resort{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	s.cache.Invalidate(ctx)

	return created, nil
}

func (s *ResortService) GetResorts(ctx context.Context) ([]domain.Resort, error) {
	if resorts, ok := s.cache.GetAll(ctx); ok {
		return resorts, nil
	}

	resorts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}
	s.cache.SetAll(ctx, resorts)

	return resorts, nil
}

func (s *ResortService) GetResort(ctx context.Context, id uint) (domain.Resort, error) {
	resort, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Resort{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return resort, nil
}

func (s *ResortService) UpdateResort(ctx context.Context, resort domain.Resort) (domain.Resort, error) {
	updated, err := s.repo.Update(ctx, resort)
	if err != nil {
		return domain.Resort{}, fmt.Errorf("s.repo.Update -> %w", err)
	}
	s.cache.Invalidate(ctx)

	return updated, nil
}

// DeleteResort removes the resort and its bookings.
func (s *ResortService) DeleteResort(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	s.cache.Invalidate(ctx)

	return nil
}

type noCache struct{}

func (noCache) GetAll(context.Context) ([]domain.Resort, bool) { return nil, false }
func (noCache) SetAll(context.Context, []domain.Resort)         {}
func (noCache) Invalidate(context.Context)                      {}
