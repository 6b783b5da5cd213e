package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/repository/dao"
)

var ErrResortNotFound = dao.ErrResortNotFound

type ResortDAO interface {
	Insert(ctx context.Context, resort dao.Resort) (dao.Resort, error)
	FindAll(ctx context.Context) ([]dao.Resort, error)
	FindByID(ctx context.Context, id uint) (dao.Resort, error)
	Update(ctx context.Context, resort dao.Resort) (dao.Resort, error)
	Delete(ctx context.Context, id uint) error
}

type ResortRepository struct {
	dao ResortDAO
}

func NewResortRepository(dao ResortDAO) *ResortRepository {
	return &ResortRepository{
		dao: dao,
	}
}

func (r *ResortRepository) Create(ctx context.Context, resort domain.Resort) (domain.Resort, error) {
	created, err := r.dao.Insert(ctx, resortDomainToDao(resort))
	if err != nil {
		return domain.Resort{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return resortDaoToDomain(created), nil
}

func (r *ResortRepository) FindAll(ctx context.Context) ([]domain.Resort, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	resorts := make([]domain.Resort, 0, len(found))
	for _, resort := range found {
		resorts = append(resorts, resortDaoToDomain(resort))
	}

	return resorts, nil
}

func (r *ResortRepository) FindByID(ctx context.Context, id uint) (domain.Resort, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Resort{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return resortDaoToDomain(found), nil
}

func (r *ResortRepository) Update(ctx context.Context, resort domain.Resort) (domain.Resort, error) {
	updated, err := r.dao.Update(ctx, resortDomainToDao(resort))
	if err != nil {
		return domain.Resort{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return resortDaoToDomain(updated), nil
}

func (r *ResortRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func resortDomainToDao(r domain.Resort) dao.Resort {
	return dao.Resort{
		ResortID:              r.ID,
		ResortName:            r.ResortName,
		ResortLocation:        r.ResortLocation,
		Description:           r.Description,
		ResortImageURL:        r.ResortImageURL,
		Price:                 r.Price,
		Capacity:              r.Capacity,
		ResortAvailableStatus: r.ResortAvailableStatus,
	}
}

func resortDaoToDomain(r dao.Resort) domain.Resort {
	return domain.Resort{
		ID:                    r.ResortID,
		ResortName:            r.ResortName,
		ResortLocation:        r.ResortLocation,
		Description:           r.Description,
		ResortImageURL:        r.ResortImageURL,
		Price:                 r.Price,
		Capacity:              r.Capacity,
		ResortAvailableStatus: r.ResortAvailableStatus,
	}
}
