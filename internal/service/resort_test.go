package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

func TestResortService_ListIsCachedUntilWrite(t *testing.T) {
	repo := &fakeResortRepo{resorts: map[uint]domain.Resort{}}
	cache := &memoryResortCache{}
	svc := NewResortService(repo, cache)
	ctx := context.Background()

	created, err := svc.CreateResort(ctx, domain.Resort{ResortName: "Lagoon", Price: 80, Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.ResortAvailable, created.ResortAvailableStatus)

	_, err = svc.GetResorts(ctx)
	require.NoError(t, err)
	resorts, err := svc.GetResorts(ctx)
	require.NoError(t, err)
	assert.Len(t, resorts, 1)
	assert.Equal(t, 1, repo.findAlls)

	created.Price = 90
	_, err = svc.UpdateResort(ctx, created)
	require.NoError(t, err)

	resorts, err = svc.GetResorts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(90), resorts[0].Price)
	assert.Equal(t, 2, repo.findAlls)

	require.NoError(t, svc.DeleteResort(ctx, created.ID))
	assert.Equal(t, 3, cache.invalidated)
}

func TestResortService_WithoutCache(t *testing.T) {
	repo := &fakeResortRepo{resorts: map[uint]domain.Resort{}}
	svc := NewResortService(repo, nil)
	ctx := context.Background()

	_, err := svc.GetResort(ctx, 1)
	assert.ErrorIs(t, err, ErrResortNotFound)

	_, err = svc.GetResorts(ctx)
	require.NoError(t, err)
	_, err = svc.GetResorts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.findAlls)
}

func TestUserService_GetUserFor(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	alice, err := repo.Create(ctx, domain.User{Email: "alice@example.com", UserRole: domain.RoleCustomer})
	require.NoError(t, err)

	got, err := svc.GetUserFor(ctx, alice, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, got.Email)

	_, err = svc.GetUserFor(ctx, domain.User{ID: 9, UserRole: domain.RoleCustomer}, alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetUserFor(ctx, domain.User{ID: 9, UserRole: domain.RoleAdmin}, alice.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, alice.ID))
	_, err = svc.GetUser(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
