package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), domain.User{
		Username: "alice",
		Email:    " Alice@Example.com ",
		Password: "Passw0rd!",
		UserRole: "customer",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.UserRole)
	assert.NotEqual(t, "Passw0rd!", user.Password)
}

func TestAuthService_RegisterRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), domain.User{Email: "a@b.c", Password: "Passw0rd!", UserRole: "GUEST"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_RegisterRejectsOverlongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Register(context.Background(), domain.User{
		Email:    "long@example.com",
		Password: strings.Repeat("a1", 37),
		UserRole: domain.RoleCustomer,
	})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Empty(t, repo.users)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()
	user := domain.User{Email: "bob@example.com", Password: "Passw0rd!", UserRole: domain.RoleAdmin}

	_, err := svc.Register(ctx, user)
	require.NoError(t, err)

	_, err = svc.Register(ctx, user)
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.User{Email: "carol@example.com", Password: "Passw0rd!", UserRole: domain.RoleCustomer})
	require.NoError(t, err)

	user, err := svc.Login(ctx, "CAROL@example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", user.Email)

	_, err = svc.Login(ctx, "carol@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody@example.com", "Passw0rd!")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
