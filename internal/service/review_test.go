package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

func TestReviewService_CreateReviewStampsDate(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo())
	fixed := time.Date(2024, 2, 13, 9, 30, 59, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	review, err := svc.CreateReview(context.Background(), domain.User{ID: 3, Username: "dave"}, domain.Review{
		Subject: "Great",
		Body:    "Lovely stay",
		Rating:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(3), review.UserID)
	assert.Equal(t, "dave", review.Username)
	assert.Equal(t, fixed, review.DateCreated)
}

func TestReviewService_RatingBounds(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo())
	author := domain.User{ID: 1}

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(context.Background(), author, domain.Review{Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}

	for _, rating := range []int{domain.MinRating, domain.MaxRating} {
		_, err := svc.CreateReview(context.Background(), author, domain.Review{Rating: rating})
		assert.NoError(t, err, "rating %d", rating)
	}
}

func TestReviewService_DeleteReviewOwnership(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, domain.User{ID: 1}, domain.Review{Rating: 4})
	require.NoError(t, err)

	err = svc.DeleteReview(ctx, domain.User{ID: 2, UserRole: domain.RoleCustomer}, review.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteReview(ctx, domain.User{ID: 2, UserRole: domain.RoleAdmin}, review.ID)
	require.NoError(t, err)

	reviews, err := svc.GetReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
