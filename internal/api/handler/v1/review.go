package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/service"
)

type ReviewService interface {
	CreateReview(ctx context.Context, author domain.User, review domain.Review) (domain.Review, error)
	GetReviews(ctx context.Context) ([]domain.Review, error)
	DeleteReview(ctx context.Context, requester domain.User, id uint) error
}

type ReviewHandler struct {
	svc  ReviewService
	uSvc UserService
}

func NewReviewHandler(svc ReviewService, uSvc UserService) *ReviewHandler {
	return &ReviewHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateReview godoc
// @Summary      Post a review as the caller
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request  body      request.ReviewRequest  true  "request body"
// @Success      201      {object}  domain.Review
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /reviews [post]
// @Security     BearerAuth
func (h *ReviewHandler) HandleCreateReview(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	review, err := h.svc.CreateReview(ctx.Request.Context(), user, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateReview -> h.svc.CreateReview -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, review)
}

// HandleGetReviews godoc
// @Summary      List reviews, newest first
// @Tags         reviews
// @Produce      json
// @Success      200  {array}   domain.Review
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reviews [get]
// @Security     BearerAuth
func (h *ReviewHandler) HandleGetReviews(ctx *gin.Context) {
	reviews, err := h.svc.GetReviews(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetReviews -> h.svc.GetReviews -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	ctx.JSON(http.StatusOK, reviews)
}

// HandleDeleteReview godoc
// @Summary      Delete a review
// @Tags         reviews
// @Param        reviewID  path      int  true  "review ID"
// @Success      204
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /reviews/{reviewID} [delete]
// @Security     BearerAuth
func (h *ReviewHandler) HandleDeleteReview(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reviewID, respErr := idParam(ctx, "reviewID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteReview(ctx.Request.Context(), user, reviewID); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.RenderErr(ctx, response.ErrNotFound("review", "reviewID", reviewID))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteReview -> h.svc.DeleteReview -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}
