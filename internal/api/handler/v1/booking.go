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

type BookingService interface {
	CreateBooking(ctx context.Context, userID uint, booking domain.Booking) (domain.Booking, error)
	GetBookingsFor(ctx context.Context, requester domain.User) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, requester domain.User, id uint) error
}

type BookingHandler struct {
	svc  BookingService
	uSvc UserService
}

func NewBookingHandler(svc BookingService, uSvc UserService) *BookingHandler {
	return &BookingHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateBooking godoc
// @Summary      Book a resort for the caller
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body      request.BookingRequest  true  "request body"
// @Success      201      {object}  domain.Booking
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /bookings [post]
// @Security     BearerAuth
func (h *BookingHandler) HandleCreateBooking(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booking, err := h.svc.CreateBooking(ctx.Request.Context(), user.ID, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResortNotFound):
			response.RenderErr(ctx, response.ErrNotFound("resort", "resortID", req.ResortID))
		case errors.Is(err, service.ErrResortUnavailable), errors.Is(err, service.ErrCapacityExceeded):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrInvalidDateRange), errors.Is(err, service.ErrInvalidPersons):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateBooking -> h.svc.CreateBooking -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, booking)
}

// HandleGetBookings godoc
// @Summary      List bookings
// @Description  Admins get every booking, customers only their own.
// @Tags         bookings
// @Produce      json
// @Success      200  {array}   domain.Booking
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /bookings [get]
// @Security     BearerAuth
func (h *BookingHandler) HandleGetBookings(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookings, err := h.svc.GetBookingsFor(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetBookings -> h.svc.GetBookingsFor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if bookings == nil {
		bookings = []domain.Booking{}
	}

	ctx.JSON(http.StatusOK, bookings)
}

// HandleCancelBooking godoc
// @Summary      Cancel a booking
// @Tags         bookings
// @Param        bookingID  path      int  true  "booking ID"
// @Success      204
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /bookings/{bookingID} [delete]
// @Security     BearerAuth
func (h *BookingHandler) HandleCancelBooking(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookingID, respErr := idParam(ctx, "bookingID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.CancelBooking(ctx.Request.Context(), user, bookingID); err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.RenderErr(ctx, response.ErrNotFound("booking", "bookingID", bookingID))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleCancelBooking -> h.svc.CancelBooking -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}
