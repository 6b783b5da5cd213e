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

type ResortService interface {
	CreateResort(ctx context.Context, resort domain.Resort) (domain.Resort, error)
	GetResorts(ctx context.Context) ([]domain.Resort, error)
	GetResort(ctx context.Context, id uint) (domain.Resort, error)
	UpdateResort(ctx context.Context, resort domain.Resort) (domain.Resort, error)
	DeleteResort(ctx context.Context, id uint) error
}

type ResortHandler struct {
	svc ResortService
}

func NewResortHandler(svc ResortService) *ResortHandler {
	return &ResortHandler{
		svc: svc,
	}
}

// HandleGetResorts godoc
// @Summary      List resorts
// @Tags         resorts
// @Produce      json
// @Success      200  {array}   domain.Resort
// @Failure      500  {object}  response.Err
// @Router       /resorts [get]
func (h *ResortHandler) HandleGetResorts(ctx *gin.Context) {
	resorts, err := h.svc.GetResorts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetResorts -> h.svc.GetResorts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, resorts)
}

// HandleGetResort godoc
// @Summary      Get a resort
// @Tags         resorts
// @Produce      json
// @Param        resortID  path      int  true  "resort ID"
// @Success      200       {object}  domain.Resort
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /resorts/{resortID} [get]
func (h *ResortHandler) HandleGetResort(ctx *gin.Context) {
	resortID, respErr := idParam(ctx, "resortID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	resort, err := h.svc.GetResort(ctx.Request.Context(), resortID)
	if err != nil {
		h.renderErr(ctx, "v1.HandleGetResort -> h.svc.GetResort", resortID, err)
		return
	}

	ctx.JSON(http.StatusOK, resort)
}

// HandleCreateResort godoc
// @Summary      Create a resort
// @Tags         resorts
// @Accept       json
// @Produce      json
// @Param        request  body      request.ResortRequest  true  "request body"
// @Success      201      {object}  domain.Resort
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /resorts [post]
// @Security     BearerAuth
func (h *ResortHandler) HandleCreateResort(ctx *gin.Context) {
	var req request.ResortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	resort, err := h.svc.CreateResort(ctx.Request.Context(), req.ToDomain(0))
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateResort -> h.svc.CreateResort -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, resort)
}

// HandleUpdateResort godoc
// @Summary      Replace a resort
// @Tags         resorts
// @Accept       json
// @Produce      json
// @Param        resortID  path      int                    true  "resort ID"
// @Param        request   body      request.ResortRequest  true  "request body"
// @Success      200       {object}  domain.Resort
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /resorts/{resortID} [put]
// @Security     BearerAuth
func (h *ResortHandler) HandleUpdateResort(ctx *gin.Context) {
	resortID, respErr := idParam(ctx, "resortID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ResortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	resort := req.ToDomain(resortID)
	if resort.ResortAvailableStatus == "" {
		resort.ResortAvailableStatus = domain.ResortAvailable
	}

	updated, err := h.svc.UpdateResort(ctx.Request.Context(), resort)
	if err != nil {
		h.renderErr(ctx, "v1.HandleUpdateResort -> h.svc.UpdateResort", resortID, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteResort godoc
// @Summary      Delete a resort and its bookings
// @Tags         resorts
// @Param        resortID  path      int  true  "resort ID"
// @Success      204
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /resorts/{resortID} [delete]
// @Security     BearerAuth
func (h *ResortHandler) HandleDeleteResort(ctx *gin.Context) {
	resortID, respErr := idParam(ctx, "resortID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteResort(ctx.Request.Context(), resortID); err != nil {
		h.renderErr(ctx, "v1.HandleDeleteResort -> h.svc.DeleteResort", resortID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ResortHandler) renderErr(ctx *gin.Context, trace string, resortID uint, err error) {
	if errors.Is(err, service.ErrResortNotFound) {
		response.RenderErr(ctx, response.ErrNotFound("resort", "resortID", resortID))
		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", trace, err)))
}
