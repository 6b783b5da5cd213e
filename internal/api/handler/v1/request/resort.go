package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

type ResortRequest struct {
	ResortName            string `json:"resortName" example:"Sea View"`
	ResortLocation        string `json:"resortLocation" example:"Goa"`
	Description           string `json:"description"`
	ResortImageURL        string `json:"resortImageUrl" example:"https://example.com/sea-view.jpg"`
	Price                 int64  `json:"price" example:"120"`
	Capacity              int    `json:"capacity" example:"4"`
	ResortAvailableStatus string `json:"resortAvailableStatus" example:"Available"`
}

func (req *ResortRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ResortName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.ResortLocation, validation.Required),
		validation.Field(&req.ResortImageURL, is.URL),
		validation.Field(&req.Price, validation.Required, validation.Min(1)),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.ResortAvailableStatus, validation.In(domain.ResortAvailable, domain.ResortUnavailable)),
	)
}

func (req *ResortRequest) ToDomain(id uint) domain.Resort {
	return domain.Resort{
		ID:                    id,
		ResortName:            req.ResortName,
		ResortLocation:        req.ResortLocation,
		Description:           req.Description,
		ResortImageURL:        req.ResortImageURL,
		Price:                 req.Price,
		Capacity:              req.Capacity,
		ResortAvailableStatus: req.ResortAvailableStatus,
	}
}
