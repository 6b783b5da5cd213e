package request

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

var errDateRange = errors.New("fromDate must not be after toDate")

type BookingRequest struct {
	FromDate    string `json:"fromDate" example:"2024-03-01"`
	ToDate      string `json:"toDate" example:"2024-03-04"`
	Address     string `json:"address" example:"221B Baker Street"`
	NoOfPersons int    `json:"noOfPersons" example:"2"`
	ResortID    uint   `json:"resortId" example:"1"`

	from, to time.Time
}

func (req *BookingRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.FromDate, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&req.ToDate, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&req.Address, validation.Required),
		validation.Field(&req.NoOfPersons, validation.Required, validation.Min(1)),
		validation.Field(&req.ResortID, validation.Required),
	)
	if err != nil {
		return err
	}

	if req.from, err = time.Parse(domain.DateLayout, req.FromDate); err != nil {
		return fmt.Errorf("fromDate: %w", err)
	}
	if req.to, err = time.Parse(domain.DateLayout, req.ToDate); err != nil {
		return fmt.Errorf("toDate: %w", err)
	}
	if req.to.Before(req.from) {
		return errDateRange
	}

	return nil
}

// ToDomain must be called after a successful Validate.
func (req *BookingRequest) ToDomain() domain.Booking {
	return domain.Booking{
		FromDate:    req.from,
		ToDate:      req.to,
		Address:     req.Address,
		NoOfPersons: req.NoOfPersons,
		ResortID:    req.ResortID,
	}
}
