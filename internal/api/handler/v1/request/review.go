package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

type ReviewRequest struct {
	Subject string `json:"subject" example:"Great stay"`
	Body    string `json:"body" example:"Clean rooms and friendly staff."`
	Rating  int    `json:"rating" example:"5"`
}

func (req *ReviewRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Body, validation.Required),
		validation.Field(&req.Rating, validation.Required, validation.Min(domain.MinRating), validation.Max(domain.MaxRating)),
	)
}

func (req *ReviewRequest) ToDomain() domain.Review {
	return domain.Review{
		Subject: req.Subject,
		Body:    req.Body,
		Rating:  req.Rating,
	}
}
