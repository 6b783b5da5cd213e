package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID          uint      `json:"reviewId"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Rating      int       `json:"rating"`
	DateCreated time.Time `json:"dateCreated"`
	UserID      uint      `json:"userId"`
	Username    string    `json:"username,omitempty"`
}
