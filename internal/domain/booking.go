package domain

import "time"

const DateLayout = "2006-01-02"

type Booking struct {
	ID          uint      `json:"bookingId"`
	FromDate    time.Time `json:"fromDate"`
	ToDate      time.Time `json:"toDate"`
	Address     string    `json:"address"`
	NoOfPersons int       `json:"noOfPersons"`
	TotalPrice  float64   `json:"totalPrice"`
	ResortID    uint      `json:"resortId"`
	UserID      uint      `json:"userId"`
	Resort      *Resort   `json:"resort,omitempty"`
}

// Nights is the number of nights between FromDate and ToDate, at least one.
func (b Booking) Nights() int {
	n := int(b.ToDate.Sub(b.FromDate).Hours() / 24)
	if n < 1 {
		return 1
	}

	return n
}
