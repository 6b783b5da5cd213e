package domain

const (
	ResortAvailable   = "Available"
	ResortUnavailable = "Unavailable"
)

type Resort struct {
	ID                    uint   `json:"resortId"`
	ResortName            string `json:"resortName"`
	ResortLocation        string `json:"resortLocation"`
	Description           string `json:"description"`
	ResortImageURL        string `json:"resortImageUrl"`
	Price                 int64  `json:"price"`
	Capacity              int    `json:"capacity"`
	ResortAvailableStatus string `json:"resortAvailableStatus"`
}

func (r Resort) IsAvailable() bool {
	return r.ResortAvailableStatus == ResortAvailable
}
