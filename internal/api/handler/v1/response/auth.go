package response

type AuthResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role" example:"CUSTOMER"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
}

type HealthcheckResponse struct {
	Status string `json:"status" example:"ok"`
}
