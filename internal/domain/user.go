package domain

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

type User struct {
	ID           uint   `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"-"`
	MobileNumber string `json:"mobileNumber"`
	UserRole     string `json:"userRole"`
}

func (u User) IsAdmin() bool {
	return u.UserRole == RoleAdmin
}
