package request

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
	// bcrypt only hashes the first 72 bytes and refuses anything longer.
	maxPasswordLength = 72
)

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword = errors.New("the password must be at least 8 characters and contain at least 1 letter and 1 number")
)

type RegisterRequest struct {
	Username     string `json:"username" example:"alice"`
	Password     string `json:"password" example:"Passw0rd"`
	UserRole     string `json:"userRole" example:"CUSTOMER"`
	Email        string `json:"email" example:"alice@example.com"`
	MobileNumber string `json:"mobileNumber" example:"5551234567"`
}

func (req *RegisterRequest) Validate() error {
	req.UserRole = strings.ToUpper(strings.TrimSpace(req.UserRole))

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, maxPasswordLength)),
		validation.Field(&req.UserRole, validation.Required, validation.In("ADMIN", "CUSTOMER")),
		validation.Field(&req.MobileNumber, validation.Required, is.Digit, validation.Length(3, 15)),
	)
	if err != nil {
		return err
	}

	if ok, err := passwordExp.MatchString(req.Password); err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Passw0rd"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
