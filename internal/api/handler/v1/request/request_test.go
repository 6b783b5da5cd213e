package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		Username:     "alice",
		Password:     "Passw0rd",
		UserRole:     "customer",
		Email:        "alice@example.com",
		MobileNumber: "5551234567",
	}

	req := valid
	require.NoError(t, req.Validate())
	assert.Equal(t, "CUSTOMER", req.UserRole)

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
	}{
		{name: "missing username", mutate: func(r *RegisterRequest) { r.Username = "" }},
		{name: "bad email", mutate: func(r *RegisterRequest) { r.Email = "alice" }},
		{name: "unknown role", mutate: func(r *RegisterRequest) { r.UserRole = "GUEST" }},
		{name: "short password", mutate: func(r *RegisterRequest) { r.Password = "Pa55" }},
		{name: "password without digit", mutate: func(r *RegisterRequest) { r.Password = "Password" }},
		{name: "password over 72 characters", mutate: func(r *RegisterRequest) { r.Password = strings.Repeat("a1", 37) }},
		{name: "password without letter", mutate: func(r *RegisterRequest) { r.Password = "12345678" }},
		{name: "mobile not digits", mutate: func(r *RegisterRequest) { r.MobileNumber = "555-abc" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestBookingRequest_Validate(t *testing.T) {
	req := BookingRequest{FromDate: "2024-03-01", ToDate: "2024-03-03", Address: "x", NoOfPersons: 2, ResortID: 1}
	require.NoError(t, req.Validate())

	b := req.ToDomain()
	assert.Equal(t, 2, b.Nights())
	assert.Equal(t, uint(1), b.ResortID)

	reversed := BookingRequest{FromDate: "2024-03-03", ToDate: "2024-03-01", Address: "x", NoOfPersons: 2, ResortID: 1}
	assert.ErrorIs(t, reversed.Validate(), errDateRange)

	badDate := BookingRequest{FromDate: "03/01/2024", ToDate: "2024-03-01", Address: "x", NoOfPersons: 2, ResortID: 1}
	assert.Error(t, badDate.Validate())

	noPersons := BookingRequest{FromDate: "2024-03-01", ToDate: "2024-03-01", Address: "x", ResortID: 1}
	assert.Error(t, noPersons.Validate())
}

func TestReviewRequest_Validate(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		req := ReviewRequest{Subject: "s", Body: "b", Rating: rating}
		assert.NoError(t, req.Validate(), rating)
	}
	for _, rating := range []int{0, 6} {
		req := ReviewRequest{Subject: "s", Body: "b", Rating: rating}
		assert.Error(t, req.Validate(), rating)
	}
}

func TestResortRequest_Validate(t *testing.T) {
	req := ResortRequest{ResortName: "Sea View", ResortLocation: "Goa", Price: 100, Capacity: 4}
	require.NoError(t, req.Validate())
	assert.Equal(t, uint(3), req.ToDomain(3).ID)

	req.ResortAvailableStatus = "Maybe"
	assert.Error(t, req.Validate())
}
