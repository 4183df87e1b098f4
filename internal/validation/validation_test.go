package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidMobile(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{
			name:  "starts with 9",
			phone: "9876543210",
			valid: true,
		},
		{
			name:  "starts with 6",
			phone: "6000000000",
			valid: true,
		},
		{
			name:  "starts with 5",
			phone: "5876543210",
			valid: false,
		},
		{
			name:  "too short",
			phone: "987654321",
			valid: false,
		},
		{
			name:  "too long",
			phone: "98765432101",
			valid: false,
		},
		{
			name:  "contains letters",
			phone: "98765a3210",
			valid: false,
		},
		{
			name:  "empty string",
			phone: "",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidMobile(tt.phone))
		})
	}
}

type sample struct {
	Name     string `validate:"required"`
	Phone    string `validate:"required,mobile"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"omitempty,oneof=admin staff"`
}

func TestStruct(t *testing.T) {
	ok := sample{Name: "a", Phone: "9876543210", Email: "a@b.co", Password: "secret"}
	require.NoError(t, Struct(ok))

	bad := sample{Phone: "1234", Email: "nope", Password: "123", Role: "root"}
	err := Struct(bad)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "phone must be a 10 digit number")
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "password must be at least 6 characters")
	assert.Contains(t, msg, "role must be one of [admin staff]")
}
