package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	err := Struct(&samplePayload{
		Email:                "nope",
		Password:             "short",
		PasswordConfirmation: "different",
	})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "password_confirmation")

	assert.Equal(t, "The name field is required.", fields["name"])
	assert.Equal(t, "The email field must be a valid email address.", fields["email"])
	assert.Equal(t, "The password field must be at least 8 characters.", fields["password"])
	assert.Equal(t, "The password_confirmation field does not match.", fields["password_confirmation"])
}

func TestStructPassesValidPayload(t *testing.T) {
	err := Struct(&samplePayload{
		Name:                 "Grace",
		Email:                "grace@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
	})
	assert.NoError(t, err)
}

func TestFieldErrorsNonValidatorError(t *testing.T) {
	fields := FieldErrors(assert.AnError)
	assert.Equal(t, map[string]string{"request": "invalid request"}, fields)
}
