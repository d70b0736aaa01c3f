package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passwordInput struct {
	Password string `json:"password" validate:"required,mixedcase"`
}

func TestNewValidator_ReportsJSONNames(t *testing.T) {
	err := NewValidator().Struct(passwordInput{Password: "lowercase1"})

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].Field())
	assert.Equal(t, "mixedcase", errs[0].Tag())
}

func TestNewValidator_AcceptsMixedCase(t *testing.T) {
	assert.NoError(t, NewValidator().Struct(passwordInput{Password: "Secret123"}))
}
