package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInternal, http.StatusInternalServerError},
		{CodeInvalidFormat, http.StatusBadRequest},
		{CodeInvalidInput, http.StatusUnprocessableEntity},
		{CodeBadRequest, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTooManyRequest, http.StatusTooManyRequests},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeTimeout, http.StatusRequestTimeout},
		{Code(99), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			var gerr *Error
			require.True(t, errors.As(NewBusiness("x", tt.code), &gerr))
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}

func TestNewServer(t *testing.T) {
	cause := errors.New("sheet unavailable")
	err := NewServer(cause)

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, TypeServer, gerr.Type())
	assert.Equal(t, "Internal server error", gerr.Msg())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "sheet unavailable", err.Error())
}

func TestNewBusinessWrap(t *testing.T) {
	cause := errors.New("mismatch")
	err := NewBusinessWrap(cause, "OTP invalid", CodeBadRequest, "reason", "MISMATCH")

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, map[string]string{"reason": "MISMATCH"}, gerr.Fields())
	assert.Equal(t, http.StatusBadRequest, gerr.StatusCode())
}

func TestNewInvalidInput(t *testing.T) {
	var gerr *Error

	require.True(t, errors.As(NewInvalidInput(nil, "confirm", "must be true"), &gerr))
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, "must be true", gerr.Fields()["confirm"])

	require.True(t, errors.As(NewInvalidInput(nil, "odd"), &gerr))
	assert.Equal(t, CodeInvalidFormat, gerr.Code())
}

func TestError_DefaultMessages(t *testing.T) {
	assert.Equal(t, "Logical business not meet with requirement", (&Error{errType: TypeBusiness}).Error())
	assert.Equal(t, "Validation violation", (&Error{errType: TypeValidation}).Error())
	assert.Equal(t, "Internal error", (&Error{errType: TypeServer}).Error())
	assert.Equal(t, "ERROR_TYPE_UNKNOWN", Type(7).String())
}
