package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewValidation("bad input", nil), http.StatusBadRequest},
		{NewInvalidTransition("already cancelled"), http.StatusBadRequest},
		{NewNotFound("appointment", nil), http.StatusNotFound},
		{NewConflict("slot taken", nil), http.StatusConflict},
		{NewAuthorization("not yours"), http.StatusForbidden},
		{NewInternal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternal(cause)
	assert.Equal(t, "internal server error: connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	bare := NewAuthorization("not yours")
	assert.Equal(t, "not yours", bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}

func TestAsAppError(t *testing.T) {
	inner := NewConflict("slot taken", nil)
	wrapped := fmt.Errorf("booking failed: %w", inner)

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrConflict, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
	_, ok = AsAppError(nil)
	assert.False(t, ok)
}

func TestIsCode(t *testing.T) {
	err := NewNotFound("doctor", nil)
	assert.True(t, IsCode(err, ErrNotFound))
	assert.False(t, IsCode(err, ErrConflict))
	assert.False(t, IsCode(nil, ErrNotFound))
	assert.False(t, IsCode(errors.New("plain"), ErrNotFound))
}

func TestNewNotFoundMessage(t *testing.T) {
	assert.Equal(t, "appointment not found", NewNotFound("appointment", nil).Message)
}
