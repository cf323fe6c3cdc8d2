package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesOrigin(t *testing.T) {
	origin := errors.New("connection refused")
	err := NewStoreError("Failed to load post", origin)

	assert.Equal(t, "Failed to load post: connection refused", err.Error())
	assert.True(t, IsErrorCode(err, ErrStore))
}

func TestIsErrorCode(t *testing.T) {
	err := NewNotFoundError("Post")
	assert.True(t, IsErrorCode(err, ErrNotFound))
	assert.False(t, IsErrorCode(err, ErrValidation))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrNotFound))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewNotFoundError("Post"), http.StatusNotFound},
		{NewValidationError("bad input"), http.StatusBadRequest},
		{NewUnauthorizedError("no token"), http.StatusUnauthorized},
		{NewForbiddenError("not yours"), http.StatusForbidden},
		{NewAppError(ErrDuplicate, "already exists", nil), http.StatusConflict},
		{NewStoreError("db down", errors.New("x")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}
