package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found helper", NotFound("missing"), http.StatusNotFound},
		{"forbidden helper", Forbidden("nope"), http.StatusForbidden},
		{"bad request helper", BadRequest("bad"), http.StatusBadRequest},
		{"conflict helper", Conflict("dup"), http.StatusConflict},
		{"custom code", New(http.StatusTooManyRequests, "slow down", ErrInvalidInput), http.StatusTooManyRequests},
		{"bare sentinel", ErrUnauthorized, http.StatusUnauthorized},
		{"wrapped sentinel", fmt.Errorf("context: %w", ErrConflict), http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatus(tc.err))
		})
	}
}

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	err := Conflict("already exists")
	assert.Equal(t, "already exists", err.Error())
	assert.True(t, errors.Is(err, ErrConflict))

	bare := New(http.StatusBadRequest, "", ErrInvalidInput)
	assert.Equal(t, ErrInvalidInput.Error(), bare.Error())
}
