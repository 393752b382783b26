package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"doclink/services/api"
	"doclink/services/booking"
	"doclink/services/client"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&api.APIError{Kind: api.ErrAuthExpired, Status: 401}, http.StatusUnauthorized},
		{&api.APIError{Kind: api.ErrForbidden, Status: 403}, http.StatusForbidden},
		{&api.APIError{Kind: api.ErrConflict, Status: 409}, http.StatusConflict},
		{&api.APIError{Kind: api.ErrValidationFailed, Status: 400}, http.StatusBadRequest},
		{&api.APIError{Kind: api.ErrNotFound, Status: 404}, http.StatusNotFound},
		{&api.APIError{Kind: api.ErrNetworkUnavailable}, http.StatusServiceUnavailable},
		{&api.APIError{Kind: api.ErrServerError, Status: 500}, http.StatusBadGateway},
		{booking.ErrValidationIncomplete, http.StatusBadRequest},
		{booking.ErrBookingInProgress, http.StatusConflict},
		{fmt.Errorf("%w: 1 is CANCELLED", booking.ErrInvalidTransition), http.StatusConflict},
		{client.ErrBlankCredentials, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestMessageForHidesInternalErrors(t *testing.T) {
	assert.Equal(t, "Internal server error", messageFor(errors.New("redis: connection refused")))
	assert.Equal(t, "Session expired. Please login again.", messageFor(&api.APIError{Kind: api.ErrAuthExpired, Status: 401}))
}
