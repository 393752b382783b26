package handlers

import (
	"errors"
	"net/http"

	"doclink/services/api"
	"doclink/services/booking"
	"doclink/services/client"
	"doclink/services/guard"
	"doclink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps core errors onto shell HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, api.ErrAuthExpired),
		errors.Is(err, api.ErrInvalidCredentials),
		errors.Is(err, client.ErrLoginRejected):
		return http.StatusUnauthorized
	case errors.Is(err, api.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, api.ErrConflict),
		errors.Is(err, booking.ErrBookingInProgress),
		errors.Is(err, booking.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, api.ErrValidationFailed),
		errors.Is(err, booking.ErrValidationIncomplete),
		errors.Is(err, booking.ErrNotConfirmed),
		errors.Is(err, booking.ErrUnknownSlot),
		errors.Is(err, booking.ErrNoDoctorSelected),
		errors.Is(err, client.ErrBlankCredentials):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrNotFound),
		errors.Is(err, booking.ErrUnknownDoctor),
		errors.Is(err, booking.ErrUnknownAppointment):
		return http.StatusNotFound
	case errors.Is(err, api.ErrNetworkUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, api.ErrServerError):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// messageFor renders the user-facing message of err.
func messageFor(err error) string {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		return api.UserMessage(err)
	case errors.Is(err, client.ErrLoginRejected):
		return err.Error()
	case statusFor(err) == http.StatusInternalServerError:
		return "Internal server error"
	}
	return err.Error()
}

// respondError writes err. An expired session also carries a redirect to login.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	logger := getLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	if errors.Is(err, api.ErrAuthExpired) {
		utils.JSONRedirect(c, status, messageFor(err), guard.LoginPath)
		return
	}
	c.AbortWithStatusJSON(status, utils.ErrorResponse{Message: messageFor(err)})
}
