package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// statusFor maps domain sentinels to HTTP statuses. Anything unmapped
// is an internal error and must not leak its message to clients.
func statusFor(err error) (int, bool) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrOTPInvalid),
		errors.Is(err, domain.ErrOTPInvalidOrExpired),
		errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrSamePassword):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrRefreshTokenMissing),
		errors.Is(err, domain.ErrRefreshTokenInvalid):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrEmailNotVerified),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrVideoNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrVideoTitleExists):
		return http.StatusConflict, true
	case errors.Is(err, domain.ErrOTPResendCooldown):
		return http.StatusTooManyRequests, true
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, false
	default:
		return http.StatusInternalServerError, false
	}
}

// Fail writes the client-fault error envelope.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "fail", "message": message})
}

// ErrorHandler translates errors recorded via c.Error into the response
// envelope. Client faults get status "fail" with the domain message;
// server faults get status "error" with a generic message and a log line.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, clientFault := statusFor(err)
		if clientFault {
			Fail(c, status, err.Error())
			return
		}

		log.Printf("request failed: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message := "something went wrong"
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			message = domain.ErrUpstreamUnavailable.Error()
		}
		c.JSON(status, gin.H{"status": "error", "message": message})
	}
}
