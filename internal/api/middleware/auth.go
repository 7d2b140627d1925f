package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapshift/parcel-system/internal/api/metrics"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

// ContextEmailKey is where Auth stores the verified email. Downstream
// handlers derive the acting identity from it and never from request
// payloads.
const ContextEmailKey = "verified_email"

// Auth verifies the bearer credential on every request and injects the
// verified email into the echo context. Rejection is always 401; no role
// information leaks at this stage.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			email, err := verifier.Verify(c.Request().Context(), header)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("unauthorized").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			c.Set(ContextEmailKey, email)
			return next(c)
		}
	}
}

// VerifiedEmail returns the email set by Auth, or "" when the middleware did
// not run.
func VerifiedEmail(c echo.Context) string {
	email, _ := c.Get(ContextEmailKey).(string)
	return email
}
