package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapshift/parcel-system/internal/api/metrics"
	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

// RequireRole authorizes the identified caller against the role store. It
// must run after Auth: the lookup always uses the verified email, never a
// client-supplied one. A missing account or a different role is 403: the
// identity was valid, the privilege is not.
func RequireRole(store ports.RoleStore, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := VerifiedEmail(c)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			user, err := store.FindByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
				}
				return err
			}
			if user.Role != role {
				metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}

			return next(c)
		}
	}
}
