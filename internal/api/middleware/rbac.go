package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trailhead/campground-api/internal/api/metrics"
	"github.com/trailhead/campground-api/internal/core/domain"
)

// RequireAdmin rejects any request whose verified claims do not carry the
// admin role. Must be mounted after Auth.
func RequireAdmin(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok || claims.Role != domain.RoleAdmin {
				metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
				logger.Warn().Str("user_id", claims.UserID).Str("path", c.Path()).Msg("admin route access denied")
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden: Admins only")
			}
			return next(c)
		}
	}
}
