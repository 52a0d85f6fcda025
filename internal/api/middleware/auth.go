package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trailhead/campground-api/internal/api/metrics"
	"github.com/trailhead/campground-api/internal/core/ports"
)

// claimsKey is the single context key holding the typed auth claims.
const claimsKey = "auth_claims"

const bearerPrefix = "Bearer "

// Auth verifies the bearer token and attaches the typed claims to the
// request context. The scheme prefix is matched case-sensitively. When a
// deny-list is configured, revoked tokens are rejected as well.
func Auth(tokens ports.TokenService, denylist ports.TokenDenylist, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				metrics.AuthDeniedTotal.WithLabelValues("missing_header").Inc()
				logger.Warn().Str("path", c.Path()).Msg("authorization header missing or malformed")
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("invalid_token").Inc()
				logger.Warn().Err(err).Str("path", c.Path()).Msg("token verification failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			if denylist != nil && claims.TokenID != "" {
				revoked, err := denylist.IsRevoked(c.Request().Context(), claims.TokenID)
				if err != nil {
					logger.Error().Err(err).Msg("denylist lookup failed")
					return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
				}
				if revoked {
					metrics.AuthDeniedTotal.WithLabelValues("revoked").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				}
			}

			c.Set(claimsKey, *claims)
			return next(c)
		}
	}
}

// ClaimsFrom extracts the verified claims attached by Auth. The second
// return is false when Auth did not run on this route.
func ClaimsFrom(c echo.Context) (ports.TokenClaims, bool) {
	claims, ok := c.Get(claimsKey).(ports.TokenClaims)
	return claims, ok
}

// SetClaims injects claims directly; test helper for handler tests.
func SetClaims(c echo.Context, claims ports.TokenClaims) {
	c.Set(claimsKey, claims)
}
