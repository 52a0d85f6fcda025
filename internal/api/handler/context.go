package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trailhead/campground-api/internal/api/middleware"
	"github.com/trailhead/campground-api/internal/core/ports"
)

// ctxClaims extracts the verified claims injected by the Auth middleware.
// A missing claim set means the route was wired without the gate; treat it
// as unauthenticated rather than proceeding with an empty identity.
func ctxClaims(c echo.Context) (ports.TokenClaims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.UserID == "" {
		return ports.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return claims, nil
}
