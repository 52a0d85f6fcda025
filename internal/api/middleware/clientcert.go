package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireClientCert rejects requests that did not present a verified client
// certificate during the TLS handshake. The TLS listener finishes the
// handshake and chain verification; this gate only checks the result.
func RequireClientCert() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tls := c.Request().TLS
			if tls == nil || len(tls.VerifiedChains) == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Client certificate required")
			}
			return next(c)
		}
	}
}
