package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trailhead/campground-api/internal/core/domain"
	"github.com/trailhead/campground-api/internal/core/ports"
)

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	c, rec := newTestContext(t, "")
	SetClaims(c, ports.TokenClaims{UserID: "64a000000000000000000001", Role: domain.RoleAdmin})

	called := false
	handler := RequireAdmin(zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin_RejectsUserRole(t *testing.T) {
	c, _ := newTestContext(t, "")
	SetClaims(c, ports.TokenClaims{UserID: "64a000000000000000000001", Role: domain.RoleUser})

	handler := RequireAdmin(zerolog.Nop())(func(echo.Context) error {
		t.Fatal("non-admin must not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "Forbidden: Admins only" {
		t.Errorf("message: got %v", he.Message)
	}
}

func TestRequireAdmin_RejectsMissingClaims(t *testing.T) {
	c, _ := newTestContext(t, "")

	handler := RequireAdmin(zerolog.Nop())(func(echo.Context) error {
		t.Fatal("request without claims must not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
