package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trailhead/campground-api/internal/core/domain"
	"github.com/trailhead/campground-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubTokenService struct {
	claims map[string]*ports.TokenClaims // token -> claims
}

func (s *stubTokenService) Issue(string, string) (string, error) { return "", nil }

func (s *stubTokenService) Verify(token string) (*ports.TokenClaims, error) {
	c, ok := s.claims[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	clone := *c
	return &clone, nil
}

type stubDenylist struct {
	revoked   map[string]bool
	lookupErr error
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	d.revoked[tokenID] = true
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if d.lookupErr != nil {
		return false, d.lookupErr
	}
	return d.revoked[tokenID], nil
}

func userClaims() *ports.TokenClaims {
	return &ports.TokenClaims{
		UserID:    "64a000000000000000000001",
		Role:      domain.RoleUser,
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newTestContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestAuth_ValidToken(t *testing.T) {
	tokens := &stubTokenService{claims: map[string]*ports.TokenClaims{"good": userClaims()}}
	c, rec := newTestContext(t, "Bearer good")

	called := false
	handler := Auth(tokens, nil, zerolog.Nop())(func(c echo.Context) error {
		called = true
		claims, ok := ClaimsFrom(c)
		if !ok {
			t.Fatal("claims not attached")
		}
		if claims.UserID != "64a000000000000000000001" {
			t.Errorf("UserID: got %q", claims.UserID)
		}
		if claims.Role != domain.RoleUser {
			t.Errorf("Role: got %q", claims.Role)
		}
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

func TestAuth_MissingHeader(t *testing.T) {
	tokens := &stubTokenService{claims: map[string]*ports.TokenClaims{}}
	c, _ := newTestContext(t, "")

	handler := Auth(tokens, nil, zerolog.Nop())(func(echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Unauthorized" {
		t.Errorf("message: got %v", he.Message)
	}
}

func TestAuth_SchemePrefixCaseSensitive(t *testing.T) {
	tokens := &stubTokenService{claims: map[string]*ports.TokenClaims{"good": userClaims()}}

	for _, header := range []string{"bearer good", "BEARER good", "Token good", "Bearergood"} {
		c, _ := newTestContext(t, header)
		handler := Auth(tokens, nil, zerolog.Nop())(func(echo.Context) error {
			t.Fatalf("header %q should not reach next", header)
			return nil
		})

		err := handler(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := &stubTokenService{claims: map[string]*ports.TokenClaims{}}
	c, _ := newTestContext(t, "Bearer forged")

	handler := Auth(tokens, nil, zerolog.Nop())(func(echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Invalid token" {
		t.Errorf("message: got %v", he.Message)
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	tokens := &stubTokenService{claims: map[string]*ports.TokenClaims{"good": userClaims()}}
	denylist := &stubDenylist{revoked: map[string]bool{"jti-1": true}}
	c, _ := newTestContext(t, "Bearer good")

	handler := Auth(tokens, denylist, zerolog.Nop())(func(echo.Context) error {
		t.Fatal("revoked token must not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_DenylistLookupFailure(t *testing.T) {
	tokens := &stubTokenService{claims: map[string]*ports.TokenClaims{"good": userClaims()}}
	denylist := &stubDenylist{revoked: map[string]bool{}, lookupErr: errors.New("redis down")}
	c, _ := newTestContext(t, "Bearer good")

	handler := Auth(tokens, denylist, zerolog.Nop())(func(echo.Context) error {
		t.Fatal("should not reach next when the deny-list is unreachable")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestAuth_NoDenylistSkipsLookup(t *testing.T) {
	tokens := &stubTokenService{claims: map[string]*ports.TokenClaims{"good": userClaims()}}
	c, rec := newTestContext(t, "Bearer good")

	handler := Auth(tokens, nil, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
