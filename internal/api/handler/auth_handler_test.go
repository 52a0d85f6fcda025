package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trailhead/campground-api/internal/api/middleware"
	"github.com/trailhead/campground-api/internal/core/domain"
	"github.com/trailhead/campground-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub auth service
// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerErr error
	loginErr    error
	logoutErr   error

	loggedOut []ports.TokenClaims
}

func (s *stubAuthService) Register(_ context.Context, username, email, _, telephone string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: "64a000000000000000000001", Username: username, Email: email, Telephone: telephone, Role: domain.RoleUser}, nil
}

func (s *stubAuthService) RegisterAdmin(_ context.Context, name, email, _ string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: "64a000000000000000000002", Username: name, Email: email, Role: domain.RoleAdmin}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "signed-token", &domain.User{ID: "64a000000000000000000001", Username: "alice", Email: email}, nil
}

func (s *stubAuthService) Logout(_ context.Context, claims ports.TokenClaims) error {
	if s.logoutErr != nil {
		return s.logoutErr
	}
	s.loggedOut = append(s.loggedOut, claims)
	return nil
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthHandler_Register_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)
	c, rec := newJSONContext(t, http.MethodPost, "/api/users/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1","telephone":"555-0100"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["message"] != "User registered successfully" {
		t.Errorf("message: got %v", body["message"])
	}
	user, _ := body["user"].(map[string]any)
	if user["username"] != "alice" || user["email"] != "alice@example.com" {
		t.Errorf("user view: %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password must never appear in the response")
	}
	if _, leaked := user["id"]; leaked {
		t.Error("register response exposes only username and email")
	}
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)
	c, _ := newJSONContext(t, http.MethodPost, "/api/users/register", `{not json`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_RegisterAdmin_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)
	c, rec := newJSONContext(t, http.MethodPost, "/api/admin/register",
		`{"name":"root","email":"root@example.com","password":"secret1"}`)

	if err := h.RegisterAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Admin registered successfully" {
		t.Errorf("message: got %v", body["message"])
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)
	c, rec := newJSONContext(t, http.MethodPost, "/api/users/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["message"] != "Login successful" {
		t.Errorf("message: got %v", body["message"])
	}
	if body["token"] != "signed-token" {
		t.Errorf("token: got %v", body["token"])
	}
}

func TestAuthHandler_Login_SetsHTTPOnlyCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, true)
	c, rec := newJSONContext(t, http.MethodPost, "/api/users/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != "token" || ck.Value != "signed-token" {
		t.Errorf("cookie: %s=%s", ck.Name, ck.Value)
	}
	if !ck.HttpOnly {
		t.Error("token cookie must be httpOnly")
	}
	if !ck.Secure {
		t.Error("Secure flag must follow the secureCookies setting")
	}
	if ck.MaxAge != int(time.Hour.Seconds()) {
		t.Errorf("cookie max-age: got %d", ck.MaxAge)
	}
}

func TestAuthHandler_Login_FailurePropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials}, false)
	c, rec := newJSONContext(t, http.MethodPost, "/api/users/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	err := h.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected the domain error to propagate, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("failed login must not set a cookie")
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestAuthHandler_Logout_ClearsCookieAndRevokes(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)
	c, rec := newJSONContext(t, http.MethodPost, "/api/users/logout", "")
	middleware.SetClaims(c, ports.TokenClaims{
		UserID:    "64a000000000000000000001",
		Role:      domain.RoleUser,
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Logout successful" {
		t.Errorf("message: got %v", body["message"])
	}

	if len(svc.loggedOut) != 1 || svc.loggedOut[0].TokenID != "jti-1" {
		t.Errorf("service must receive the verified claims: %+v", svc.loggedOut)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if ck := cookies[0]; ck.Value != "" || ck.MaxAge >= 0 {
		t.Errorf("logout must clear the cookie: value=%q maxAge=%d", ck.Value, ck.MaxAge)
	}
}

func TestAuthHandler_Logout_WithoutClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)
	c, _ := newJSONContext(t, http.MethodPost, "/api/users/logout", "")

	err := h.Logout(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
