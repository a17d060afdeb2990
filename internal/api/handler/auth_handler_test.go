package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type stubAuthService struct {
	registerErr error
	loginPair   *ports.TokenPair
	loginErr    error
	refreshErr  error
	loggedOut   []string
}

func (s *stubAuthService) Register(_ context.Context, username, email, passwordHash, role string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{Username: username, Email: email, Role: domain.ParseRole(role)}, nil
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	if s.loginErr != nil {
		return nil, nil, s.loginErr
	}
	return s.loginPair, &domain.User{Username: username}, nil
}

func (s *stubAuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return "new-access-token", nil
}

func (s *stubAuthService) Logout(_ context.Context, accessToken, refreshToken string) error {
	s.loggedOut = append(s.loggedOut, accessToken, refreshToken)
	return nil
}

func newAuthContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Created(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newAuthContext(t, `{"username":"alice","email":"a@b.c","passwordHash":"digest","role":"ADMIN"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists})
	c, rec := newAuthContext(t, `{"username":"alice","email":"a@b.c","passwordHash":"digest","role":"ADMIN"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginPair: &ports.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
	})
	c, rec := newAuthContext(t, `{"username":"alice","password":"digest"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var pair ports.TokenPair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if pair.AccessToken != "acc" || pair.RefreshToken != "ref" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
}

func TestAuthHandler_Login_UniformRejection(t *testing.T) {
	// Unknown user and wrong password must be indistinguishable.
	for _, loginErr := range []error{domain.ErrInvalidCredentials, domain.ErrUserNotFound} {
		h := NewAuthHandler(&stubAuthService{loginErr: loginErr})
		c, rec := newAuthContext(t, `{"username":"alice","password":"nope"}`)

		if err := h.Login(c); err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %v, got %d", loginErr, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "invalid credentials" {
			t.Fatalf("expected uniform message, got %q", body["error"])
		}
	}
}

func TestAuthHandler_Refresh_Invalid(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{refreshErr: domain.ErrInvalidToken})
	c, rec := newAuthContext(t, `{"refreshToken":"bogus"}`)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_RevokesBearerAndRefresh(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"refreshToken":"ref"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer acc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.loggedOut) != 2 || svc.loggedOut[0] != "acc" || svc.loggedOut[1] != "ref" {
		t.Fatalf("unexpected revocations: %v", svc.loggedOut)
	}
}
