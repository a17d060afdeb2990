package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// newTestSession wires a Session and Gateway against an httptest server and
// counts every request that reaches it.
func newTestSession(t *testing.T, handler http.HandlerFunc) (*Session, TokenStore, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	store := NewMemoryTokenStore()
	gateway := NewGateway(srv.URL, store, srv.Client(), zerolog.Nop())
	return NewSession(store, gateway), store, &hits
}

func loginHandler(t *testing.T, role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		claims := jwt.MapClaims{
			"sub": "alice",
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		if role != "" {
			claims["role"] = role
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  signedToken(t, claims),
			"refreshToken": "refresh-opaque",
		})
	}
}

func TestSession_Login_AdminRoutesToAdminArea(t *testing.T) {
	session, store, _ := newTestSession(t, loginHandler(t, "ROLE_ADMIN"))

	area, err := session.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if area != AreaAdmin {
		t.Fatalf("expected AreaAdmin, got %v", area)
	}

	identity, ok, _ := store.Load()
	if !ok {
		t.Fatalf("expected identity persisted")
	}
	if identity.Role != domain.RoleAdmin {
		t.Fatalf("expected ROLE_ADMIN persisted, got %s", identity.Role)
	}
	if identity.AccessToken == "" || identity.RefreshToken != "refresh-opaque" {
		t.Fatalf("tokens not persisted together: %+v", identity)
	}
}

func TestSession_Login_RoleAreas(t *testing.T) {
	cases := map[string]Area{
		"ROLE_DEVELOPER":   AreaDeveloper,
		"ROLE_TESTER":      AreaTester,
		"ROLE_STAKEHOLDER": AreaStakeholder,
	}
	for role, want := range cases {
		session, _, _ := newTestSession(t, loginHandler(t, role))
		area, err := session.Login(context.Background(), "alice", "pw")
		if err != nil {
			t.Fatalf("Login with %s returned error: %v", role, err)
		}
		if area != want {
			t.Fatalf("role %s routed to %v, want %v", role, area, want)
		}
	}
}

func TestSession_Login_UnknownRoleRoutesHome(t *testing.T) {
	session, store, _ := newTestSession(t, loginHandler(t, "ROLE_UNKNOWN_X"))

	area, err := session.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if area != AreaHome {
		t.Fatalf("expected AreaHome for unknown role, got %v", area)
	}

	// Still a valid, persisted low-privilege identity.
	identity, ok, _ := store.Load()
	if !ok || identity.Role != domain.RoleUser {
		t.Fatalf("expected persisted fallback identity, got %+v present=%v", identity, ok)
	}
}

func TestSession_Login_MissingRoleClaimRoutesHome(t *testing.T) {
	session, _, _ := newTestSession(t, loginHandler(t, ""))

	area, err := session.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if area != AreaHome {
		t.Fatalf("expected AreaHome, got %v", area)
	}
}

func TestSession_Login_EmptyFieldsRejectSynchronously(t *testing.T) {
	session, _, hits := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {})

	for _, creds := range [][2]string{{"", "pw"}, {"alice", ""}, {"", ""}, {"  ", "pw"}} {
		_, err := session.Login(context.Background(), creds[0], creds[1])
		var failure *Failure
		if !errors.As(err, &failure) || failure.Kind != FailureBadRequest {
			t.Fatalf("expected BadRequest failure for %q/%q, got %v", creds[0], creds[1], err)
		}
	}
	if hits.Load() != 0 {
		t.Fatalf("expected zero network calls, got %d", hits.Load())
	}
}

func TestSession_Login_SendsDigestNotPlaintext(t *testing.T) {
	var captured loginPayload
	session, _, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, _ = session.Login(context.Background(), "alice", "plaintext-pw")
	if captured.Password == "plaintext-pw" {
		t.Fatalf("plaintext credential sent over the wire")
	}
	if captured.Password != HashPassword("plaintext-pw") {
		t.Fatalf("expected the SHA-256 digest, got %q", captured.Password)
	}
}

func TestSession_Login_FailureLeavesStoreUntouched(t *testing.T) {
	session, store, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	_, err := session.Login(context.Background(), "alice", "wrong")
	var failure *Failure
	if !errors.As(err, &failure) || failure.Kind != FailureUnauthenticated {
		t.Fatalf("expected Unauthenticated failure, got %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatalf("failed login must not persist an identity")
	}
}

func TestSession_Login_MalformedTokenNotPersisted(t *testing.T) {
	session, store, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  "not.a.jwt",
			"refreshToken": "r",
		})
	})

	_, err := session.Login(context.Background(), "alice", "pw")
	if err == nil {
		t.Fatalf("expected decode failure")
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatalf("partial identity must never be persisted")
	}
}

func TestSession_Register_NormalizesRole(t *testing.T) {
	var captured registerPayload
	session, _, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusCreated)
	})

	if err := session.Register(context.Background(), "bob", "b@c.d", "pw", "developer"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if captured.Role != "ROLE_DEVELOPER" {
		t.Fatalf("expected normalized role, got %q", captured.Role)
	}
	if captured.PasswordHash != HashPassword("pw") {
		t.Fatalf("expected password digest, got %q", captured.PasswordHash)
	}
}

func TestSession_Register_EmptyFieldsRejectSynchronously(t *testing.T) {
	session, _, hits := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {})

	cases := [][4]string{
		{"", "e@x.y", "pw", "tester"},
		{"bob", "", "pw", "tester"},
		{"bob", "e@x.y", "", "tester"},
		{"bob", "e@x.y", "   ", "tester"},
		{"bob", "e@x.y", "pw", ""},
	}
	for _, c := range cases {
		err := session.Register(context.Background(), c[0], c[1], c[2], c[3])
		var failure *Failure
		if !errors.As(err, &failure) || failure.Kind != FailureBadRequest {
			t.Fatalf("expected BadRequest failure for %v, got %v", c, err)
		}
	}
	if hits.Load() != 0 {
		t.Fatalf("expected zero network calls, got %d", hits.Load())
	}
}

func TestSession_Logout_ThenCurrentIdentityAbsent(t *testing.T) {
	session, _, _ := newTestSession(t, loginHandler(t, "ROLE_TESTER"))

	if _, err := session.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if _, ok := session.CurrentIdentity(); !ok {
		t.Fatalf("expected identity after login")
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, ok := session.CurrentIdentity(); ok {
		t.Fatalf("expected absent identity after logout")
	}

	// Logout is idempotent.
	if err := session.Logout(); err != nil {
		t.Fatalf("second Logout returned error: %v", err)
	}
}

func TestSession_Refresh_UpdatesAccessToken(t *testing.T) {
	store := NewMemoryTokenStore()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/refresh" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["refreshToken"] != "refresh-opaque" {
			t.Errorf("unexpected refresh token %q", req["refreshToken"])
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh-access"})
	}))
	defer srv.Close()

	session := NewSession(store, NewGateway(srv.URL, store, srv.Client(), zerolog.Nop()))
	_ = store.Save(Identity{Username: "alice", Role: domain.RoleAdmin, AccessToken: "old", RefreshToken: "refresh-opaque"})

	if err := session.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	identity, _, _ := store.Load()
	if identity.AccessToken != "fresh-access" {
		t.Fatalf("access token not replaced: %+v", identity)
	}
	if identity.RefreshToken != "refresh-opaque" || identity.Role != domain.RoleAdmin {
		t.Fatalf("unrelated fields must be preserved: %+v", identity)
	}
}

func TestSession_Refresh_WithoutIdentity(t *testing.T) {
	session, _, hits := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {})

	err := session.Refresh(context.Background())
	var failure *Failure
	if !errors.As(err, &failure) || failure.Kind != FailureUnauthenticated {
		t.Fatalf("expected Unauthenticated failure, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected zero network calls, got %d", hits.Load())
	}
}
