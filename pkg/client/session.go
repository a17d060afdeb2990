package client

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// Area is the dashboard a freshly authenticated user lands on.
type Area int

const (
	// AreaHome is the default landing area for identities whose role claim
	// is absent or unrecognised.
	AreaHome Area = iota
	AreaAdmin
	AreaDeveloper
	AreaTester
	AreaStakeholder
)

func (a Area) String() string {
	switch a {
	case AreaAdmin:
		return "admin"
	case AreaDeveloper:
		return "developer"
	case AreaTester:
		return "tester"
	case AreaStakeholder:
		return "stakeholder"
	default:
		return "home"
	}
}

// AreaForRole maps a role to its dashboard. Unknown roles land on AreaHome.
func AreaForRole(role domain.Role) Area {
	switch role {
	case domain.RoleAdmin:
		return AreaAdmin
	case domain.RoleDeveloper:
		return AreaDeveloper
	case domain.RoleTester:
		return AreaTester
	case domain.RoleStakeholder:
		return AreaStakeholder
	default:
		return AreaHome
	}
}

// Session owns the login, registration and logout transitions and is the
// single reader and writer of the TokenStore. Exactly one Identity is
// active at a time; a new login replaces the previous one atomically.
type Session struct {
	store   TokenStore
	gateway *Gateway
}

// NewSession binds a Session to its token store and gateway. Both should
// share the same store so the gateway sees logins immediately.
func NewSession(store TokenStore, gateway *Gateway) *Session {
	return &Session{store: store, gateway: gateway}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerPayload struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates against the API and persists the resulting Identity.
// Empty fields are rejected synchronously with zero network calls. On
// success it returns the dashboard Area derived from the role claim inside
// the access token; an absent or unknown claim routes to AreaHome. On any
// failure the TokenStore is left untouched.
func (s *Session) Login(ctx context.Context, username, password string) (Area, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return AreaHome, &Failure{Kind: FailureBadRequest, Reason: "username and password are required"}
	}

	body, err := s.gateway.post(ctx, "/auth/login", loginPayload{
		Username: username,
		Password: HashPassword(password),
	})
	if err != nil {
		return AreaHome, err
	}

	var pair tokenPairResponse
	if err := decodeJSON(body, &pair); err != nil {
		return AreaHome, err
	}
	if pair.AccessToken == "" {
		return AreaHome, &Failure{Kind: FailureServerError, Reason: "login response carried no access token"}
	}

	role, err := roleClaim(pair.AccessToken)
	if err != nil {
		// A token whose payload cannot be decoded is never persisted.
		return AreaHome, err
	}

	if err := s.store.Save(Identity{
		Username:     username,
		Role:         role,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}); err != nil {
		return AreaHome, &Failure{Kind: FailureServerError, Reason: err.Error()}
	}

	return AreaForRole(role), nil
}

// Register creates a new account. It does not log the user in; a nil error
// means "go to login". Empty fields and all-whitespace passwords are
// rejected synchronously with zero network calls.
func (s *Session) Register(ctx context.Context, username, email, password, role string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" ||
		strings.TrimSpace(password) == "" || strings.TrimSpace(role) == "" {
		return &Failure{Kind: FailureBadRequest, Reason: "all registration fields are required"}
	}

	_, err := s.gateway.post(ctx, "/auth/register", registerPayload{
		Username:     username,
		Email:        email,
		PasswordHash: HashPassword(password),
		Role:         string(domain.ParseRole(role)),
	})
	return err
}

// Logout discards the active Identity. It is a purely local transition and
// always succeeds against the server's view; revocation happens lazily
// when the discarded token next expires.
func (s *Session) Logout() error {
	return s.store.Clear()
}

// CurrentIdentity is the synchronous auth check every protected screen
// performs before rendering.
func (s *Session) CurrentIdentity() (Identity, bool) {
	identity, ok, err := s.store.Load()
	if err != nil {
		return Identity{}, false
	}
	return identity, ok
}

// Refresh exchanges the stored refresh token for a new access token and
// persists the updated Identity atomically.
func (s *Session) Refresh(ctx context.Context) error {
	identity, ok, err := s.store.Load()
	if err != nil || !ok || identity.RefreshToken == "" {
		return &Failure{Kind: FailureUnauthenticated}
	}

	body, err := s.gateway.post(ctx, "/auth/refresh", map[string]string{
		"refreshToken": identity.RefreshToken,
	})
	if err != nil {
		return err
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := decodeJSON(body, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return &Failure{Kind: FailureServerError, Reason: "refresh response carried no access token"}
	}

	identity.AccessToken = resp.AccessToken
	if err := s.store.Save(identity); err != nil {
		return &Failure{Kind: FailureServerError, Reason: err.Error()}
	}
	return nil
}

// roleClaim decodes the role claim from the access token's payload segment
// without verifying the signature; the server remains the authority on
// authorization and this claim only selects a dashboard. A missing claim
// yields RoleUser. A malformed token is a decode failure.
func roleClaim(accessToken string) (domain.Role, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return "", &Failure{Kind: FailureServerError, Reason: "access token payload is malformed"}
	}
	name, _ := claims["role"].(string)
	if name == "" {
		return domain.RoleUser, nil
	}
	role := domain.Role(name)
	if !role.Known() {
		return domain.RoleUser, nil
	}
	return role, nil
}

func decodeJSON(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &Failure{Kind: FailureServerError, Reason: "unexpected response shape"}
	}
	return nil
}
